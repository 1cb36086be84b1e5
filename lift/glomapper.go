package lift

import (
	"bufio"
	"io"
	"sort"
	"strings"

	glo "github.com/carbocation/GLO"
)

// GLOMapper implements Mapper on top of the GLO chain-file library. It
// tracks which build pairs have loaded chains and, when no direct chain
// exists, lifts through intermediate builds (e.g. hg38 -> hg19 -> GRCh37
// with the standard UCSC chain set).
type GLOMapper struct {
	// AddMissingChr prepends "chr" to contig names lacking it before
	// consulting the chains, which name autosomes chr1..chr22. The output
	// locus is rewritten to match the input's naming style either way.
	AddMissingChr bool

	lo    *glo.LiftOver
	edges map[Build]map[Build]bool
}

// NewGLOMapper returns a mapper with no chains loaded. AddMissingChr
// defaults to true.
func NewGLOMapper() *GLOMapper {
	lo := new(glo.LiftOver)
	lo.Init()

	return &GLOMapper{
		AddMissingChr: true,
		lo:            lo,
		edges:         make(map[Build]map[Build]bool),
	}
}

// LoadChain registers the chain data in r as the direct mapping from one
// build to another. The reader must yield an uncompressed UCSC chain file.
func (m *GLOMapper) LoadChain(from, to Build, r io.Reader) error {
	m.lo.Load(string(from), string(to), bufio.NewReader(r))

	if m.edges[from] == nil {
		m.edges[from] = make(map[Build]bool)
	}
	m.edges[from][to] = true

	return nil
}

func (m *GLOMapper) HasBuild(b Build) bool {
	if _, ok := m.edges[b]; ok {
		return true
	}
	for _, targets := range m.edges {
		if targets[b] {
			return true
		}
	}

	return false
}

func (m *GLOMapper) CanLift(from, to Build) bool {
	_, err := m.Route(from, to)
	return err == nil
}

// Builds lists every build touched by a loaded chain, sorted.
func (m *GLOMapper) Builds() []Build {
	seen := make(map[Build]bool)
	for from, targets := range m.edges {
		seen[from] = true
		for to := range targets {
			seen[to] = true
		}
	}

	out := make([]Build, 0, len(seen))
	for b := range seen {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Route returns the chain path from one build to another as the sequence
// of builds to pass through, starting with from and ending with to. The
// shortest path wins; ties break alphabetically for determinism.
func (m *GLOMapper) Route(from, to Build) ([]Build, error) {
	if !m.HasBuild(from) || !m.HasBuild(to) {
		return nil, ErrUnknownBuild
	}

	// BFS over the directed chain graph.
	prev := map[Build]Build{from: from}
	queue := []Build{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == to {
			var path []Build
			for b := to; ; b = prev[b] {
				path = append([]Build{b}, path...)
				if b == from {
					return path, nil
				}
			}
		}

		next := make([]Build, 0, len(m.edges[cur]))
		for b := range m.edges[cur] {
			if _, seen := prev[b]; !seen {
				prev[b] = cur
				next = append(next, b)
			}
		}
		sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
		queue = append(queue, next...)
	}

	return nil, ErrNoRoute
}

// Lift translates a 1-based locus along the chain route between the two
// builds. Chains that split one source base across multiple targets yield
// the first (highest-scoring chain) interval; the rest are discarded so
// that each input locus produces at most one output.
func (m *GLOMapper) Lift(from, to Build, locus Locus) (Locus, bool) {
	route, err := m.Route(from, to)
	if err != nil {
		return Locus{}, false
	}

	chrom := locus.Chrom
	hadPrefix := strings.HasPrefix(chrom, "chr")
	if m.AddMissingChr && !hadPrefix {
		chrom = "chr" + chrom
	}
	pos := locus.Pos

	for i := 0; i+1 < len(route); i++ {
		// Chain intervals are zero-based and half-open; a 1-based point
		// position covers [pos-1, pos).
		mapped := m.lo.Lift(string(route[i]), string(route[i+1]), glo.NewChainInterval(chrom, pos-1, pos))
		if len(mapped) == 0 {
			return Locus{}, false
		}

		chrom = mapped[0].Contig
		pos = mapped[0].Start + 1
	}

	if !hadPrefix {
		chrom = strings.TrimPrefix(chrom, "chr")
	}

	return Locus{Chrom: chrom, Pos: pos}, true
}
