package lift

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Two tiny synthetic chains on a toy contig: grch37 positions 0-1000 map
// to hg19 at +100, and hg19 positions 100-1100 map on to grch38 at a
// further +50.
const (
	chain37To19 = "chain 1000 chrT 2000 + 0 1000 chrT 2000 + 100 1100 1\n1000\n\n"
	chain19To38 = "chain 1000 chrT 2000 + 100 1100 chrT 2000 + 150 1150 2\n1000\n\n"
)

func newTestMapper(t *testing.T) *GLOMapper {
	t.Helper()

	m := NewGLOMapper()
	if err := m.LoadChain(GRCh37, Hg19, strings.NewReader(chain37To19)); err != nil {
		t.Fatal(err)
	}
	if err := m.LoadChain(Hg19, GRCh38, strings.NewReader(chain19To38)); err != nil {
		t.Fatal(err)
	}

	return m
}

func TestGLOMapperDirectLift(t *testing.T) {
	m := newTestMapper(t)

	got, ok := m.Lift(GRCh37, Hg19, Locus{Chrom: "chrT", Pos: 500})
	if !ok {
		t.Fatal("expected the locus to map")
	}
	if got.Chrom != "chrT" || got.Pos != 600 {
		t.Fatalf("expected chrT:600, got %s:%d", got.Chrom, got.Pos)
	}
}

func TestGLOMapperUnmapped(t *testing.T) {
	m := newTestMapper(t)

	if _, ok := m.Lift(GRCh37, Hg19, Locus{Chrom: "chrT", Pos: 1500}); ok {
		t.Fatal("expected a position beyond the chain to be unmapped")
	}
	if _, ok := m.Lift(GRCh37, Hg19, Locus{Chrom: "chrZ", Pos: 500}); ok {
		t.Fatal("expected an unknown contig to be unmapped")
	}
}

func TestGLOMapperChrPrefix(t *testing.T) {
	m := newTestMapper(t)

	// Bare contig names are prefixed for the chains and restored after.
	got, ok := m.Lift(GRCh37, Hg19, Locus{Chrom: "T", Pos: 500})
	if !ok {
		t.Fatal("expected the locus to map")
	}
	if got.Chrom != "T" || got.Pos != 600 {
		t.Fatalf("expected T:600, got %s:%d", got.Chrom, got.Pos)
	}
}

func TestGLOMapperRoutedLift(t *testing.T) {
	m := newTestMapper(t)

	// No direct grch37 -> grch38 chain is loaded; the lift must pass
	// through hg19.
	route, err := m.Route(GRCh37, GRCh38)
	if err != nil {
		t.Fatal(err)
	}
	if len(route) != 3 || route[1] != Hg19 {
		t.Fatalf("expected a route through hg19, got %v", route)
	}

	got, ok := m.Lift(GRCh37, GRCh38, Locus{Chrom: "chrT", Pos: 500})
	if !ok {
		t.Fatal("expected the locus to map")
	}
	if got.Chrom != "chrT" || got.Pos != 650 {
		t.Fatalf("expected chrT:650, got %s:%d", got.Chrom, got.Pos)
	}
}

func TestGLOMapperBuilds(t *testing.T) {
	m := newTestMapper(t)

	builds := m.Builds()
	want := []Build{GRCh37, GRCh38, Hg19}
	if len(builds) != len(want) {
		t.Fatalf("expected %v, got %v", want, builds)
	}
	for i := range want {
		if builds[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, builds)
		}
	}

	if !m.HasBuild(GRCh38) || m.HasBuild(Hg38) {
		t.Fatal("build registry disagrees with the loaded chains")
	}
}

func TestLoadChainDir(t *testing.T) {
	dir := t.TempDir()

	// One plain chain file and one gzipped, named per the two conventions.
	if err := os.WriteFile(filepath.Join(dir, "GRCh37_to_hg19.chain"), []byte(chain37To19), 0644); err != nil {
		t.Fatal(err)
	}

	gzPath := filepath.Join(dir, "hg19ToGRCh38.over.chain.gz")
	f, err := os.Create(gzPath)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(chain19To38)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	m := NewGLOMapper()
	if err := m.LoadChainDir(dir); err != nil {
		t.Fatal(err)
	}

	got, ok := m.Lift(GRCh37, GRCh38, Locus{Chrom: "chrT", Pos: 500})
	if !ok {
		t.Fatal("expected the locus to map")
	}
	if got.Pos != 650 {
		t.Fatalf("expected position 650, got %d", got.Pos)
	}
}

func TestLoadChainDirEmpty(t *testing.T) {
	m := NewGLOMapper()
	if err := m.LoadChainDir(t.TempDir()); err == nil {
		t.Fatal("expected an error for a directory with no chain files")
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()

	// Deliberately unparseable file name; the manifest supplies the builds.
	if err := os.WriteFile(filepath.Join(dir, "chains1.dat"), []byte(chain37To19), 0644); err != nil {
		t.Fatal(err)
	}

	manifest := "from\tto\tpath\ngrch37\thg19\tchains1.dat\n"
	manifestPath := filepath.Join(dir, "chains.tsv")
	if err := os.WriteFile(manifestPath, []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewGLOMapper()
	if err := m.LoadManifest(manifestPath); err != nil {
		t.Fatal(err)
	}

	got, ok := m.Lift(GRCh37, Hg19, Locus{Chrom: "chrT", Pos: 500})
	if !ok {
		t.Fatal("expected the locus to map")
	}
	if got.Pos != 600 {
		t.Fatalf("expected position 600, got %d", got.Pos)
	}
}
