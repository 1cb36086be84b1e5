package lift

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	"github.com/lifttools/liftcoords"
)

// ParseChainName derives the source and target builds from a chain file
// name. Both common conventions are accepted: the Ensembl-style
// "GRCh37_to_hg38.chain.gz" and the UCSC-style "hg19ToHg38.over.chain.gz".
func ParseChainName(path string) (from, to Build, err error) {
	stem := filepath.Base(path)
	if i := strings.IndexByte(stem, '.'); i >= 0 {
		stem = stem[:i]
	}

	var halves []string
	if strings.Contains(stem, "_to_") {
		halves = strings.SplitN(stem, "_to_", 2)
	} else {
		halves = strings.SplitN(stem, "To", 2)
	}

	if len(halves) != 2 || halves[0] == "" || halves[1] == "" {
		return "", "", fmt.Errorf("expected chain file named like oldToNew.over.chain or old_to_new.chain, but found: %s", filepath.Base(path))
	}

	if from, err = ParseBuild(halves[0]); err != nil {
		return "", "", err
	}
	if to, err = ParseBuild(halves[1]); err != nil {
		return "", "", err
	}

	return from, to, nil
}

// LoadChainReader decompresses rs if needed and registers it under the
// builds named by name.
func (m *GLOMapper) LoadChainReader(name string, rs io.ReadSeeker) error {
	from, to, err := ParseChainName(name)
	if err != nil {
		return err
	}

	r, err := liftcoords.MaybeDecompress(rs)
	if err != nil {
		return pfx.Err(err)
	}

	return m.LoadChain(from, to, r)
}

// LoadChainFile loads a single, possibly compressed chain file whose name
// identifies its builds.
func (m *GLOMapper) LoadChainFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	return m.LoadChainReader(path, f)
}

// LoadChainDir loads every *.chain and *.chain.gz file in dir.
func (m *GLOMapper) LoadChainDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return pfx.Err(err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".chain") && !strings.HasSuffix(name, ".chain.gz") {
			continue
		}

		if err := m.LoadChainFile(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("loading %s: %w", name, err)
		}
		loaded++
	}

	if loaded == 0 {
		return fmt.Errorf("no chain files found in %s", dir)
	}

	return nil
}

// manifestEntry is one line of a chain manifest: a tab-delimited file with
// a header of from, to, and path columns. Relative paths are resolved
// against the manifest's own directory.
type manifestEntry struct {
	From string `csv:"from"`
	To   string `csv:"to"`
	Path string `csv:"path"`
}

// LoadManifest loads the chain files listed in a manifest. A manifest is
// the escape hatch for chain files whose names do not follow either naming
// convention.
func (m *GLOMapper) LoadManifest(path string) error {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return pfx.Err(err)
	}

	// Tell gocsv to use tab as the delimiter
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = '\t'
		r.LazyQuotes = true
		return r
	})

	entries := []*manifestEntry{}
	if err := gocsv.UnmarshalBytes(fileBytes, &entries); err != nil {
		return pfx.Err(err)
	}

	base := filepath.Dir(path)
	for _, entry := range entries {
		from, err := ParseBuild(entry.From)
		if err != nil {
			return err
		}
		to, err := ParseBuild(entry.To)
		if err != nil {
			return err
		}

		chainPath := entry.Path
		if !filepath.IsAbs(chainPath) {
			chainPath = filepath.Join(base, chainPath)
		}

		f, err := os.Open(chainPath)
		if err != nil {
			return pfx.Err(err)
		}

		r, err := liftcoords.MaybeDecompress(f)
		if err != nil {
			f.Close()
			return pfx.Err(err)
		}

		if err := m.LoadChain(from, to, r); err != nil {
			f.Close()
			return err
		}
		f.Close()
	}

	return nil
}
