package main

import (
	"io"
	"os"

	"github.com/lifttools/liftcoords"
	"github.com/lifttools/liftcoords/lift"
)

// loadChain loads a single chain file, local or gs://, and reports the
// builds named by its file name.
func loadChain(mapper *lift.GLOMapper, chainFile string) (from, to lift.Build, err error) {
	from, to, err = lift.ParseChainName(chainFile)
	if err != nil {
		return "", "", err
	}

	f, err := liftcoords.MaybeOpenSeekerFromGoogleStorage(chainFile, client)
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	if err := mapper.LoadChainReader(chainFile, f); err != nil {
		return "", "", err
	}

	return from, to, nil
}

// readInput opens the possibly compressed, possibly gs:// input file,
// detects its delimiter, and reads it into a table.
func readInput(inputFile string) (*liftcoords.Table, rune, error) {
	f, err := liftcoords.MaybeOpenSeekerFromGoogleStorage(inputFile, client)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	r, err := liftcoords.MaybeDecompress(f)
	if err != nil {
		return nil, 0, err
	}

	comma := liftcoords.DetermineDelimiter(r)

	// The decompressed reader cannot seek, so rewind the source and
	// decompress again from the top.
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, 0, err
	}
	r, err = liftcoords.MaybeDecompress(f)
	if err != nil {
		return nil, 0, err
	}

	tbl, err := liftcoords.ReadTable(r, comma)
	if err != nil {
		return nil, 0, err
	}

	return tbl, comma, nil
}

// openOutputs returns writers for the lifted and unmapped outputs, plus a
// closer for both. An empty outputFile means stdout and stderr.
func openOutputs(outputFile string) (out, outUnmapped io.Writer, closer func(), err error) {
	if outputFile == "" {
		return os.Stdout, os.Stderr, func() {}, nil
	}

	outF, err := os.OpenFile(outputFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, nil, err
	}

	unmappedF, err := os.OpenFile(outputFile+".unmapped", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		outF.Close()
		return nil, nil, nil, err
	}

	return outF, unmappedF, func() {
		outF.Close()
		unmappedF.Close()
	}, nil
}
