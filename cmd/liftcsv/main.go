// liftcsv maps the coordinate columns of a delimited table between genome
// builds using UCSC chain files. Rows the chains cannot place are written
// to a sibling .unmapped file rather than being dropped silently.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/lifttools/liftcoords"
	_ "github.com/lifttools/liftcoords/compileinfoprint"
	"github.com/lifttools/liftcoords/lift"
)

var (
	chainFile, chainDir, manifest     string
	sourceBuild, targetBuild          string
	inputFile, outputFile, reportFile string
	chromCol, posCol                  string
	keepOrig, addMissingChr, strict   bool
	pageSize                          int

	client *storage.Client
)

func main() {
	flag.StringVar(&chainFile, "chain", "", "Path to a chain file from UCSC, named like oldToNew.over.chain or old_to_new.chain. Optionally, may be a google storage URL (gs://)")
	flag.StringVar(&chainDir, "chaindir", "", "Directory holding chain files to load. Enables lifting through intermediate builds when no direct chain exists.")
	flag.StringVar(&manifest, "manifest", "", "Tab-delimited manifest (from, to, path) for chain files with nonstandard names.")
	flag.StringVar(&sourceBuild, "from", "", "Genome build of the input coordinates (e.g. grch38). Defaults to the chain file's source when -chain is used.")
	flag.StringVar(&targetBuild, "to", "", "Genome build to lift to (e.g. grch37). Defaults to the chain file's target when -chain is used.")
	flag.StringVar(&inputFile, "input", "", "Path to the delimited input table with a header row. Optionally, may be a google storage URL (gs://)")
	flag.StringVar(&outputFile, "output", "", "Path to the lifted output file. Failed rows go to <output>.unmapped. Defaults to stdout/stderr.")
	flag.StringVar(&reportFile, "report", "", "Optional path for a per-row outcome report (tab-delimited).")
	flag.StringVar(&chromCol, "chromcol", "chrom", "Substring identifying the chromosome column in the header")
	flag.StringVar(&posCol, "poscol", "pos", "Substring identifying the position column in the header")
	flag.BoolVar(&keepOrig, "keeporig", false, "Whether to retain the original chromosome and position as additional _orig columns")
	flag.BoolVar(&addMissingChr, "addmissingchr", true, "Whether to add a 'chr' prefix to the chromosome name if it is missing (e.g. '1' becomes 'chr1')")
	flag.BoolVar(&strict, "strict", false, "Whether a malformed position aborts the run instead of routing the row to the unmapped output")
	flag.IntVar(&pageSize, "pagesize", 100000, "Rows per progress-logged page")
	flag.Parse()

	if chainFile == "" && chainDir == "" && manifest == "" {
		flag.Usage()
		log.Fatalln("Must specify a -chain file, a -chaindir, or a -manifest")
	}

	if inputFile == "" {
		flag.Usage()
		log.Fatalln("Must specify an -input file")
	}

	if strings.HasPrefix(chainFile, "gs://") ||
		strings.HasPrefix(inputFile, "gs://") {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	if err := run(); err != nil {
		log.Fatalln(err)
	}
}

func run() error {
	mapper := lift.NewGLOMapper()
	mapper.AddMissingChr = addMissingChr

	if chainFile != "" {
		from, to, err := loadChain(mapper, chainFile)
		if err != nil {
			return err
		}
		if sourceBuild == "" {
			sourceBuild = string(from)
		}
		if targetBuild == "" {
			targetBuild = string(to)
		}
	}
	if chainDir != "" {
		if err := mapper.LoadChainDir(chainDir); err != nil {
			return err
		}
	}
	if manifest != "" {
		if err := mapper.LoadManifest(manifest); err != nil {
			return err
		}
	}

	if sourceBuild == "" || targetBuild == "" {
		return fmt.Errorf("must specify -from and -to builds (loaded builds: %v)", mapper.Builds())
	}

	log.Println("Lifting from", sourceBuild, "to", targetBuild)

	tbl, comma, err := readInput(inputFile)
	if err != nil {
		return err
	}

	out, outUnmapped, closer, err := openOutputs(outputFile)
	if err != nil {
		return err
	}
	defer closer()

	opt := lift.Options{
		ChromColumn: chromCol,
		PosColumn:   posCol,
		KeepOrig:    keepOrig,
		Strict:      strict,
	}

	if reportFile != "" {
		rf, err := os.OpenFile(reportFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer rf.Close()
		opt.Report = rf

		// The outcome report is written in one shot with its own header,
		// so it cannot be assembled across pages.
		pageSize = tbl.Len()
	}

	pages := liftcoords.Pages(tbl.Len(), pageSize)
	if len(pages) == 0 {
		// Even an empty table gets its builds and schema validated, and a
		// header emitted.
		pages = [][2]int{{0, 0}}
	}

	bw := bufio.NewWriter(out)
	buw := bufio.NewWriter(outUnmapped)
	defer bw.Flush()
	defer buw.Flush()

	mappedCount := 0
	unMappedCount := 0
	wroteHeader := false
	wroteUnmappedHeader := false

	for _, page := range pages {
		lifted, failed, err := lift.Over(mapper, tbl.Slice(page[0], page[1]), sourceBuild, targetBuild, opt)
		if err != nil {
			return err
		}

		if !wroteHeader {
			if err := writeRecord(bw, lifted.Columns, comma); err != nil {
				return err
			}
			wroteHeader = true
		}
		for _, row := range lifted.Rows {
			if err := writeRecord(bw, row, comma); err != nil {
				return err
			}
		}

		if failed.Len() > 0 && !wroteUnmappedHeader {
			if err := writeRecord(buw, failed.Columns, comma); err != nil {
				return err
			}
			wroteUnmappedHeader = true
		}
		for _, row := range failed.Rows {
			if err := writeRecord(buw, row, comma); err != nil {
				return err
			}
		}

		mappedCount += lifted.Len()
		unMappedCount += failed.Len()
		log.Printf("Processed rows %d-%d. Mapped so far: %d. Unmapped so far: %d\n", page[0], page[1], mappedCount, unMappedCount)
	}

	log.Printf("Finished. Mapped: %d. Unmapped: %d\n", mappedCount, unMappedCount)

	return nil
}

func writeRecord(w *bufio.Writer, fields []string, comma rune) error {
	_, err := fmt.Fprintln(w, strings.Join(fields, string(comma)))
	return err
}
