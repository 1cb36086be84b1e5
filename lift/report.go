package lift

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"gopkg.in/guregu/null.v3"
)

// Outcome records the disposition of one input row: its original
// coordinates and, when the lift succeeded, the mapped ones. Failed rows
// leave the lifted fields null so the report imports cleanly into
// BigQuery-style tooling.
type Outcome struct {
	Row         int         `csv:"row"`
	Chrom       string      `csv:"chrom"`
	Pos         string      `csv:"pos"`
	LiftedChrom null.String `csv:"lifted_chrom"`
	LiftedPos   null.Int    `csv:"lifted_pos"`
}

// WriteOutcomes emits the per-row report as tab-delimited text.
func WriteOutcomes(w io.Writer, outcomes []Outcome) error {
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		cw := csv.NewWriter(out)
		cw.Comma = '\t'
		return gocsv.NewSafeCSVWriter(cw)
	})

	if err := gocsv.Marshal(&outcomes, w); err != nil {
		return pfx.Err(err)
	}

	return nil
}
