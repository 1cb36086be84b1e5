package lift

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/guregu/null.v3"

	"github.com/lifttools/liftcoords"
)

// Options adjusts how Over locates and rewrites the coordinate columns.
// The zero value is usable.
type Options struct {
	// ChromColumn and PosColumn are substrings matched case-insensitively
	// against the header to find the coordinate columns. Defaults: "chrom"
	// and "pos".
	ChromColumn string
	PosColumn   string

	// KeepOrig retains the pre-lift chromosome and position in the lifted
	// output, under the original column names suffixed with "_orig".
	KeepOrig bool

	// Strict turns a malformed or non-positive position into an error.
	// Otherwise such rows are routed to the failed table alongside
	// unmapped loci.
	Strict bool

	// Report, when non-nil, receives a tab-delimited per-row Outcome
	// record for auditing which loci moved where.
	Report io.Writer
}

const origSuffix = "_orig"

// Over translates the coordinate columns of tbl from one genome build to
// another, using mapper for the per-locus math. Every input row lands in
// exactly one of the two returned tables, in its original relative order:
// lifted rows carry the mapped chromosome and position in place of the
// originals, failed rows are returned untouched.
//
// Unknown builds and missing coordinate columns fail up front, before any
// row is examined. A locus the mapper cannot place is not an error.
func Over(mapper Mapper, tbl *liftcoords.Table, sourceBuild, targetBuild string, opt Options) (lifted, failed *liftcoords.Table, err error) {
	from, err := ParseBuild(sourceBuild)
	if err != nil {
		return nil, nil, err
	}
	to, err := ParseBuild(targetBuild)
	if err != nil {
		return nil, nil, err
	}

	if !mapper.HasBuild(from) {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownBuild, from)
	}
	if !mapper.HasBuild(to) {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownBuild, to)
	}
	if !mapper.CanLift(from, to) {
		return nil, nil, fmt.Errorf("%w: %s to %s", ErrNoRoute, from, to)
	}

	chromNeedle := opt.ChromColumn
	if chromNeedle == "" {
		chromNeedle = "chrom"
	}
	posNeedle := opt.PosColumn
	if posNeedle == "" {
		posNeedle = "pos"
	}

	chromCol := tbl.MatchColumn(chromNeedle)
	if chromCol < 0 {
		return nil, nil, &liftcoords.SchemaError{Column: chromNeedle}
	}
	posCol := tbl.MatchColumn(posNeedle)
	if posCol < 0 {
		return nil, nil, &liftcoords.SchemaError{Column: posNeedle}
	}

	liftedCols := append([]string{}, tbl.Columns...)
	if opt.KeepOrig {
		liftedCols = append(liftedCols,
			tbl.Columns[chromCol]+origSuffix,
			tbl.Columns[posCol]+origSuffix)
	}
	lifted = liftcoords.NewTable(liftedCols)
	failed = liftcoords.NewTable(tbl.Columns)

	collect := opt.Report != nil
	var outcomes []Outcome

	for i, row := range tbl.Rows {
		if len(row) <= chromCol || len(row) <= posCol {
			return nil, nil, fmt.Errorf("row %d has %d fields, too few to hold the coordinate columns", i, len(row))
		}

		outcome := Outcome{Row: i, Chrom: row[chromCol], Pos: row[posCol]}

		pos, perr := strconv.ParseInt(row[posCol], 10, 64)
		if perr != nil || pos < 1 {
			if opt.Strict {
				return nil, nil, fmt.Errorf("row %d: position %q is not a positive integer", i, row[posCol])
			}
			failed.Rows = append(failed.Rows, row)
			if collect {
				outcomes = append(outcomes, outcome)
			}
			continue
		}

		mapped, ok := mapper.Lift(from, to, Locus{Chrom: row[chromCol], Pos: pos})
		if !ok {
			failed.Rows = append(failed.Rows, row)
			if collect {
				outcomes = append(outcomes, outcome)
			}
			continue
		}

		out := append([]string{}, row...)
		out[chromCol] = mapped.Chrom
		out[posCol] = strconv.FormatInt(mapped.Pos, 10)
		if opt.KeepOrig {
			out = append(out, row[chromCol], row[posCol])
		}
		lifted.Rows = append(lifted.Rows, out)

		if collect {
			outcome.LiftedChrom = null.StringFrom(mapped.Chrom)
			outcome.LiftedPos = null.IntFrom(mapped.Pos)
			outcomes = append(outcomes, outcome)
		}
	}

	if opt.Report != nil {
		if err := WriteOutcomes(opt.Report, outcomes); err != nil {
			return nil, nil, err
		}
	}

	return lifted, failed, nil
}
