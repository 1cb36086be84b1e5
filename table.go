package liftcoords

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Table is a rectangular block of string-valued records beneath a single
// header row. It is the in-process exchange format for everything in this
// module: callers hand one in, the lifter hands two back.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable returns an empty table with the given header.
func NewTable(columns []string) *Table {
	return &Table{
		Columns: append([]string{}, columns...),
		Rows:    make([][]string, 0),
	}
}

// ReadTable consumes a delimited file whose first record is the header.
func ReadTable(r io.Reader, comma rune) (*Table, error) {
	rdr := csv.NewReader(r)
	rdr.Comma = comma
	rdr.LazyQuotes = true

	header, err := rdr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("ReadTable: input is empty")
	} else if err != nil {
		return nil, err
	}

	out := NewTable(header)
	for {
		record, err := rdr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		out.Rows = append(out.Rows, record)
	}

	return out, nil
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the column whose name equals name,
// ignoring case, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if strings.EqualFold(col, name) {
			return i
		}
	}

	return -1
}

// MatchColumn returns the position of the first column whose lowercased
// name contains substr, or -1. GWAS-style tables disagree on exact header
// names ("Chromosome", "CHROM", "chrom_b37"), so substring matching is the
// usual way callers locate the coordinate columns.
func (t *Table) MatchColumn(substr string) int {
	substr = strings.ToLower(substr)
	for i, col := range t.Columns {
		if strings.Contains(strings.ToLower(col), substr) {
			return i
		}
	}

	return -1
}

// Require confirms that each needle matches some column, returning a
// *SchemaError naming the first one that does not.
func (t *Table) Require(needles ...string) error {
	for _, needle := range needles {
		if t.MatchColumn(needle) < 0 {
			return &SchemaError{Column: needle}
		}
	}

	return nil
}

// Append adds one record, enforcing the header width.
func (t *Table) Append(row []string) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("Append: row has %d fields but the table has %d columns", len(row), len(t.Columns))
	}
	t.Rows = append(t.Rows, row)

	return nil
}

// Slice returns a view of rows [start, end) sharing the receiver's header.
// The backing arrays are shared with the receiver.
func (t *Table) Slice(start, end int) *Table {
	return &Table{
		Columns: t.Columns,
		Rows:    t.Rows[start:end],
	}
}

// WriteCSV emits the header and all records using the given delimiter.
func (t *Table) WriteCSV(w io.Writer, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// SchemaError reports a required column that the input table lacks.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table has no column matching %q", e.Column)
}
