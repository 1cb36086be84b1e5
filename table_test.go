package liftcoords

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestReadTable(t *testing.T) {
	in := "CHROM,POS,rsid\n1,100,rs1\n2,200,rs2\n"

	tbl, err := ReadTable(strings.NewReader(in), ',')
	if err != nil {
		t.Fatal(err)
	}

	if tbl.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.Len())
	}
	if tbl.Columns[2] != "rsid" {
		t.Fatalf("unexpected header: %v", tbl.Columns)
	}
	if tbl.Rows[1][1] != "200" {
		t.Fatalf("unexpected row: %v", tbl.Rows[1])
	}
}

func TestReadTableEmpty(t *testing.T) {
	if _, err := ReadTable(strings.NewReader(""), ','); err == nil {
		t.Fatal("expected an error for empty input")
	}
}

func TestColumnMatching(t *testing.T) {
	tbl := NewTable([]string{"rsid", "Chromosome", "Start_Position", "End_Position"})

	for _, v := range []struct {
		needle string
		exact  bool
		want   int
	}{
		{"chromosome", true, 1},
		{"CHROM", false, 1},
		{"pos", false, 2},
		{"start", false, 2},
		{"end", false, 3},
		{"build", false, -1},
		{"Start_Position", true, 2},
		{"start_position", true, 2},
		{"position", true, -1},
	} {
		var got int
		if v.exact {
			got = tbl.ColumnIndex(v.needle)
		} else {
			got = tbl.MatchColumn(v.needle)
		}
		if got != v.want {
			t.Errorf("needle %q (exact=%v): expected %d, got %d", v.needle, v.exact, v.want, got)
		}
	}
}

func TestRequire(t *testing.T) {
	tbl := NewTable([]string{"Chromosome", "Start_Position"})

	if err := tbl.Require("chrom", "pos"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := tbl.Require("chrom", "build")
	if err == nil {
		t.Fatal("expected a schema error")
	}
	var se *SchemaError
	if !errors.As(err, &se) || se.Column != "build" {
		t.Fatalf("expected SchemaError for 'build', got %v", err)
	}
}

func TestAppendEnforcesWidth(t *testing.T) {
	tbl := NewTable([]string{"chrom", "pos"})

	if err := tbl.Append([]string{"1", "100"}); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Append([]string{"1"}); err == nil {
		t.Fatal("expected an error for a short row")
	}
}

func TestSlice(t *testing.T) {
	tbl := NewTable([]string{"chrom", "pos"})
	for _, row := range [][]string{{"1", "100"}, {"2", "200"}, {"3", "300"}} {
		if err := tbl.Append(row); err != nil {
			t.Fatal(err)
		}
	}

	s := tbl.Slice(1, 3)
	if s.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", s.Len())
	}
	if s.Rows[0][0] != "2" {
		t.Fatalf("unexpected first row: %v", s.Rows[0])
	}
}

func TestWriteCSV(t *testing.T) {
	tbl := NewTable([]string{"chrom", "pos"})
	if err := tbl.Append([]string{"1", "100"}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := tbl.WriteCSV(&buf, '\t'); err != nil {
		t.Fatal(err)
	}

	if expected := "chrom\tpos\n1\t100\n"; buf.String() != expected {
		t.Fatalf("expected %q, got %q", expected, buf.String())
	}
}
