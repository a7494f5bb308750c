package cursor

import (
	"testing"

	"github.com/askorykh/pagedb/internal/catalog"
	"github.com/askorykh/pagedb/internal/storage/pager"
)

func testTable(numRows uint32) *catalog.Table {
	t := &catalog.Table{
		Name: "widgets",
		Columns: []catalog.ColumnDefinition{
			{Name: "id", Type: catalog.Integer, Size: 4, Offset: 0},
		},
		RowSize: 4,
		Pager:   pager.OpenBackend(pager.NewMemBackend(), 0),
	}
	t.RowsPerPage = pager.PageSize / t.RowSize
	t.MaxRows = t.RowsPerPage * pager.TableMaxPages
	t.NumRows = numRows
	return t
}

func TestTableStartEmptyTable(t *testing.T) {
	tbl := testTable(0)
	c := TableStart(tbl)
	if !c.EndOfTable {
		t.Fatalf("expected EndOfTable true for empty table")
	}
}

func TestTableStartNonEmptyTable(t *testing.T) {
	tbl := testTable(3)
	c := TableStart(tbl)
	if c.EndOfTable {
		t.Fatalf("expected EndOfTable false for non-empty table")
	}
	if c.RowNum != 0 {
		t.Fatalf("RowNum = %d, want 0", c.RowNum)
	}
}

func TestTableEnd(t *testing.T) {
	tbl := testTable(3)
	c := TableEnd(tbl)
	if !c.EndOfTable {
		t.Fatalf("expected EndOfTable true at table end")
	}
	if c.RowNum != 3 {
		t.Fatalf("RowNum = %d, want 3", c.RowNum)
	}
}

func TestAdvanceStopsAtLastRow(t *testing.T) {
	tbl := testTable(2)
	c := TableStart(tbl)

	c.Advance()
	if c.EndOfTable {
		t.Fatalf("expected EndOfTable false after first advance (row 1 of 2)")
	}

	c.Advance()
	if !c.EndOfTable {
		t.Fatalf("expected EndOfTable true after advancing past last row")
	}
}

func TestValueCrossesPageBoundary(t *testing.T) {
	tbl := testTable(1)
	tbl.RowsPerPage = 2 // force a page boundary after 2 rows for this test

	c := &Cursor{Table: tbl, RowNum: 3}
	val, err := c.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if len(val) != int(tbl.RowSize) {
		t.Fatalf("len(val) = %d, want %d", len(val), tbl.RowSize)
	}

	copy(val, []byte{1, 2, 3, 4})

	// Row 3 with RowsPerPage=2 lands on page 1, offset 4.
	pg, err := tbl.Pager.GetPage(1)
	if err != nil {
		t.Fatalf("GetPage(1): %v", err)
	}
	if pg[4] != 1 || pg[5] != 2 || pg[6] != 3 || pg[7] != 4 {
		t.Fatalf("expected row written at page 1 offset 4, got %v", pg[4:8])
	}
}
