// Package cursor implements absolute row-index positioning over a
// table's pages, mirroring table_start/table_end/cursor_advance/
// cursor_value in the original db_tutorial C program this store is
// descended from.
package cursor

import (
	"github.com/askorykh/pagedb/internal/catalog"
)

// Cursor tracks a position within a table by absolute row number.
type Cursor struct {
	Table      *catalog.Table
	RowNum     uint32
	EndOfTable bool
}

// TableStart returns a cursor positioned at row 0. EndOfTable is true
// immediately if the table has no rows.
func TableStart(table *catalog.Table) *Cursor {
	return &Cursor{Table: table, RowNum: 0, EndOfTable: table.NumRows == 0}
}

// TableEnd returns a cursor positioned one past the last row, ready for
// the next INSERT to append there.
func TableEnd(table *catalog.Table) *Cursor {
	return &Cursor{Table: table, RowNum: table.NumRows, EndOfTable: true}
}

// Advance moves the cursor to the next row, setting EndOfTable once it
// passes the last live row.
func (c *Cursor) Advance() {
	c.RowNum++
	if c.RowNum >= c.Table.NumRows {
		c.EndOfTable = true
	}
}

// Value returns the row-sized byte slice at the cursor's current
// position, demand-loading the backing page if necessary. The returned
// slice aliases the pager's page buffer; callers that need to retain it
// past the next mutation should copy it.
func (c *Cursor) Value() ([]byte, error) {
	pageNum := c.RowNum / c.Table.RowsPerPage
	rowOffsetInPage := (c.RowNum % c.Table.RowsPerPage) * c.Table.RowSize

	pg, err := c.Table.Pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}

	return pg[rowOffsetInPage : rowOffsetInPage+c.Table.RowSize], nil
}
