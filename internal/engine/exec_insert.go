package engine

import (
	"github.com/askorykh/pagedb/internal/catalog"
	"github.com/askorykh/pagedb/internal/storage/cursor"
	"github.com/askorykh/pagedb/internal/storage/row"
)

// executeInsert opens a cursor at table_end, serializes stmt.Values
// into that slot, and increments num_rows. O(1) per spec.md §4.F.
func executeInsert(table *catalog.Table, stmt InsertStmt) error {
	if table.NumRows >= table.MaxRows {
		return ErrTableFull
	}

	buf, err := row.Serialize(table, stmt.Values)
	if err != nil {
		return err
	}

	c := cursor.TableEnd(table)
	dst, err := c.Value()
	if err != nil {
		return err
	}

	copy(dst, buf)
	table.NumRows++

	return nil
}
