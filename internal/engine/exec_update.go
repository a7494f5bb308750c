package engine

import (
	"github.com/pkg/errors"

	"github.com/askorykh/pagedb/internal/catalog"
	"github.com/askorykh/pagedb/internal/predicate"
	"github.com/askorykh/pagedb/internal/storage/cursor"
	"github.com/askorykh/pagedb/internal/storage/row"
)

// executeUpdate scans table_start..end_of_table and, for every row
// matching stmt.Where, overwrites the target column and re-serializes
// the row in place. spec.md requires a WHERE clause on every UPDATE;
// the front-end refuses to parse one without it, so there is no
// "update every row" fallback here.
func executeUpdate(table *catalog.Table, stmt UpdateStmt) error {
	colIdx := -1
	for i, c := range table.Columns {
		if c.Name == stmt.Column {
			colIdx = i
			break
		}
	}
	if colIdx == -1 {
		return errors.Errorf("unknown column %q", stmt.Column)
	}

	for c := cursor.TableStart(table); !c.EndOfTable; c.Advance() {
		buf, err := c.Value()
		if err != nil {
			return err
		}

		r, err := row.Deserialize(table, buf)
		if err != nil {
			return err
		}

		match, err := predicate.Evaluate(table, r, stmt.Where)
		if err != nil || !match {
			continue
		}

		r[colIdx] = stmt.Value

		newBuf, err := row.Serialize(table, r)
		if err != nil {
			return err
		}
		copy(buf, newBuf)
	}

	return nil
}
