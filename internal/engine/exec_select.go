package engine

import (
	"github.com/pkg/errors"

	"github.com/askorykh/pagedb/internal/catalog"
	"github.com/askorykh/pagedb/internal/predicate"
	"github.com/askorykh/pagedb/internal/storage/cursor"
	"github.com/askorykh/pagedb/internal/storage/row"
)

// executeSelect scans table_start..end_of_table, evaluating Where if
// present, and projects either every column (SELECT *) or the named
// Columns in listed order.
func executeSelect(table *catalog.Table, stmt SelectStmt) (*Result, error) {
	columns, err := projectionColumns(table, stmt)
	if err != nil {
		return nil, err
	}

	result := &Result{Columns: columnNames(columns)}

	for c := cursor.TableStart(table); !c.EndOfTable; c.Advance() {
		buf, err := c.Value()
		if err != nil {
			return nil, err
		}

		r, err := row.Deserialize(table, buf)
		if err != nil {
			return nil, err
		}

		if stmt.Where != nil {
			match, err := predicate.Evaluate(table, r, *stmt.Where)
			if err != nil || !match {
				continue
			}
		}

		result.Rows = append(result.Rows, project(table, r, columns))
	}

	return result, nil
}

// projectionColumns resolves SELECT *'s "every column in schema order"
// or a named column list against the table's catalog entry, failing on
// an unknown projected column name (spec.md §4.F).
func projectionColumns(table *catalog.Table, stmt SelectStmt) ([]catalog.ColumnDefinition, error) {
	if stmt.IsStar {
		return table.Columns, nil
	}

	columns := make([]catalog.ColumnDefinition, 0, len(stmt.Columns))
	for _, name := range stmt.Columns {
		col, ok := table.Column(name)
		if !ok {
			return nil, errors.Errorf("unknown column %q", name)
		}
		columns = append(columns, col)
	}
	return columns, nil
}

func columnNames(columns []catalog.ColumnDefinition) []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	return names
}

// project extracts the projected columns' values from a fully
// deserialized row, in projection order.
func project(table *catalog.Table, r row.Row, columns []catalog.ColumnDefinition) []row.Value {
	values := make([]row.Value, len(columns))
	for i, col := range columns {
		for j, tc := range table.Columns {
			if tc.Name == col.Name {
				values[i] = r[j]
				break
			}
		}
	}
	return values
}
