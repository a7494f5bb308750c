// Package engine implements statement execution over a catalog.Schema:
// INSERT, SELECT, UPDATE, DELETE (with post-delete compaction), in the
// teacher's Execute-dispatch-by-statement-type shape, generalized from
// the teacher's AST-driven execution to the catalog-resolved Statement
// values the front-end produces.
package engine

import (
	"github.com/pkg/errors"

	"github.com/askorykh/pagedb/internal/catalog"
	"github.com/askorykh/pagedb/internal/predicate"
	"github.com/askorykh/pagedb/internal/storage/row"
)

// ErrTableFull is the one recoverable execute-time error (spec.md §7):
// INSERT into a table already at max_rows. Every other error Execute
// returns is treated as fatal by the driver; storage failures arrive as
// a *pager.FatalError, other internal inconsistencies as plain errors.
var ErrTableFull = errors.New("table full")

// Statement is the front-end → engine contract (spec.md §6.2): one of
// InsertStmt, SelectStmt, UpdateStmt, DeleteStmt.
type Statement interface {
	TableName() string
	isStatement()
}

// InsertStmt carries one fully-encoded row of values, in catalog column
// order, ready for row.Serialize.
type InsertStmt struct {
	Table  string
	Values row.Row
}

func (s InsertStmt) TableName() string { return s.Table }
func (InsertStmt) isStatement()        {}

// SelectStmt projects either every column (IsStar) or the named
// Columns, in listed order, optionally filtered by Where.
type SelectStmt struct {
	Table   string
	IsStar  bool
	Columns []string
	Where   *predicate.Clause
}

func (s SelectStmt) TableName() string { return s.Table }
func (SelectStmt) isStatement()        {}

// UpdateStmt overwrites one column on every row matching Where.
// spec.md requires a WHERE clause be present; the front-end enforces
// this at parse time, so Where is never nil here.
type UpdateStmt struct {
	Table  string
	Column string
	Value  row.Value
	Where  predicate.Clause
}

func (s UpdateStmt) TableName() string { return s.Table }
func (UpdateStmt) isStatement()        {}

// DeleteStmt removes every row matching Where, then compacts.
type DeleteStmt struct {
	Table string
	Where predicate.Clause
}

func (s DeleteStmt) TableName() string { return s.Table }
func (DeleteStmt) isStatement()        {}

// Result is what a successful statement hands back to the driver.
// INSERT/UPDATE/DELETE return a nil *Result — the driver just prints
// "Executed."; SELECT returns a Result with Columns set and one Rows
// entry per matching row.
type Result struct {
	Columns []string
	Rows    [][]row.Value
}

// Execute dispatches stmt to its handler and resolves its target table
// against schema. Table lookup failure here means the front-end handed
// the engine a statement for a table it somehow didn't validate — an
// internal inconsistency, not a user-facing UnknownTable (the front-end
// owns that check before Execute is ever called).
func Execute(schema *catalog.Schema, stmt Statement) (*Result, error) {
	table, ok := schema.Table(stmt.TableName())
	if !ok {
		return nil, errors.Errorf("engine: unresolved table %q", stmt.TableName())
	}

	switch s := stmt.(type) {
	case InsertStmt:
		return nil, executeInsert(table, s)
	case SelectStmt:
		return executeSelect(table, s)
	case UpdateStmt:
		return nil, executeUpdate(table, s)
	case DeleteStmt:
		return nil, executeDelete(table, s)
	default:
		return nil, errors.Errorf("engine: unhandled statement type %T", stmt)
	}
}
