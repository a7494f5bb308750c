package frontend

import (
	"strings"

	"github.com/askorykh/pagedb/internal/catalog"
	"github.com/askorykh/pagedb/internal/engine"
)

// parseUpdate parses "UPDATE <table> SET <col> = <value> WHERE ...".
// A WHERE clause is mandatory — matching the teacher's own parseUpdate,
// which already hard-requires one, and matching spec.md §9's redesign
// note calling out the source's missing no-WHERE guard.
func parseUpdate(line string, schema *catalog.Schema) (engine.Statement, *FrontendError) {
	rest := strings.TrimSpace(line[len(firstWord(line)):])

	setIdx := strings.Index(strings.ToUpper(rest), "SET")
	if setIdx == -1 {
		return nil, syntaxErrf("expected UPDATE <table> SET <col> = <value> WHERE ...")
	}

	tableName := strings.TrimSpace(rest[:setIdx])
	table, ferr := resolveTable(schema, tableName)
	if ferr != nil {
		return nil, ferr
	}

	afterSet := strings.TrimSpace(rest[setIdx+len("SET"):])

	whereIdx := strings.Index(strings.ToUpper(afterSet), "WHERE")
	if whereIdx == -1 {
		return nil, syntaxErrf("UPDATE requires a WHERE clause")
	}

	assignment := strings.TrimSpace(afterSet[:whereIdx])
	wherePart := strings.TrimSpace(afterSet[whereIdx+len("WHERE"):])

	eqIdx := strings.Index(assignment, "=")
	if eqIdx == -1 {
		return nil, syntaxErrf("expected <col> = <value> after SET")
	}

	colName := strings.TrimSpace(assignment[:eqIdx])
	valueTok := strings.TrimSpace(assignment[eqIdx+1:])

	col, ok := table.Column(colName)
	if !ok {
		return nil, &FrontendError{Kind: UnknownColumn, Message: "no such column: " + colName}
	}

	value, ferr := parseLiteral(valueTok, col)
	if ferr != nil {
		return nil, ferr
	}

	clause, ferr := parseWhereClause(wherePart, table)
	if ferr != nil {
		return nil, ferr
	}

	return engine.UpdateStmt{
		Table:  table.Name,
		Column: colName,
		Value:  value,
		Where:  clause,
	}, nil
}
