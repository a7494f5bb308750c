package frontend

import (
	"strings"

	"github.com/askorykh/pagedb/internal/catalog"
	"github.com/askorykh/pagedb/internal/engine"
)

// parseDelete parses "DELETE FROM <table> WHERE ...". Per spec.md §1's
// Non-goals ("deletion without a WHERE clause"), a WHERE is mandatory —
// again matching the teacher's parseDelete, which already refuses a
// bare DELETE FROM.
func parseDelete(line string, schema *catalog.Schema) (engine.Statement, *FrontendError) {
	rest := strings.TrimSpace(line[len(firstWord(line)):])

	upperRest := strings.ToUpper(rest)
	if !strings.HasPrefix(upperRest, "FROM") {
		return nil, syntaxErrf("expected DELETE FROM <table> WHERE ...")
	}
	rest = strings.TrimSpace(rest[len("FROM"):])

	whereIdx := strings.Index(strings.ToUpper(rest), "WHERE")
	if whereIdx == -1 {
		return nil, syntaxErrf("DELETE requires a WHERE clause")
	}

	tableName := strings.TrimSpace(rest[:whereIdx])
	wherePart := strings.TrimSpace(rest[whereIdx+len("WHERE"):])

	table, ferr := resolveTable(schema, tableName)
	if ferr != nil {
		return nil, ferr
	}

	clause, ferr := parseWhereClause(wherePart, table)
	if ferr != nil {
		return nil, ferr
	}

	return engine.DeleteStmt{Table: table.Name, Where: clause}, nil
}
