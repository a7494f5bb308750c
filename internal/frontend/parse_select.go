package frontend

import (
	"strings"

	"github.com/askorykh/pagedb/internal/catalog"
	"github.com/askorykh/pagedb/internal/engine"
)

// parseSelect parses "SELECT * FROM <table> [WHERE ...]" or
// "SELECT col1, col2 FROM <table> [WHERE ...]".
func parseSelect(line string, schema *catalog.Schema) (engine.Statement, *FrontendError) {
	rest := strings.TrimSpace(line[len(firstWord(line)):])

	fromIdx := strings.Index(strings.ToUpper(rest), "FROM")
	if fromIdx == -1 {
		return nil, syntaxErrf("expected SELECT ... FROM <table>")
	}

	projPart := strings.TrimSpace(rest[:fromIdx])
	afterFrom := strings.TrimSpace(rest[fromIdx+len("FROM"):])

	var tableName, wherePart string
	if whereIdx := strings.Index(strings.ToUpper(afterFrom), "WHERE"); whereIdx == -1 {
		tableName = strings.TrimSpace(afterFrom)
	} else {
		tableName = strings.TrimSpace(afterFrom[:whereIdx])
		wherePart = strings.TrimSpace(afterFrom[whereIdx+len("WHERE"):])
	}

	table, ferr := resolveTable(schema, tableName)
	if ferr != nil {
		return nil, ferr
	}

	stmt := engine.SelectStmt{Table: table.Name}

	if projPart == "*" {
		stmt.IsStar = true
	} else {
		names := splitCommaSeparated(projPart)
		for _, name := range names {
			if _, ok := table.Column(name); !ok {
				return nil, &FrontendError{Kind: UnknownColumn, Message: "no such column: " + name}
			}
		}
		stmt.Columns = names
	}

	if wherePart != "" {
		clause, ferr := parseWhereClause(wherePart, table)
		if ferr != nil {
			return nil, ferr
		}
		stmt.Where = &clause
	}

	return stmt, nil
}
