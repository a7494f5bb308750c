package frontend

import (
	"strings"

	"github.com/askorykh/pagedb/internal/catalog"
	"github.com/askorykh/pagedb/internal/engine"
	"github.com/askorykh/pagedb/internal/storage/row"
)

// parseInsert parses "INSERT INTO <table> VALUES (v1, v2, ...)". A
// value must be supplied for every catalog column, in catalog order —
// there is no partial-column-list form, matching the original
// db_tutorial C program this store traces back to.
func parseInsert(line string, schema *catalog.Schema) (engine.Statement, *FrontendError) {
	rest := strings.TrimSpace(line[len(firstWord(line)):])

	upperRest := strings.ToUpper(rest)
	if !strings.HasPrefix(upperRest, "INTO") {
		return nil, syntaxErrf("expected INSERT INTO <table> VALUES (...)")
	}
	rest = strings.TrimSpace(rest[len("INTO"):])

	valuesIdx := strings.Index(strings.ToUpper(rest), "VALUES")
	if valuesIdx == -1 {
		return nil, syntaxErrf("expected VALUES (...) after table name")
	}

	tableName := strings.TrimSpace(rest[:valuesIdx])
	table, ferr := resolveTable(schema, tableName)
	if ferr != nil {
		return nil, ferr
	}

	valuesPart := strings.TrimSpace(rest[valuesIdx+len("VALUES"):])
	if !strings.HasPrefix(valuesPart, "(") || !strings.HasSuffix(valuesPart, ")") {
		return nil, syntaxErrf("expected '(...)' after VALUES")
	}

	tokens := splitCommaSeparated(valuesPart[1 : len(valuesPart)-1])
	if len(tokens) != len(table.Columns) {
		return nil, syntaxErrf("expected %d values, got %d", len(table.Columns), len(tokens))
	}

	values := make(row.Row, len(tokens))
	for i, tok := range tokens {
		v, ferr := parseLiteral(tok, table.Columns[i])
		if ferr != nil {
			return nil, ferr
		}
		values[i] = v
	}

	return engine.InsertStmt{Table: table.Name, Values: values}, nil
}
