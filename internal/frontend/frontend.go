// Package frontend parses one SQL statement line into an
// engine.Statement, resolving table and column references against a
// loaded catalog.Schema. Grounded on the teacher's internal/sql parser
// (parser.go, parse_insert.go, parse_select.go, parse_update.go,
// parse_delete.go, parser_utils.go): the same hand-written,
// first-token-dispatch, case-insensitive recursive-descent shape, but
// resolving against a static schema instead of a schemaless CREATE
// TABLE AST.
package frontend

import (
	"fmt"
	"strings"

	"github.com/askorykh/pagedb/internal/catalog"
	"github.com/askorykh/pagedb/internal/engine"
)

// ErrorKind is the prepare-time error taxonomy from spec.md §7.
type ErrorKind int

const (
	Syntax ErrorKind = iota
	UnknownStatement
	UnknownTable
	UnknownColumn
	StringTooLong
	NegativeId
	Internal
)

// FrontendError is the front-end's recoverable error value. Message is
// a diagnostic for logs; the REPL driver maps Kind to the exact
// user-facing strings in spec.md §6.1 rather than printing Message
// directly.
type FrontendError struct {
	Kind    ErrorKind
	Message string
}

func (e *FrontendError) Error() string {
	return e.Message
}

func syntaxErrf(format string, args ...any) *FrontendError {
	return &FrontendError{Kind: Syntax, Message: fmt.Sprintf(format, args...)}
}

// Parse parses one statement line (optionally ';'-terminated) against
// schema, dispatching on its first keyword.
func Parse(line string, schema *catalog.Schema) (engine.Statement, *FrontendError) {
	line = strings.TrimSpace(line)
	line = strings.TrimSuffix(strings.TrimSpace(line), ";")
	line = strings.TrimSpace(line)

	if line == "" {
		return nil, syntaxErrf("empty statement")
	}

	keyword := firstWord(line)
	switch strings.ToUpper(keyword) {
	case "INSERT":
		return parseInsert(line, schema)
	case "SELECT":
		return parseSelect(line, schema)
	case "UPDATE":
		return parseUpdate(line, schema)
	case "DELETE":
		return parseDelete(line, schema)
	default:
		return nil, &FrontendError{
			Kind:    UnknownStatement,
			Message: "unrecognized keyword at start of '" + line + "'",
		}
	}
}

// resolveTable looks name up in schema, producing the UnknownTable
// FrontendError on a miss.
func resolveTable(schema *catalog.Schema, name string) (*catalog.Table, *FrontendError) {
	table, ok := schema.Table(name)
	if !ok {
		return nil, &FrontendError{Kind: UnknownTable, Message: "no such table: " + name}
	}
	return table, nil
}
