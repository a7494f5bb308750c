package frontend

import (
	"strconv"
	"strings"

	"github.com/askorykh/pagedb/internal/catalog"
	"github.com/askorykh/pagedb/internal/predicate"
	"github.com/askorykh/pagedb/internal/storage/row"
)

// firstWord returns the first whitespace-delimited token of s.
func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// splitCommaSeparated splits s on top-level commas and trims each
// piece. It does not attempt to respect commas inside quoted strings —
// matching the teacher's parser_utils.go, which has the same limitation.
func splitCommaSeparated(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// stripQuotes removes one layer of surrounding single quotes from a
// VARCHAR literal, per spec.md §4.B ("the literal arrives wrapped in
// single quotes; the quotes are stripped").
func stripQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'") {
		return s[1 : len(s)-1]
	}
	return s
}

// parseLiteral parses one literal token against a column's declared
// type, returning a typed row.Value. INTEGER literals named exactly
// "id" are checked for positivity here (spec.md §4.B); callers pass
// the column's name so the special-case check can apply.
func parseLiteral(token string, col catalog.ColumnDefinition) (row.Value, *FrontendError) {
	switch col.Type {
	case catalog.Integer:
		n, err := strconv.ParseInt(token, 10, 32)
		if err != nil {
			return row.Value{}, syntaxErrf("invalid integer literal %q", token)
		}
		if col.Name == "id" && n <= 0 {
			return row.Value{}, &FrontendError{Kind: NegativeId, Message: "id must be positive, got " + token}
		}
		return row.Int(int32(n)), nil

	case catalog.Real:
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return row.Value{}, syntaxErrf("invalid real literal %q", token)
		}
		return row.RealVal(f), nil

	case catalog.Varchar:
		value := stripQuotes(token)
		if uint32(len(value)) > col.Size {
			return row.Value{}, &FrontendError{
				Kind:    StringTooLong,
				Message: "value for column " + col.Name + " exceeds size " + strconv.Itoa(int(col.Size)),
			}
		}
		return row.Str(value), nil

	default:
		return row.Value{}, &FrontendError{Kind: Internal, Message: "unknown column type for " + col.Name}
	}
}

// parseWhereClause parses "<column> <op> <literal>" against table,
// where op is one of predicate.ParseOp's tokens.
func parseWhereClause(clause string, table *catalog.Table) (predicate.Clause, *FrontendError) {
	clause = strings.TrimSpace(clause)

	opTokens := []string{"!=", "<=", ">=", "=", "<", ">"}
	for _, opTok := range opTokens {
		idx := strings.Index(clause, opTok)
		if idx == -1 {
			continue
		}

		colName := strings.TrimSpace(clause[:idx])
		valueTok := strings.TrimSpace(clause[idx+len(opTok):])

		col, ok := table.Column(colName)
		if !ok {
			return predicate.Clause{}, &FrontendError{Kind: UnknownColumn, Message: "no such column: " + colName}
		}

		op, _ := predicate.ParseOp(opTok)

		value, ferr := parseLiteral(valueTok, col)
		if ferr != nil {
			return predicate.Clause{}, ferr
		}

		return predicate.Clause{Column: colName, Op: op, Value: value}, nil
	}

	return predicate.Clause{}, syntaxErrf("invalid WHERE clause %q", clause)
}
