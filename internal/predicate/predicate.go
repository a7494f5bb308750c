// Package predicate evaluates a single typed WHERE clause against a
// decoded row, the way the teacher's engine_filter.go/engine_update.go
// compare column values during a table scan, generalized here to a
// catalog-driven column type instead of a fixed schema.
package predicate

import (
	"github.com/pkg/errors"

	"github.com/askorykh/pagedb/internal/catalog"
	"github.com/askorykh/pagedb/internal/storage/row"
)

// Op is a WHERE comparison operator.
type Op int

const (
	Eq Op = iota
	Neq
	Lt
	Gt
	Le
	Ge
)

// ParseOp maps an operator token to an Op. Longer tokens are tried
// before their prefixes so "<=" is never mistaken for "<".
func ParseOp(s string) (Op, bool) {
	switch s {
	case "=":
		return Eq, true
	case "!=":
		return Neq, true
	case "<=":
		return Le, true
	case ">=":
		return Ge, true
	case "<":
		return Lt, true
	case ">":
		return Gt, true
	default:
		return 0, false
	}
}

func (o Op) String() string {
	switch o {
	case Eq:
		return "="
	case Neq:
		return "!="
	case Lt:
		return "<"
	case Gt:
		return ">"
	case Le:
		return "<="
	case Ge:
		return ">="
	default:
		return "?"
	}
}

// Clause is one typed (column, op, literal) WHERE condition.
type Clause struct {
	Column string
	Op     Op
	Value  row.Value
}

// Evaluate reports whether r satisfies clause, looking clause.Column up
// in table's column list to find both its type and its position in r.
//
// VARCHAR columns only support Eq/Neq: ordered comparison on VARCHAR is
// left undefined by spec, so Lt/Gt/Le/Ge against a VARCHAR column
// returns an error here rather than picking an ordering silently —
// callers treat an evaluation error as "row does not match".
func Evaluate(table *catalog.Table, r row.Row, clause Clause) (bool, error) {
	idx := -1
	var col catalog.ColumnDefinition
	for i, c := range table.Columns {
		if c.Name == clause.Column {
			idx = i
			col = c
			break
		}
	}
	if idx == -1 {
		return false, errors.Errorf("unknown column %q", clause.Column)
	}

	value := r[idx]

	switch col.Type {
	case catalog.Integer:
		return compareOrdered(value.Int(), clause.Value.Int(), clause.Op)

	case catalog.Real:
		return compareOrdered(value.Real(), clause.Value.Real(), clause.Op)

	case catalog.Varchar:
		switch clause.Op {
		case Eq:
			return value.Str() == clause.Value.Str(), nil
		case Neq:
			return value.Str() != clause.Value.Str(), nil
		default:
			return false, errors.Errorf("ordered comparison %s is undefined for VARCHAR column %q", clause.Op, clause.Column)
		}

	default:
		return false, errors.Errorf("column %q has unknown type", clause.Column)
	}
}

type ordered interface {
	~int32 | ~float64
}

func compareOrdered[T ordered](a, b T, op Op) (bool, error) {
	switch op {
	case Eq:
		return a == b, nil
	case Neq:
		return a != b, nil
	case Lt:
		return a < b, nil
	case Gt:
		return a > b, nil
	case Le:
		return a <= b, nil
	case Ge:
		return a >= b, nil
	default:
		return false, errors.Errorf("unknown operator %d", op)
	}
}
