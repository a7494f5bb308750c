package predicate

import (
	"testing"

	"github.com/askorykh/pagedb/internal/catalog"
	"github.com/askorykh/pagedb/internal/storage/row"
)

func testTable() *catalog.Table {
	return &catalog.Table{
		Columns: []catalog.ColumnDefinition{
			{Name: "id", Type: catalog.Integer, Size: 4, Offset: 0},
			{Name: "name", Type: catalog.Varchar, Size: 16, Offset: 4},
			{Name: "score", Type: catalog.Real, Size: 8, Offset: 20},
		},
	}
}

func TestEvaluateIntegerOps(t *testing.T) {
	tbl := testTable()
	r := row.Row{row.Int(5), row.Str("bob"), row.RealVal(1.0)}

	cases := []struct {
		op   Op
		val  int32
		want bool
	}{
		{Eq, 5, true}, {Eq, 6, false},
		{Neq, 6, true}, {Neq, 5, false},
		{Lt, 6, true}, {Lt, 5, false},
		{Gt, 4, true}, {Gt, 5, false},
		{Le, 5, true}, {Le, 4, false},
		{Ge, 5, true}, {Ge, 6, false},
	}

	for _, c := range cases {
		got, err := Evaluate(tbl, r, Clause{Column: "id", Op: c.op, Value: row.Int(c.val)})
		if err != nil {
			t.Fatalf("Evaluate(op=%v): %v", c.op, err)
		}
		if got != c.want {
			t.Errorf("id %v %d: got %v, want %v", c.op, c.val, got, c.want)
		}
	}
}

func TestEvaluateVarcharEquality(t *testing.T) {
	tbl := testTable()
	r := row.Row{row.Int(1), row.Str("bob"), row.RealVal(0)}

	got, err := Evaluate(tbl, r, Clause{Column: "name", Op: Eq, Value: row.Str("bob")})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !got {
		t.Fatalf("expected name = 'bob' to match")
	}

	got, err = Evaluate(tbl, r, Clause{Column: "name", Op: Neq, Value: row.Str("alice")})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !got {
		t.Fatalf("expected name != 'alice' to match")
	}
}

func TestEvaluateVarcharOrderedComparisonErrors(t *testing.T) {
	tbl := testTable()
	r := row.Row{row.Int(1), row.Str("bob"), row.RealVal(0)}

	for _, op := range []Op{Lt, Gt, Le, Ge} {
		if _, err := Evaluate(tbl, r, Clause{Column: "name", Op: op, Value: row.Str("alice")}); err == nil {
			t.Errorf("expected error for ordered VARCHAR comparison %v", op)
		}
	}
}

func TestEvaluateRealOps(t *testing.T) {
	tbl := testTable()
	r := row.Row{row.Int(1), row.Str("bob"), row.RealVal(3.5)}

	got, err := Evaluate(tbl, r, Clause{Column: "score", Op: Gt, Value: row.RealVal(3.0)})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !got {
		t.Fatalf("expected score > 3.0 to match")
	}
}

func TestEvaluateUnknownColumn(t *testing.T) {
	tbl := testTable()
	r := row.Row{row.Int(1), row.Str("bob"), row.RealVal(0)}

	if _, err := Evaluate(tbl, r, Clause{Column: "nope", Op: Eq, Value: row.Int(1)}); err == nil {
		t.Fatalf("expected error for unknown column")
	}
}

func TestParseOp(t *testing.T) {
	cases := map[string]Op{"=": Eq, "!=": Neq, "<": Lt, ">": Gt, "<=": Le, ">=": Ge}
	for tok, want := range cases {
		got, ok := ParseOp(tok)
		if !ok || got != want {
			t.Errorf("ParseOp(%q) = %v, %v; want %v, true", tok, got, ok, want)
		}
	}

	if _, ok := ParseOp("<>"); ok {
		t.Errorf("expected ParseOp(\"<>\") to fail")
	}
}
