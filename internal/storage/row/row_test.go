package row

import (
	"testing"

	"github.com/askorykh/pagedb/internal/catalog"
)

func testTable() *catalog.Table {
	t := &catalog.Table{
		Columns: []catalog.ColumnDefinition{
			{Name: "id", Type: catalog.Integer, Size: 4, Offset: 0},
			{Name: "username", Type: catalog.Varchar, Size: 8, Offset: 4},
			{Name: "score", Type: catalog.Real, Size: 4, Offset: 12},
		},
		RowSize: 16,
	}
	return t
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	tbl := testTable()
	in := Row{Int(7), Str("bob"), RealVal(3.5)}

	buf, err := Serialize(tbl, in)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if uint32(len(buf)) != tbl.RowSize {
		t.Fatalf("len(buf) = %d, want %d", len(buf), tbl.RowSize)
	}

	out, err := Deserialize(tbl, buf)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	if out[0].Int() != 7 {
		t.Errorf("id = %d, want 7", out[0].Int())
	}
	if out[1].Str() != "bob" {
		t.Errorf("username = %q, want %q", out[1].Str(), "bob")
	}
	if out[2].Real() != 3.5 {
		t.Errorf("score = %v, want 3.5", out[2].Real())
	}
}

func TestSerializeZeroPadsVarcharTail(t *testing.T) {
	tbl := testTable()
	buf, err := Serialize(tbl, Row{Int(1), Str("ab"), RealVal(0)})
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	// username occupies bytes [4:12); only 2 are "ab", rest must be zero.
	for i := 6; i < 12; i++ {
		if buf[i] != 0 {
			t.Fatalf("byte %d = %d, want 0 (zero-padded tail)", i, buf[i])
		}
	}
}

func TestSerializeRejectsOversizedVarchar(t *testing.T) {
	tbl := testTable()
	_, err := Serialize(tbl, Row{Int(1), Str("toolongforeightbytes"), RealVal(0)})
	if err == nil {
		t.Fatalf("expected error for oversized VARCHAR value")
	}
}

func TestSerializeReusesBufferCleanly(t *testing.T) {
	tbl := testTable()

	first, err := Serialize(tbl, Row{Int(1), Str("alicesname"[:8]), RealVal(1)})
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	second, err := Serialize(tbl, Row{Int(2), Str("x"), RealVal(0)})
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	// A fresh Serialize call must not leak bytes from a previous buffer;
	// each call allocates its own zero-filled slice.
	if &first[0] == &second[0] {
		t.Fatalf("expected distinct buffers")
	}
	for i := 5; i < 12; i++ {
		if second[i] != 0 {
			t.Fatalf("second buffer byte %d = %d, want 0", i, second[i])
		}
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(make([]byte, 16)) {
		t.Fatalf("expected all-zero buffer to report IsZero")
	}

	tbl := testTable()
	buf, _ := Serialize(tbl, Row{Int(1), Str("bob"), RealVal(0)})
	if IsZero(buf) {
		t.Fatalf("expected non-zero row (id=1) to not report IsZero")
	}
}

func TestRealWidths(t *testing.T) {
	tbl := &catalog.Table{
		Columns: []catalog.ColumnDefinition{
			{Name: "f32", Type: catalog.Real, Size: 4, Offset: 0},
			{Name: "f64", Type: catalog.Real, Size: 8, Offset: 4},
		},
		RowSize: 12,
	}

	buf, err := Serialize(tbl, Row{RealVal(1.5), RealVal(2.25)})
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	out, err := Deserialize(tbl, buf)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	if out[0].Real() != 1.5 {
		t.Errorf("f32 = %v, want 1.5", out[0].Real())
	}
	if out[1].Real() != 2.25 {
		t.Errorf("f64 = %v, want 2.25", out[1].Real())
	}
}
