// Package row implements the fixed-width row codec: encoding a row's
// typed values into a zero-padded byte buffer and back, exactly as
// serialize_row/deserialize_row do in the original db_tutorial C
// program, generalized from that program's fixed 3-column layout to an
// arbitrary catalog-defined column set.
package row

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/askorykh/pagedb/internal/catalog"
)

// Value is one typed row value. Its Type determines which accessor is
// meaningful; callers that already know the column type from the
// catalog can use the matching accessor directly.
type Value struct {
	typ catalog.ColumnType
	i   int32
	r   float64
	s   string
}

func Int(v int32) Value              { return Value{typ: catalog.Integer, i: v} }
func RealVal(v float64) Value        { return Value{typ: catalog.Real, r: v} }
func Str(v string) Value             { return Value{typ: catalog.Varchar, s: v} }
func (v Value) Type() catalog.ColumnType { return v.typ }
func (v Value) Int() int32           { return v.i }
func (v Value) Real() float64        { return v.r }
func (v Value) Str() string          { return v.s }

// Row is one table row, one Value per catalog column, in column order.
type Row []Value

// Serialize encodes values into a RowSize-wide zero-filled buffer. The
// buffer is always zeroed before encoding — spec.md §4.B's mandatory
// zero-fill, so that unused VARCHAR tail bytes and any gap between
// declared row_size and the sum of column widths read back as zero
// rather than stale bytes from a previous row.
func Serialize(table *catalog.Table, values Row) ([]byte, error) {
	if len(values) != len(table.Columns) {
		return nil, errors.Errorf("expected %d values, got %d", len(table.Columns), len(values))
	}

	buf := make([]byte, table.RowSize)

	for i, col := range table.Columns {
		v := values[i]
		dst := buf[col.Offset : col.Offset+col.Size]

		switch col.Type {
		case catalog.Integer:
			if v.typ != catalog.Integer {
				return nil, errors.Errorf("column %q: expected INTEGER value", col.Name)
			}
			binary.LittleEndian.PutUint32(dst, uint32(v.i))

		case catalog.Real:
			if v.typ != catalog.Real {
				return nil, errors.Errorf("column %q: expected REAL value", col.Name)
			}
			if err := putReal(dst, col.Size, v.r); err != nil {
				return nil, errors.Wrapf(err, "column %q", col.Name)
			}

		case catalog.Varchar:
			if v.typ != catalog.Varchar {
				return nil, errors.Errorf("column %q: expected VARCHAR value", col.Name)
			}
			if uint32(len(v.s)) > col.Size {
				return nil, errors.Errorf("column %q: value length %d exceeds column size %d", col.Name, len(v.s), col.Size)
			}
			// dst is already zero; copy leaves the unused tail zero-padded.
			copy(dst, v.s)

		default:
			return nil, errors.Errorf("column %q: unknown column type", col.Name)
		}
	}

	return buf, nil
}

// Deserialize decodes a RowSize-wide buffer back into typed values.
func Deserialize(table *catalog.Table, buf []byte) (Row, error) {
	if uint32(len(buf)) != table.RowSize {
		return nil, errors.Errorf("expected %d-byte row, got %d", table.RowSize, len(buf))
	}

	values := make(Row, len(table.Columns))

	for i, col := range table.Columns {
		src := buf[col.Offset : col.Offset+col.Size]

		switch col.Type {
		case catalog.Integer:
			values[i] = Int(int32(binary.LittleEndian.Uint32(src)))

		case catalog.Real:
			f, err := getReal(src, col.Size)
			if err != nil {
				return nil, errors.Wrapf(err, "column %q", col.Name)
			}
			values[i] = RealVal(f)

		case catalog.Varchar:
			end := 0
			for end < len(src) && src[end] != 0 {
				end++
			}
			values[i] = Str(string(src[:end]))

		default:
			return nil, errors.Errorf("column %q: unknown column type", col.Name)
		}
	}

	return values, nil
}

// IsZero reports whether buf is an all-zero byte image — the
// compaction algorithm's signal that a row slot has been vacated,
// relying on the schema-author contract documented in DESIGN.md (some
// column, conventionally a positive id, is always non-zero for a
// legitimate row).
func IsZero(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}

func putReal(dst []byte, size uint32, v float64) error {
	switch size {
	case 4:
		binary.LittleEndian.PutUint32(dst, math.Float32bits(float32(v)))
	case 8:
		binary.LittleEndian.PutUint64(dst, math.Float64bits(v))
	default:
		return errors.Errorf("unsupported REAL width %d", size)
	}
	return nil
}

func getReal(src []byte, size uint32) (float64, error) {
	switch size {
	case 4:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(src))), nil
	case 8:
		return math.Float64frombits(binary.LittleEndian.Uint64(src)), nil
	default:
		return 0, errors.Errorf("unsupported REAL width %d", size)
	}
}
