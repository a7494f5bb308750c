// Package catalog loads the schema file that describes every table in a
// database directory and opens each table's pager, mirroring db_open's
// row-size/rows-per-page/num-rows derivation in the original db_tutorial
// C program this store is descended from.
package catalog

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/askorykh/pagedb/internal/storage/pager"
)

// ColumnType is the set of scalar types a column may hold.
type ColumnType int

const (
	Integer ColumnType = iota
	Real
	Varchar
)

func (t ColumnType) String() string {
	switch t {
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	case Varchar:
		return "VARCHAR"
	default:
		return "UNKNOWN"
	}
}

// ParseColumnType maps a schema-file type token to a ColumnType. The
// schema grammar's canonical tokens are "int", "varchar", "real"
// (spec.md §4.D); "integer" is also accepted since it is how the type
// is spelled out everywhere else in the spec.
func ParseColumnType(s string) (ColumnType, error) {
	switch strings.ToUpper(s) {
	case "INT", "INTEGER":
		return Integer, nil
	case "REAL":
		return Real, nil
	case "VARCHAR":
		return Varchar, nil
	default:
		return 0, errors.Errorf("unknown column type %q", s)
	}
}

// ColumnDefinition describes one fixed-width column: its declared size in
// bytes and its byte offset within the row, computed as a prefix sum over
// the table's columns in declaration order.
type ColumnDefinition struct {
	Name   string
	Type   ColumnType
	Size   uint32
	Offset uint32
}

// Table is one loaded table: its column layout, derived row/page
// geometry, live row count, and the pager backing its file.
type Table struct {
	Name        string
	Columns     []ColumnDefinition
	RowSize     uint32
	RowsPerPage uint32
	MaxRows     uint32
	NumRows     uint32
	Pager       *pager.Pager
	Filename    string
}

// Column looks up a column by name, case-sensitive per spec.md §4.B.
func (t *Table) Column(name string) (ColumnDefinition, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnDefinition{}, false
}

// NumFullPages and PartialRows describe the table's current page layout
// for a pager Close/Flush call: full pages hold RowsPerPage rows each,
// and at most one trailing page holds the remainder.
func (t *Table) NumFullPages() uint32 {
	return t.NumRows / t.RowsPerPage
}

func (t *Table) PartialRows() uint32 {
	return t.NumRows % t.RowsPerPage
}

// Schema is the set of tables loaded from one schema file, in
// declaration order, with a name index for lookup.
type Schema struct {
	Tables []*Table
	byName map[string]*Table
}

// Table looks up a table by name.
func (s *Schema) Table(name string) (*Table, bool) {
	t, ok := s.byName[name]
	return t, ok
}

// NewTable builds a Table from its columns and an already-open pager,
// computing column offsets and row/page geometry the same way Open
// does. Exported for tests that want a table over an in-memory pager
// backend without going through a schema file.
func NewTable(name string, columns []ColumnDefinition, pgr *pager.Pager, numRows uint32) *Table {
	t := &Table{Name: name, Columns: columns, Pager: pgr, NumRows: numRows}
	computeLayout(t)
	return t
}

// NewSchema bundles already-built tables into a Schema, for tests.
func NewSchema(tables ...*Table) *Schema {
	s := &Schema{byName: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		s.Tables = append(s.Tables, t)
		s.byName[t.Name] = t
	}
	return s
}

// Open parses the schema file at schemaPath and opens every table's
// pager, creating dataDir if it does not already exist. Per-table
// filenames are dataDir/<name>.table, matching spec.md's
// "data/" + table_name + ".table" rule generalized to a configurable
// data directory.
func Open(schemaPath, dataDir string) (*Schema, error) {
	tables, err := parseSchemaFile(schemaPath)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog: parse schema %s", schemaPath)
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "catalog: create data dir %s", dataDir)
	}

	schema := &Schema{byName: make(map[string]*Table, len(tables))}

	for _, t := range tables {
		computeLayout(t)

		t.Filename = filepath.Join(dataDir, t.Name+".table")
		p, err := pager.Open(t.Filename)
		if err != nil {
			return nil, errors.Wrapf(err, "catalog: open table %s", t.Name)
		}
		t.Pager = p

		t.NumRows = recoverNumRows(p.FileLength(), t.RowsPerPage, t.RowSize)

		schema.Tables = append(schema.Tables, t)
		schema.byName[t.Name] = t
	}

	return schema, nil
}

// Close flushes and closes every table's pager in schema order.
func Close(schema *Schema) error {
	for _, t := range schema.Tables {
		if err := t.Pager.Close(t.NumFullPages(), t.PartialRows(), t.RowSize); err != nil {
			return errors.Wrapf(err, "catalog: close table %s", t.Name)
		}
	}
	return nil
}

// computeLayout fills in Offset for every column plus RowSize,
// RowsPerPage, and MaxRows, following db_open's derivation: row_size is
// the sum of column sizes, rows_per_page is PAGE_SIZE / row_size
// (truncating — rows never straddle pages), and max_rows is
// rows_per_page * TABLE_MAX_PAGES.
func computeLayout(t *Table) {
	var offset uint32
	for i := range t.Columns {
		t.Columns[i].Offset = offset
		offset += t.Columns[i].Size
	}

	t.RowSize = offset
	t.RowsPerPage = pager.PageSize / t.RowSize
	t.MaxRows = t.RowsPerPage * pager.TableMaxPages
}

// recoverNumRows derives num_rows from a table file's length the way
// db_open does (original_source/main.c:151-154): num_pages * rows_per_page
// plus whatever live rows fit in the trailing partial page. This is NOT
// the same as fileLength/rowSize whenever rowSize doesn't evenly divide
// PAGE_SIZE — each full page has PageSize-(rowsPerPage*rowSize) bytes of
// unused padding at its tail that must not be counted as row bytes.
func recoverNumRows(fileLength int64, rowsPerPage, rowSize uint32) uint32 {
	numPages := uint32(fileLength / pager.PageSize)
	remainder := uint32(fileLength % pager.PageSize)
	return numPages*rowsPerPage + remainder/rowSize
}

// parseSchemaFile reads the schema grammar: a first line giving the
// table count N, followed by N lines of the form
// "name;numCols;col:size:type,col:size:type,...".
func parseSchemaFile(path string) ([]*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	if !scanner.Scan() {
		return nil, errors.New("empty schema file")
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, errors.Wrap(err, "invalid table count line")
	}

	tables := make([]*Table, 0, n)
	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			return nil, errors.Errorf("expected %d table lines, found %d", n, i)
		}

		t, err := parseTableLine(scanner.Text())
		if err != nil {
			return nil, errors.Wrapf(err, "table line %d", i+1)
		}
		tables = append(tables, t)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return tables, nil
}

// parseTableLine parses "name;numCols;col:size:type,col:size:type,...".
func parseTableLine(line string) (*Table, error) {
	fields := strings.Split(strings.TrimSpace(line), ";")
	if len(fields) != 3 {
		return nil, errors.Errorf("expected 3 ';'-separated fields, got %d", len(fields))
	}

	name := fields[0]
	if name == "" {
		return nil, errors.New("empty table name")
	}

	numCols, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, errors.Wrap(err, "invalid column count")
	}

	colSpecs := strings.Split(fields[2], ",")
	if len(colSpecs) != numCols {
		return nil, errors.Errorf("declared %d columns, found %d", numCols, len(colSpecs))
	}

	columns := make([]ColumnDefinition, 0, numCols)
	for _, spec := range colSpecs {
		col, err := parseColumnSpec(spec)
		if err != nil {
			return nil, errors.Wrapf(err, "column spec %q", spec)
		}
		columns = append(columns, col)
	}

	return &Table{Name: name, Columns: columns}, nil
}

// parseColumnSpec parses "name:size:type".
func parseColumnSpec(spec string) (ColumnDefinition, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return ColumnDefinition{}, errors.Errorf("expected 'name:size:type', got %q", spec)
	}

	size, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return ColumnDefinition{}, errors.Wrap(err, "invalid size")
	}

	colType, err := ParseColumnType(parts[2])
	if err != nil {
		return ColumnDefinition{}, err
	}

	if colType == Integer && size != 4 {
		return ColumnDefinition{}, errors.Errorf("INTEGER column %q must be size 4, got %d", parts[0], size)
	}
	if colType == Real && size != 4 && size != 8 {
		return ColumnDefinition{}, errors.Errorf("REAL column %q must be size 4 or 8, got %d", parts[0], size)
	}

	return ColumnDefinition{Name: parts[0], Type: colType, Size: uint32(size)}, nil
}
