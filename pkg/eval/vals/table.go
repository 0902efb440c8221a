package vals

import (
	"fmt"
	"strings"

	"src.crush.sh/pkg/eval/errs"
)

// ColumnType describes one column of a stream or a table.
type ColumnType struct {
	Name string
	Kind Kind
}

func (c ColumnType) String() string { return c.Name + "=" + c.Kind.String() }

// ColumnTypes is the ordered list of columns that every row of a stream or a
// table must match.
type ColumnTypes []ColumnType

// Names returns the names of the columns in order.
func (ts ColumnTypes) Names() []string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.Name
	}
	return names
}

// Find resolves a field path to a column index. Only single-segment paths
// name columns.
func (ts ColumnTypes) Find(path []string) (int, error) {
	if len(path) != 1 {
		return -1, errs.BadValue{
			What:   "field",
			Valid:  "a single column name",
			Actual: "%" + strings.Join(path, "/")}
	}
	for i, t := range ts {
		if t.Name == path[0] {
			return i, nil
		}
	}
	return -1, errs.NoSuchColumn{Name: path[0], Available: ts.Names()}
}

// Check checks that the row has the same arity as the column types and that
// every cell has the kind of its column.
func (ts ColumnTypes) Check(row Row) error {
	if len(row) != len(ts) {
		return errs.ArityMismatch{
			What: "row", ValidLow: len(ts), ValidHigh: len(ts), Actual: len(row)}
	}
	for i, cell := range row {
		if k := KindOf(cell); k != ts[i].Kind {
			return errs.TypeMismatch{
				What:   "column " + ts[i].Name,
				Valid:  ts[i].Kind.String(),
				Actual: k.String()}
		}
	}
	return nil
}

// Equal reports whether two column type lists are identical.
func (ts ColumnTypes) Equal(other ColumnTypes) bool {
	if len(ts) != len(other) {
		return false
	}
	for i := range ts {
		if ts[i] != other[i] {
			return false
		}
	}
	return true
}

func (ts ColumnTypes) String() string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// Row is one tuple of a stream or a table.
type Row []Value

// Table is a materialized set of rows. It is the value of kind Rows.
type Table struct {
	types ColumnTypes
	rows  []Row
}

// NewTable returns a table with the given column types and rows. Every row is
// checked against the types.
func NewTable(types ColumnTypes, rows []Row) (*Table, error) {
	for _, row := range rows {
		if err := types.Check(row); err != nil {
			return nil, err
		}
	}
	return &Table{append(ColumnTypes(nil), types...), append([]Row(nil), rows...)}, nil
}

func (*Table) Kind() Kind { return RowsKind }

// Types returns the column types of the table.
func (t *Table) Types() ColumnTypes { return t.types }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns the i-th row. The returned row must not be modified.
func (t *Table) Row(i int) Row { return t.rows[i] }

func (t *Table) Repr() string {
	return fmt.Sprintf("<rows %s (%s)>", t.types, nValues(len(t.rows), "row"))
}

func nValues(n int, what string) string {
	if n == 1 {
		return "1 " + what
	}
	return fmt.Sprintf("%d %ss", n, what)
}
