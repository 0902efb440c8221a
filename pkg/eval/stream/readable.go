package stream

import (
	"src.crush.sh/pkg/eval/vals"
)

// Readable is implemented by sources of rows, namely streams and tables.
type Readable interface {
	Read() (vals.Row, error)
	Types() vals.ColumnTypes
}

// TableReader reads the rows of a table in order.
type TableReader struct {
	table *vals.Table
	next  int
}

// NewTableReader returns a Readable over the rows of t.
func NewTableReader(t *vals.Table) *TableReader {
	return &TableReader{table: t}
}

// Read returns the next row of the table, or EOS.
func (r *TableReader) Read() (vals.Row, error) {
	if r.next >= r.table.Len() {
		return nil, EOS
	}
	row := r.table.Row(r.next)
	r.next++
	return row, nil
}

// Types returns the column types of the table.
func (r *TableReader) Types() vals.ColumnTypes { return r.table.Types() }

// AsReadable returns a Readable for values of kind Stream and Rows.
func AsReadable(v vals.Value) (Readable, bool) {
	switch v := v.(type) {
	case *Input:
		return v, true
	case *vals.Table:
		return NewTableReader(v), true
	default:
		return nil, false
	}
}

// Materialize reads all the rows from r into a table.
func Materialize(r Readable) (*vals.Table, error) {
	var rows []vals.Row
	for {
		row, err := r.Read()
		if err == EOS {
			break
		} else if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return vals.NewTable(r.Types(), rows)
}
