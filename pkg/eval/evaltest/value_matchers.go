package evaltest

import (
	"fmt"
	"strings"

	"src.crush.sh/pkg/eval/vals"
)

// ValueMatcher is a value that can be passed to [Case.Puts] and has its own
// matching semantics.
type ValueMatcher interface {
	fmt.Stringer
	matchValue(any) bool
}

// Anything matches anything. It is useful when the value contains information
// that is useful when the test fails.
var Anything ValueMatcher = anything{}

type anything struct{}

func (anything) matchValue(any) bool { return true }
func (anything) String() string      { return "<anything>" }

// AnyInteger matches any integer.
var AnyInteger ValueMatcher = anyInteger{}

type anyInteger struct{}

func (anyInteger) matchValue(x any) bool {
	_, ok := x.(vals.Integer)
	return ok
}

func (anyInteger) String() string { return "<any integer>" }

// Rows matches a stream or a table with the given column types and rows, in
// order. Cells are written like the arguments of Puts.
func Rows(types vals.ColumnTypes, rows ...[]any) ValueMatcher {
	return rowsMatcher{types, rows}
}

type rowsMatcher struct {
	types vals.ColumnTypes
	rows  [][]any
}

func (m rowsMatcher) matchValue(x any) bool {
	t, ok := x.(*vals.Table)
	if !ok || !t.Types().Equal(m.types) || t.Len() != len(m.rows) {
		return false
	}
	for i, want := range m.rows {
		got := t.Row(i)
		if len(got) != len(want) {
			return false
		}
		for j := range want {
			if !match(got[j], want[j]) {
				return false
			}
		}
	}
	return true
}

func (m rowsMatcher) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<rows %s (%d rows)>", m.types, len(m.rows))
	for _, row := range m.rows {
		sb.WriteString("\n ")
		for _, cell := range row {
			if v := toValue(cell); v != nil {
				sb.WriteString(" " + vals.Repr(v))
			} else {
				sb.WriteString(fmt.Sprint(" ", cell))
			}
		}
	}
	return sb.String()
}

// AnyOfKind matches any value of the given kind.
func AnyOfKind(k vals.Kind) ValueMatcher { return anyOfKind{k} }

type anyOfKind struct{ k vals.Kind }

func (m anyOfKind) matchValue(x any) bool {
	v, ok := x.(vals.Value)
	return ok && vals.KindOf(v) == m.k
}

func (m anyOfKind) String() string { return "<any " + m.k.String() + ">" }
