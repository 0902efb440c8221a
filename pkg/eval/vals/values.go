package vals

import (
	"math/big"
	"regexp"

	"src.crush.sh/pkg/glob"
)

// Empty is the value of jobs that produce nothing.
type Empty struct{}

// Bool is a boolean.
type Bool bool

// Text is a string.
type Text string

// Op is a comparison or match operator used as data, like "==" or "=~".
type Op string

func (Empty) Kind() Kind { return EmptyKind }
func (Bool) Kind() Kind  { return BoolKind }
func (Text) Kind() Kind  { return TextKind }
func (Op) Kind() Kind    { return OpKind }

// Integer is an arbitrary-precision integer. The zero Integer is 0.
type Integer struct {
	n *big.Int
}

// NewInteger returns an Integer holding a copy of n.
func NewInteger(n *big.Int) Integer {
	return Integer{new(big.Int).Set(n)}
}

// Int returns an Integer holding i.
func Int(i int64) Integer {
	return Integer{big.NewInt(i)}
}

func (Integer) Kind() Kind { return IntegerKind }

// Big returns a copy of the integer as a *big.Int.
func (i Integer) Big() *big.Int {
	if i.n == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(i.n)
}

// Int64 returns the integer as an int64 and whether it fits.
func (i Integer) Int64() (int64, bool) {
	b := i.Big()
	return b.Int64(), b.IsInt64()
}

// Cmp compares i and j, returning -1, 0 or 1.
func (i Integer) Cmp(j Integer) int {
	return i.Big().Cmp(j.Big())
}

func (i Integer) String() string {
	return i.Big().String()
}

// Field is a reference to a column, written %a/b.
type Field struct {
	Path []string
}

func (Field) Kind() Kind { return FieldKind }

// Variable is a reference to a binding, written $a/b.
type Variable struct {
	Path []string
}

func (Variable) Kind() Kind { return VariableKind }

// Glob is a glob pattern.
type Glob struct {
	glob.Pattern
}

// NewGlob parses a glob pattern.
func NewGlob(pattern string) Glob {
	return Glob{glob.Parse(pattern)}
}

func (Glob) Kind() Kind { return GlobKind }

// Regex is a compiled regular expression together with its source.
type Regex struct {
	Source string
	Regexp *regexp.Regexp
}

func (Regex) Kind() Kind { return RegexKind }

// Matcher is implemented by the values that can be on the right-hand side of
// a match operator.
type Matcher interface {
	Value
	Match(s string) bool
}

// Match reports whether s contains a match of the regular expression.
func (r Regex) Match(s string) bool { return r.Regexp.MatchString(s) }

// List is an immutable list of values.
type List struct {
	elems []Value
}

// MakeList returns a List with the given elements.
func MakeList(elems ...Value) List {
	return List{append([]Value(nil), elems...)}
}

func (List) Kind() Kind { return ListKind }

// Len returns the number of elements.
func (l List) Len() int { return len(l.elems) }

// Index returns the element at i. It panics if i is out of range.
func (l List) Index(i int) Value { return l.elems[i] }

// Elems returns a copy of the elements.
func (l List) Elems() []Value { return append([]Value(nil), l.elems...) }
