package eval

import (
	"strconv"

	"src.crush.sh/pkg/eval/errs"
	"src.crush.sh/pkg/eval/vals"
	"src.crush.sh/pkg/parse"
)

// Argument is an evaluated argument. Name is empty for positional arguments.
type Argument struct {
	Name  string
	Value vals.Value
}

// Arguments is the list of arguments of a call, in source order.
type Arguments []Argument

// CheckLen checks that there are exactly n arguments.
func (a Arguments) CheckLen(n int) error {
	return a.CheckLenRange(n, n)
}

// CheckLenRange checks that there are between lo and hi arguments. A negative
// hi means there is no upper bound.
func (a Arguments) CheckLenRange(lo, hi int) error {
	if len(a) < lo || (hi >= 0 && len(a) > hi) {
		return errs.ArityMismatch{
			What: "arguments", ValidLow: lo, ValidHigh: hi, Actual: len(a)}
	}
	return nil
}

// Field returns the path of the i-th argument, which must be a field. A text
// argument such as the bareword name is taken as the path name.
func (a Arguments) Field(i int) ([]string, error) {
	if i >= len(a) {
		return nil, errs.ArityMismatch{
			What: "arguments", ValidLow: i + 1, ValidHigh: -1, Actual: len(a)}
	}
	switch v := a[i].Value.(type) {
	case vals.Field:
		return v.Path, nil
	case vals.Text:
		if path, ok := parse.ParseName(string(v)); ok {
			return path, nil
		}
	}
	return nil, errs.BadValue{
		What:   "argument " + strconv.Itoa(i+1),
		Valid:  "field",
		Actual: vals.KindOf(a[i].Value).String()}
}

// OptionalField is like Field, but returns nil and no error if there is no
// i-th argument.
func (a Arguments) OptionalField(i int) ([]string, error) {
	if i >= len(a) {
		return nil, nil
	}
	return a.Field(i)
}

// Named returns the value of the argument with the given name.
func (a Arguments) Named(name string) (vals.Value, bool) {
	for _, arg := range a {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return nil, false
}

// Positional returns the values of the positional arguments.
func (a Arguments) Positional() []vals.Value {
	var vs []vals.Value
	for _, arg := range a {
		if arg.Name == "" {
			vs = append(vs, arg.Value)
		}
	}
	return vs
}

func errInputNotTabular(v vals.Value) error {
	return errs.BadValue{
		What: "input", Valid: "stream or rows", Actual: vals.KindOf(v).String()}
}
