// Package evaltest provides a framework for testing crush code.
//
// The entry point for the framework is the Test function, which accepts a
// *testing.T and any number of test cases.
//
// Test cases are constructed using the That function, followed by method calls
// that add additional information to it.
//
// Example:
//
//	Test(t,
//	    That("echo x").Puts("x"),
//	    That("stream/seq 3 | sum").Puts(3))
//
// If some setup is needed, use the TestWithSetup function instead.
package evaltest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.crush.sh/pkg/eval"
	"src.crush.sh/pkg/eval/stream"
	"src.crush.sh/pkg/eval/vals"
	"src.crush.sh/pkg/mods"
	"src.crush.sh/pkg/parse"
	"src.crush.sh/pkg/tt"
)

// Case is a test case that can be used in Test.
type Case struct {
	codes  []string
	setup  func(ev *eval.Evaler)
	verify func(t *testing.T)
	want   result
}

type result struct {
	ValueOut []any
	ErrorOut []byte
	Error    error
}

// That returns a new Case with the specified source code. Multiple arguments
// are joined with newlines. To specify multiple pieces of code that are
// executed separately, use the Then method to append code pieces.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "echo x" outputs "x" reads:
//
//	That("echo x").Puts("x")
func That(lines ...string) Case {
	return Case{codes: []string{strings.Join(lines, "\n")}}
}

// Then returns a new Case that executes the given code in addition. Multiple
// arguments are joined with newlines.
func (c Case) Then(lines ...string) Case {
	c.codes = append(c.codes, strings.Join(lines, "\n"))
	return c
}

// WithSetup returns a new Case with the given setup function executed on the
// Evaler before the code is executed.
func (c Case) WithSetup(f func(*eval.Evaler)) Case {
	c.setup = f
	return c
}

// DoesNothing returns c unchanged. It is useful to mark tests that don't have
// any output, for example:
//
//	That("let x=1").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// Passes returns an altered Case that runs an additional verification
// function.
func (c Case) Passes(f func(t *testing.T)) Case {
	c.verify = f
	return c
}

// Puts returns an altered Case that requires the jobs to output the specified
// values, in order. Jobs that output nothing are skipped. Go ints, strings and
// bools stand for integer, text and bool values; streams are compared as
// tables, see Rows.
func (c Case) Puts(vs ...any) Case {
	c.want.ValueOut = vs
	return c
}

// PrintsError returns an altered Case that requires the error output to
// contain the given text.
func (c Case) PrintsError(s string) Case {
	c.want.ErrorOut = []byte(s)
	return c
}

// Throws returns an altered Case that requires the evaluation to fail with an
// error matching the argument. The argument is either a matcher constructed
// by functions like ErrorWithMessage, or an error that must be in the chain of
// the actual error.
func (c Case) Throws(err error) Case {
	c.want.Error = err
	return c
}

// NewEvaler returns an Evaler with all the builtin namespaces.
func NewEvaler() *eval.Evaler {
	ev := eval.NewEvaler()
	if err := mods.AddTo(ev.Root); err != nil {
		panic(err)
	}
	return ev
}

// Test runs test cases. For each test case, a new Evaler is created with
// NewEvaler.
func Test(t *testing.T, tests ...Case) {
	t.Helper()
	TestWithSetup(t, func(*eval.Evaler) {}, tests...)
}

// TestWithSetup runs test cases. For each test case, a new Evaler is created
// with NewEvaler and passed to the setup function.
func TestWithSetup(t *testing.T, setup func(*eval.Evaler), tests ...Case) {
	t.Helper()
	for _, tc := range tests {
		t.Run(strings.Join(tc.codes, "\n"), func(t *testing.T) {
			t.Helper()
			ev := NewEvaler()
			setup(ev)
			if tc.setup != nil {
				tc.setup(ev)
			}

			r := evalAndCollect(ev, tc.codes)

			if tc.verify != nil {
				tc.verify(t)
			}
			if !matchOut(tc.want.ValueOut, r.ValueOut) {
				t.Errorf("got value out (-want +got):\n%s",
					cmp.Diff(reprs(tc.want.ValueOut), reprs(r.ValueOut), tt.CmpOptions...))
			}
			if tc.want.ErrorOut == nil {
				if len(r.ErrorOut) > 0 && tc.want.Error == nil {
					t.Errorf("got error out %q, want empty", r.ErrorOut)
				}
			} else if !bytes.Contains(r.ErrorOut, tc.want.ErrorOut) {
				t.Errorf("got error out %q, want output containing %q",
					r.ErrorOut, tc.want.ErrorOut)
			}
			if !matchErr(tc.want.Error, r.Error) {
				t.Errorf("got error %T: %v, want %v", r.Error, r.Error, tc.want.Error)
			}
		})
	}
}

func evalAndCollect(ev *eval.Evaler, codes []string) result {
	var r result
	var errOut bytes.Buffer
	printer, cleanup := eval.NewPrinter(&errOut)
	for _, code := range codes {
		err := ev.Eval(parse.Source{Name: "[test]", Code: code}, eval.EvalCfg{
			Printer: printer,
			PutValue: func(v vals.Value) {
				if v, ok := v.(*stream.Input); ok {
					table, err := stream.Materialize(v)
					if err != nil {
						panic(err)
					}
					r.ValueOut = append(r.ValueOut, table)
					return
				}
				if vals.KindOf(v) != vals.EmptyKind {
					r.ValueOut = append(r.ValueOut, v)
				}
			},
		})
		if err != nil {
			// NOTE: If multiple code pieces fail, only the last error is
			// saved.
			r.Error = err
		}
	}
	cleanup()
	r.ErrorOut = errOut.Bytes()
	return r
}

func matchOut(want, got []any) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if !match(got[i], want[i]) {
			return false
		}
	}
	return true
}

func match(got, want any) bool {
	if m, ok := want.(ValueMatcher); ok {
		return m.matchValue(got)
	}
	g, ok := got.(vals.Value)
	if !ok {
		return false
	}
	return vals.Equal(g, toValue(want))
}

// Converts Go values used as shorthands in Puts.
func toValue(x any) vals.Value {
	switch x := x.(type) {
	case int:
		return vals.Int(int64(x))
	case string:
		return vals.Text(x)
	case bool:
		return vals.Bool(x)
	case vals.Value:
		return x
	}
	return nil
}

func reprs(vs []any) []string {
	ss := make([]string, len(vs))
	for i, v := range vs {
		switch v := v.(type) {
		case ValueMatcher:
			ss[i] = v.String()
		case *vals.Table:
			ss[i] = tableRepr(v)
		default:
			if v := toValue(v); v != nil {
				ss[i] = vals.Repr(v)
			}
		}
	}
	return ss
}

func tableRepr(t *vals.Table) string {
	var sb strings.Builder
	sb.WriteString(vals.Repr(t))
	for i := 0; i < t.Len(); i++ {
		sb.WriteString("\n ")
		for _, cell := range t.Row(i) {
			sb.WriteString(" " + vals.Repr(cell))
		}
	}
	return sb.String()
}
