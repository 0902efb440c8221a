package parse

import (
	"math/big"
	"regexp"
	"strings"

	"src.crush.sh/pkg/diag"
)

// JobDef is a pipeline: an ordered sequence of calls where the output of each
// call is the input of the next one.
type JobDef struct {
	diag.Ranging
	Calls []*CallDef
}

func (j *JobDef) String() string {
	parts := make([]string, len(j.Calls))
	for i, c := range j.Calls {
		parts[i] = c.String()
	}
	return strings.Join(parts, " | ")
}

// CallDef is one command invocation in a pipeline.
type CallDef struct {
	diag.Ranging
	Name []string
	Args []*ArgumentDef
}

func (c *CallDef) String() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(c.Name, "/"))
	for _, a := range c.Args {
		sb.WriteByte(' ')
		sb.WriteString(a.String())
	}
	return sb.String()
}

// ArgumentDef is an argument of a call. Name is empty for positional
// arguments.
type ArgumentDef struct {
	diag.Ranging
	Name  string
	Value CellDef
}

func (a *ArgumentDef) String() string {
	if a.Name == "" {
		return a.Value.String()
	}
	return a.Name + "=" + a.Value.String()
}

// CellDef is an unevaluated expression. The set of implementations is
// closed; it consists of all the other types in this file.
type CellDef interface {
	diag.Ranger
	// String returns source text that parses back to an equivalent CellDef.
	String() string
	isCellDef()
}

// Text is a literal string, from either a bareword or a quoted string.
type Text struct {
	diag.Ranging
	Value string
}

// IntegerLiteral is an integer literal within the signed 128-bit range.
type IntegerLiteral struct {
	diag.Ranging
	Value *big.Int
}

// GlobPattern is a glob pattern literal.
type GlobPattern struct {
	diag.Ranging
	Pattern string
}

// RegexLiteral is a regular expression compiled at parse time.
type RegexLiteral struct {
	diag.Ranging
	Source string
	Regexp *regexp.Regexp
}

// FieldPath refers to a column of the input.
type FieldPath struct {
	diag.Ranging
	Path []string
}

// VariablePath refers to a binding in the scope.
type VariablePath struct {
	diag.Ranging
	Path []string
}

// IndexedVariable is a variable indexed by an expression, like $a[0].
type IndexedVariable struct {
	diag.Ranging
	Path  []string
	Index CellDef
}

// List is a list literal.
type List struct {
	diag.Ranging
	Elems []CellDef
}

// Operator is a comparison or match operator used as a value.
type Operator struct {
	diag.Ranging
	Op string
}

// JobCapture is a nested job whose result becomes the value.
type JobCapture struct {
	diag.Ranging
	Job *JobDef
}

// ClosureDef is a list of jobs to be bound to the scope it is evaluated in.
type ClosureDef struct {
	diag.Ranging
	Jobs []*JobDef
}

func (*Text) isCellDef()            {}
func (*IntegerLiteral) isCellDef()  {}
func (*GlobPattern) isCellDef()     {}
func (*RegexLiteral) isCellDef()    {}
func (*FieldPath) isCellDef()       {}
func (*VariablePath) isCellDef()    {}
func (*IndexedVariable) isCellDef() {}
func (*List) isCellDef()            {}
func (*Operator) isCellDef()        {}
func (*JobCapture) isCellDef()      {}
func (*ClosureDef) isCellDef()      {}

// Source describes a piece of source code.
type Source struct {
	Name string
	Code string
	// IsFile is true if the source comes from a file.
	IsFile bool
}

func (t *Text) String() string           { return Quote(t.Value) }
func (i *IntegerLiteral) String() string { return i.Value.String() }
func (g *GlobPattern) String() string    { return g.Pattern }
func (r *RegexLiteral) String() string   { return `r"` + r.Source + `"` }
func (f *FieldPath) String() string      { return "%" + strings.Join(f.Path, "/") }
func (v *VariablePath) String() string   { return "$" + strings.Join(v.Path, "/") }
func (o *Operator) String() string       { return o.Op }

func (v *IndexedVariable) String() string {
	return "$" + strings.Join(v.Path, "/") + "[" + v.Index.String() + "]"
}

func (l *List) String() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (c *JobCapture) String() string { return "{" + c.Job.String() + "}" }

func (c *ClosureDef) String() string {
	parts := make([]string, len(c.Jobs))
	for i, j := range c.Jobs {
		parts[i] = j.String()
	}
	return "`{" + strings.Join(parts, "; ") + "}"
}
