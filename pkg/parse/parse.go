// Package parse implements the crush lexer and parser.
//
// The parser is a recursive-descent parser over the token stream of a Lexer.
// It produces a list of JobDef values; parsing is all-or-nothing, so either
// the whole source parses or a single *Error describing the first problem is
// returned.
package parse

import (
	"errors"
	"math/big"
	"regexp"
	"strings"

	"src.crush.sh/pkg/diag"
)

// Errors.
var (
	errShouldBeCommand = newError("wrong token type", "command name")
	errShouldBeJobEnd  = newError("wrong token type", "'|'", "';'", "newline", "end of input")
	errShouldBeEOF     = newError("unexpected token", "end of input")
	errShouldBeValue   = newError("unexpected token", "value")
	errShouldBeLBrack  = newError("", "'['")
	errShouldBeRBrack  = newError("", "']'")
	errShouldBeRBrace  = newError("", "'}'")
	errBadCommandName  = errors.New("illegal command name")
	errBadVariableName = errors.New("illegal variable name")
	errBadFieldName    = errors.New("illegal field name")
	errInvalidNumber   = errors.New("invalid number")
)

// Bounds of the signed 128-bit integers.
var (
	maxInteger = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInteger = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// Parse parses the given source as a list of jobs. The returned error always
// has type *Error if it is not nil.
func Parse(src Source) ([]*JobDef, error) {
	ps := &parser{src, NewLexer(src.Code)}
	jobs, err := ps.jobList()
	if err != nil {
		return nil, err
	}
	if t := ps.lx.Peek(); t.Kind != EOF {
		return nil, ps.unexpected(t, errShouldBeEOF)
	}
	return jobs, nil
}

// ParseName splits a path on '/'. It returns false if any segment is empty.
func ParseName(s string) ([]string, bool) {
	segs := strings.Split(s, "/")
	for _, seg := range segs {
		if seg == "" {
			return nil, false
		}
	}
	return segs, true
}

// jobList = { Separator } [ Job { Separator { Separator } Job } ] { Separator }
//
// It stops before EOF or BlockEnd.
func (ps *parser) jobList() ([]*JobDef, *Error) {
	var jobs []*JobDef
	for {
		ps.skipSeparators()
		switch t := ps.lx.Peek(); t.Kind {
		case EOF, BlockEnd:
			return jobs, nil
		case String:
			job, err := ps.job()
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, job)
		default:
			return nil, ps.unexpected(t, errShouldBeCommand)
		}

		switch t := ps.lx.Peek(); t.Kind {
		case EOF, BlockEnd:
			return jobs, nil
		case Separator:
			ps.lx.Pop()
		default:
			return nil, ps.unexpected(t, errShouldBeJobEnd)
		}
	}
}

func (ps *parser) skipSeparators() {
	for ps.lx.Peek().Kind == Separator {
		ps.lx.Pop()
	}
}

// job = Call { Pipe { Separator } Call }
func (ps *parser) job() (*JobDef, *Error) {
	job := &JobDef{}
	call, err := ps.call()
	if err != nil {
		return nil, err
	}
	job.Calls = append(job.Calls, call)
	for ps.lx.Peek().Kind == Pipe {
		ps.lx.Pop()
		ps.skipSeparators()
		call, err := ps.call()
		if err != nil {
			return nil, err
		}
		job.Calls = append(job.Calls, call)
	}
	job.From = job.Calls[0].From
	job.To = job.Calls[len(job.Calls)-1].To
	return job, nil
}

// call = String { argument }
func (ps *parser) call() (*CallDef, *Error) {
	t := ps.lx.Peek()
	if t.Kind != String {
		return nil, ps.unexpected(t, errShouldBeCommand)
	}
	ps.lx.Pop()
	name, ok := ParseName(t.Text)
	if !ok {
		return nil, ps.errorp(t, errBadCommandName)
	}
	call := &CallDef{Ranging: t.Ranging, Name: name}
	for {
		switch ps.lx.Peek().Kind {
		case Separator, EOF, Pipe, BlockEnd:
			return call, nil
		}
		arg, err := ps.argument()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		call.To = arg.To
	}
}

// argument = String Assign unnamed | unnamed
func (ps *parser) argument() (*ArgumentDef, *Error) {
	t := ps.lx.Peek()
	if t.Kind != String {
		value, err := ps.unnamed()
		if err != nil {
			return nil, err
		}
		return &ArgumentDef{Ranging: value.Range(), Value: value}, nil
	}
	ps.lx.Pop()
	if ps.lx.Peek().Kind != Assign {
		return &ArgumentDef{Ranging: t.Ranging, Value: &Text{t.Ranging, t.Text}}, nil
	}
	ps.lx.Pop()
	value, err := ps.unnamed()
	if err != nil {
		return nil, err
	}
	arg := &ArgumentDef{Ranging: t.Ranging, Name: t.Text, Value: value}
	arg.To = value.Range().To
	return arg, nil
}

func (ps *parser) unnamed() (CellDef, *Error) {
	t := ps.lx.Peek()
	switch {
	case t.Kind == String:
		ps.lx.Pop()
		return &Text{t.Ranging, t.Text}, nil
	case t.Kind == QuotedString:
		ps.lx.Pop()
		return &Text{t.Ranging, Unescape(t.Text)}, nil
	case t.Kind == Integer:
		ps.lx.Pop()
		i, ok := new(big.Int).SetString(t.Text, 10)
		if !ok || i.Cmp(maxInteger) > 0 || i.Cmp(minInteger) < 0 {
			return nil, ps.errorp(t, errInvalidNumber)
		}
		return &IntegerLiteral{t.Ranging, i}, nil
	case t.Kind == Glob:
		ps.lx.Pop()
		return &GlobPattern{t.Ranging, t.Text}, nil
	case t.Kind == Regex:
		ps.lx.Pop()
		body := t.Text[2 : len(t.Text)-1]
		re, err := regexp.Compile(body)
		if err != nil {
			return nil, ps.errorp(t, err)
		}
		return &RegexLiteral{t.Ranging, body, re}, nil
	case t.Kind == Field:
		ps.lx.Pop()
		path, ok := ParseName(t.Text[1:])
		if !ok {
			return nil, ps.errorp(t, errBadFieldName)
		}
		return &FieldPath{t.Ranging, path}, nil
	case t.Kind == Variable:
		ps.lx.Pop()
		path, ok := ParseName(t.Text[1:])
		if !ok {
			return nil, ps.errorp(t, errBadVariableName)
		}
		return &VariablePath{t.Ranging, path}, nil
	case t.Kind == ArrayVariable:
		return ps.indexedVariable()
	case t.Kind.IsOperator():
		ps.lx.Pop()
		return &Operator{t.Ranging, t.Text}, nil
	case t.Kind == ListStart:
		return ps.list()
	case t.Kind == BlockStart && t.Text == "{":
		return ps.jobCapture()
	case t.Kind == BlockStart:
		return ps.closure()
	}
	return nil, ps.unexpected(t, errShouldBeValue)
}

// indexedVariable = ArrayVariable ListStart unnamed ListEnd
func (ps *parser) indexedVariable() (CellDef, *Error) {
	t := ps.lx.Pop()
	path, ok := ParseName(t.Text[1:])
	if !ok {
		return nil, ps.errorp(t, errBadVariableName)
	}
	if lb := ps.lx.Peek(); lb.Kind != ListStart {
		return nil, ps.unexpected(lb, errShouldBeLBrack)
	}
	ps.lx.Pop()
	index, err := ps.unnamed()
	if err != nil {
		return nil, err
	}
	rb := ps.lx.Peek()
	if rb.Kind != ListEnd {
		return nil, ps.unexpected(rb, errShouldBeRBrack)
	}
	ps.lx.Pop()
	v := &IndexedVariable{Ranging: t.Ranging, Path: path, Index: index}
	v.To = rb.To
	return v, nil
}

// list = ListStart { unnamed } ListEnd
func (ps *parser) list() (CellDef, *Error) {
	lb := ps.lx.Pop()
	l := &List{Ranging: lb.Ranging}
	for {
		t := ps.lx.Peek()
		if t.Kind == ListEnd {
			ps.lx.Pop()
			l.To = t.To
			return l, nil
		}
		elem, err := ps.unnamed()
		if err != nil {
			return nil, err
		}
		l.Elems = append(l.Elems, elem)
	}
}

// jobCapture = '{' { Separator } job { Separator } '}'
func (ps *parser) jobCapture() (CellDef, *Error) {
	lb := ps.lx.Pop()
	ps.skipSeparators()
	job, err := ps.job()
	if err != nil {
		return nil, err
	}
	ps.skipSeparators()
	rb, err := ps.blockEnd()
	if err != nil {
		return nil, err
	}
	return &JobCapture{Ranging: diag.MixedRanging(lb, rb), Job: job}, nil
}

// closure = '`{' jobList '}'
func (ps *parser) closure() (CellDef, *Error) {
	lb := ps.lx.Pop()
	jobs, err := ps.jobList()
	if err != nil {
		return nil, err
	}
	rb, err := ps.blockEnd()
	if err != nil {
		return nil, err
	}
	return &ClosureDef{Ranging: diag.MixedRanging(lb, rb), Jobs: jobs}, nil
}

func (ps *parser) blockEnd() (Token, *Error) {
	t := ps.lx.Peek()
	if t.Kind != BlockEnd {
		return t, ps.unexpected(t, errShouldBeRBrace)
	}
	return ps.lx.Pop(), nil
}
