package eval

import (
	"fmt"

	"src.crush.sh/pkg/eval/errs"
	"src.crush.sh/pkg/eval/stream"
	"src.crush.sh/pkg/eval/vals"
	"src.crush.sh/pkg/parse"
)

// EvalCell evaluates an expression in the given context. Job captures are run
// to completion; closures are bound to ctx.Scope but not run.
func EvalCell(cell parse.CellDef, ctx JobContext) (vals.Value, error) {
	switch cell := cell.(type) {
	case *parse.Text:
		return vals.Text(cell.Value), nil
	case *parse.IntegerLiteral:
		return vals.NewInteger(cell.Value), nil
	case *parse.GlobPattern:
		return vals.NewGlob(cell.Pattern), nil
	case *parse.RegexLiteral:
		return vals.Regex{Source: cell.Source, Regexp: cell.Regexp}, nil
	case *parse.FieldPath:
		return vals.Field{Path: cell.Path}, nil
	case *parse.VariablePath:
		return ctx.Scope.GetPath(cell.Path)
	case *parse.IndexedVariable:
		return evalIndexed(cell, ctx)
	case *parse.List:
		elems := make([]vals.Value, len(cell.Elems))
		for i, elemDef := range cell.Elems {
			elem, err := EvalCell(elemDef, ctx)
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return vals.MakeList(elems...), nil
	case *parse.Operator:
		return vals.Op(cell.Op), nil
	case *parse.JobCapture:
		return capture(cell.Job, ctx)
	case *parse.ClosureDef:
		return &Closure{Def: cell, Captured: ctx.Scope, Source: ctx.Source}, nil
	default:
		panic(fmt.Sprintf("unhandled cell type %T", cell))
	}
}

func evalIndexed(cell *parse.IndexedVariable, ctx JobContext) (vals.Value, error) {
	v, err := ctx.Scope.GetPath(cell.Path)
	if err != nil {
		return nil, err
	}
	index, err := EvalCell(cell.Index, ctx)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case vals.List:
		i, ok := index.(vals.Integer)
		if !ok {
			return nil, errs.BadValue{What: "list index",
				Valid: "integer", Actual: vals.KindOf(index).String()}
		}
		n, ok := i.Int64()
		if !ok || n < 0 || n >= int64(v.Len()) {
			return nil, errs.OutOfRange{What: "list index",
				ValidLow: 0, ValidHigh: v.Len() - 1, Actual: i.String()}
		}
		return v.Index(int(n)), nil
	case *Scope:
		name, ok := index.(vals.Text)
		if !ok {
			return nil, errs.BadValue{What: "scope index",
				Valid: "text", Actual: vals.KindOf(index).String()}
		}
		elem, ok := v.lookupLocal(string(name), nil)
		if !ok {
			return nil, errs.NoSuchName{Name: string(name)}
		}
		return elem, nil
	default:
		return nil, errs.BadValue{What: "indexed value",
			Valid: "list or scope", Actual: vals.KindOf(v).String()}
	}
}

// Runs a job with empty input and returns the value it sends. A stream is
// read into a table while the job runs, so that the value outlives the job.
func capture(def *parse.JobDef, ctx JobContext) (vals.Value, error) {
	s, r := stream.NewValueChannel(ctx.BufferSize)
	h, err := Invoke(def, JobContext{
		Input:      stream.EmptyReceiver(),
		Output:     s,
		Scope:      ctx.Scope,
		Printer:    ctx.Printer,
		BufferSize: ctx.BufferSize,
		Source:     ctx.Source,
	})
	if err != nil {
		return nil, err
	}
	v, err := r.Recv()
	if in, ok := v.(*stream.Input); ok && err == nil {
		v, err = stream.Materialize(in)
		if err != nil {
			in.Close()
		}
	}
	if jobErr := h.Join(); jobErr != nil {
		return nil, jobErr
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
