// Package core declares the core namespace, which holds the commands for
// binding names and producing values. The root scope uses it.
package core

import (
	"strconv"

	"src.crush.sh/pkg/eval"
	"src.crush.sh/pkg/eval/errs"
	"src.crush.sh/pkg/eval/vals"
)

// AddTo declares the core namespace in root.
func AddTo(root *eval.Scope) error {
	_, err := eval.BuildNs("core").
		AddFns(map[string]func(*eval.ExecutionContext) error{
			"let":  let,
			"set":  set,
			"echo": echo,
		}).
		Into(root, true)
	return err
}

// let name=value ...
//
// Declares each name in the scope of the job.
func let(ctx *eval.ExecutionContext) error {
	if err := checkAllNamed(ctx.Arguments); err != nil {
		return err
	}
	for _, arg := range ctx.Arguments {
		if err := ctx.Scope.Declare(arg.Name, arg.Value); err != nil {
			return err
		}
	}
	return nil
}

// set name=value ...
//
// Rebinds existing names, in the scope of the job or any of its ancestors.
func set(ctx *eval.ExecutionContext) error {
	if err := checkAllNamed(ctx.Arguments); err != nil {
		return err
	}
	for _, arg := range ctx.Arguments {
		if err := ctx.Scope.Set(arg.Name, arg.Value); err != nil {
			return err
		}
	}
	return nil
}

func checkAllNamed(args eval.Arguments) error {
	for i, arg := range args {
		if arg.Name == "" {
			return errs.BadValue{
				What:   "argument " + strconv.Itoa(i+1),
				Valid:  "named",
				Actual: vals.Repr(arg.Value)}
		}
	}
	return nil
}

// echo value ...
//
// Outputs its only argument, or a list of all the arguments when there are
// more than one. With no arguments the output is empty.
func echo(ctx *eval.ExecutionContext) error {
	for i, arg := range ctx.Arguments {
		if arg.Name != "" {
			return errs.BadValue{
				What:   "argument " + strconv.Itoa(i+1),
				Valid:  "positional",
				Actual: arg.Name + "=" + vals.Repr(arg.Value)}
		}
	}
	switch values := ctx.Arguments.Positional(); len(values) {
	case 0:
		return nil
	case 1:
		return ctx.Output.Send(values[0])
	default:
		return ctx.Output.Send(vals.MakeList(values...))
	}
}
