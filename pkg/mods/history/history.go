// Package history declares the history namespace, which exposes the command
// history of interactive sessions.
package history

import (
	"src.crush.sh/pkg/eval"
	"src.crush.sh/pkg/eval/errs"
	"src.crush.sh/pkg/eval/vals"
	"src.crush.sh/pkg/store/storedefs"
)

var cmdTypes = vals.ColumnTypes{
	{Name: "seq", Kind: vals.IntegerKind},
	{Name: "text", Kind: vals.TextKind},
}

// AddTo declares the history namespace in root, backed by s.
func AddTo(root *eval.Scope, s storedefs.Store) error {
	_, err := eval.BuildNs("history").
		AddFns(map[string]func(*eval.ExecutionContext) error{
			"list": func(ctx *eval.ExecutionContext) error { return list(ctx, s) },
			"del":  func(ctx *eval.ExecutionContext) error { return del(ctx, s) },
		}).
		Into(root, false)
	return err
}

// history/list
//
// Outputs all the commands in the history, oldest first.
func list(ctx *eval.ExecutionContext, s storedefs.Store) error {
	if err := ctx.Arguments.CheckLen(0); err != nil {
		return err
	}
	upto, err := s.NextCmdSeq()
	if err != nil {
		return err
	}
	cmds, err := s.Cmds(0, upto)
	if err != nil {
		return err
	}
	out, err := ctx.Output.Initialize(cmdTypes)
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		err := out.Send(vals.Row{vals.Int(int64(cmd.Seq)), vals.Text(cmd.Text)})
		if err != nil {
			return err
		}
	}
	return nil
}

// history/del seq
//
// Deletes the command with the given sequence number.
func del(ctx *eval.ExecutionContext, s storedefs.Store) error {
	if err := ctx.Arguments.CheckLen(1); err != nil {
		return err
	}
	n, ok := ctx.Arguments[0].Value.(vals.Integer)
	if !ok {
		return errs.BadValue{
			What:   "argument 1",
			Valid:  "integer",
			Actual: vals.Repr(ctx.Arguments[0].Value)}
	}
	seq, ok := n.Int64()
	if !ok || seq <= 0 {
		return errs.BadValue{What: "argument 1", Valid: "sequence number", Actual: n.String()}
	}
	return s.DelCmd(int(seq))
}
