package streams_test

import (
	"math/big"

	"src.crush.sh/pkg/eval"
	"src.crush.sh/pkg/eval/vals"
)

var lsTypes = vals.ColumnTypes{
	{Name: "name", Kind: vals.TextKind},
	{Name: "count", Kind: vals.IntegerKind},
}

var lsRows = []vals.Row{
	{vals.Text("a"), vals.Int(1)},
	{vals.Text("b"), vals.Int(2)},
	{vals.Text("a"), vals.Int(3)},
}

var seqTypes = vals.ColumnTypes{{Name: "value", Kind: vals.IntegerKind}}

// Declares a command that outputs a stream of the given rows.
func rowsCommand(name string, types vals.ColumnTypes, rows ...vals.Row) func(*eval.Evaler) {
	return func(ev *eval.Evaler) {
		ev.Global.Declare(name, eval.NewBuiltin(name, func(ctx *eval.ExecutionContext) error {
			out, err := ctx.Output.Initialize(types)
			if err != nil {
				return err
			}
			for _, row := range rows {
				if err := out.Send(row); err != nil {
					return err
				}
			}
			return nil
		}))
	}
}

// Declares a command that outputs the given rows as a table.
func tableCommand(name string, types vals.ColumnTypes, rows ...vals.Row) func(*eval.Evaler) {
	return func(ev *eval.Evaler) {
		table, err := vals.NewTable(types, rows)
		if err != nil {
			panic(err)
		}
		ev.Global.Declare(name, eval.NewBuiltin(name, func(ctx *eval.ExecutionContext) error {
			return ctx.Output.Send(table)
		}))
	}
}

func setupLs(ev *eval.Evaler) {
	rowsCommand("ls", lsTypes, lsRows...)(ev)
	// Stops without reading its input.
	ev.Global.Declare("stop", eval.NewBuiltin("stop", func(*eval.ExecutionContext) error {
		return nil
	}))
}

func bigInt(s string) vals.Integer {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad big int " + s)
	}
	return vals.NewInteger(n)
}
