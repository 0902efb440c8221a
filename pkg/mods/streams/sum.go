package streams

import (
	"math/big"

	"src.crush.sh/pkg/eval"
	"src.crush.sh/pkg/eval/errs"
	"src.crush.sh/pkg/eval/stream"
	"src.crush.sh/pkg/eval/vals"
)

// sum [%field]
//
// Outputs the sum of a column of integers. Without a field, the input must
// have exactly one column, of kind integer.
func sum(ctx *eval.ExecutionContext) error {
	if err := ctx.Arguments.CheckLenRange(0, 1); err != nil {
		return err
	}
	path, err := ctx.Arguments.OptionalField(0)
	if err != nil {
		return err
	}
	input, err := ctx.ReadInput()
	if err != nil {
		return err
	}
	types := input.Types()

	col := 0
	if path == nil {
		if len(types) != 1 || types[0].Kind != vals.IntegerKind {
			return errs.BadValue{
				What:   "input",
				Valid:  "a single column of integers",
				Actual: "<" + types.String() + ">"}
		}
	} else {
		col, err = types.Find(path)
		if err != nil {
			return err
		}
		if types[col].Kind != vals.IntegerKind {
			return errs.TypeMismatch{
				What:   "column " + types[col].Name,
				Valid:  vals.IntegerKind.String(),
				Actual: types[col].Kind.String()}
		}
	}

	total := new(big.Int)
	for {
		row, err := input.Read()
		if err == stream.EOS {
			break
		} else if err != nil {
			return err
		}
		n, ok := row[col].(vals.Integer)
		if !ok {
			return errs.TypeMismatch{
				What:   "column " + types[col].Name,
				Valid:  vals.IntegerKind.String(),
				Actual: vals.KindOf(row[col]).String()}
		}
		total.Add(total, n.Big())
	}
	return ctx.Output.Send(vals.NewInteger(total))
}
