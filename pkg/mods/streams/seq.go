package streams

import (
	"strconv"

	"src.crush.sh/pkg/eval"
	"src.crush.sh/pkg/eval/errs"
	"src.crush.sh/pkg/eval/vals"
)

var seqTypes = vals.ColumnTypes{{Name: "value", Kind: vals.IntegerKind}}

// seq [from] to
//
// Outputs a stream with one integer column named value, counting from from
// (0 if omitted) up to but not including to.
func seq(ctx *eval.ExecutionContext) error {
	if err := ctx.Arguments.CheckLenRange(1, 2); err != nil {
		return err
	}
	bounds := make([]int64, len(ctx.Arguments))
	for i, arg := range ctx.Arguments {
		n, ok := arg.Value.(vals.Integer)
		if !ok {
			return errs.BadValue{
				What:   "argument " + strconv.Itoa(i+1),
				Valid:  "integer",
				Actual: vals.Repr(arg.Value)}
		}
		bounds[i], ok = n.Int64()
		if !ok {
			return errs.BadValue{
				What:   "argument " + strconv.Itoa(i+1),
				Valid:  "a 64-bit integer",
				Actual: n.String()}
		}
	}
	from, to := int64(0), bounds[0]
	if len(bounds) == 2 {
		from, to = bounds[0], bounds[1]
	}

	out, err := ctx.Output.Initialize(seqTypes)
	if err != nil {
		return err
	}
	for i := from; i < to; i++ {
		if err := out.Send(vals.Row{vals.Int(i)}); err != nil {
			return err
		}
	}
	return nil
}
