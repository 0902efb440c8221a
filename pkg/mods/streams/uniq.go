package streams

import (
	"src.crush.sh/pkg/eval"
	"src.crush.sh/pkg/eval/errs"
	"src.crush.sh/pkg/eval/stream"
	"src.crush.sh/pkg/eval/vals"
)

// uniq [%field]
//
// Outputs the rows of the input in order, skipping every row equal to one
// seen before. With a field, rows are compared by that column only.
func uniq(ctx *eval.ExecutionContext) error {
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

	var key func(vals.Row) any
	if path == nil {
		for _, t := range types {
			if !t.Kind.Hashable() {
				return errNotHashable(t)
			}
		}
		key = vals.RowKey
	} else {
		i, err := types.Find(path)
		if err != nil {
			return err
		}
		if !types[i].Kind.Hashable() {
			return errNotHashable(types[i])
		}
		key = func(row vals.Row) any { return vals.HashKey(row[i]) }
	}

	out, err := ctx.Output.Initialize(types)
	if err != nil {
		return err
	}
	seen := make(map[any]struct{})
	for {
		row, err := input.Read()
		if err == stream.EOS {
			return nil
		} else if err != nil {
			return err
		}
		k := key(row)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if err := out.Send(row); err != nil {
			reportSendError(ctx, err)
		}
	}
}

func errNotHashable(t vals.ColumnType) error {
	return errs.TypeMismatch{
		What: "column " + t.Name, Valid: "hashable value", Actual: t.Kind.String()}
}
