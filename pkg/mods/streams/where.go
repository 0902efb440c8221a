package streams

import (
	"strings"

	"src.crush.sh/pkg/eval"
	"src.crush.sh/pkg/eval/errs"
	"src.crush.sh/pkg/eval/stream"
	"src.crush.sh/pkg/eval/vals"
)

// where %field op value
//
// Outputs the rows of the input for which the cell in the given column stands
// in the given relation to the value. The comparison operators order integers
// numerically and texts lexically; =~ and !~ match a text column against a
// glob or a regex.
func where(ctx *eval.ExecutionContext) error {
	if err := ctx.Arguments.CheckLen(3); err != nil {
		return err
	}
	path, err := ctx.Arguments.Field(0)
	if err != nil {
		return err
	}
	op, ok := ctx.Arguments[1].Value.(vals.Op)
	if !ok {
		return errs.BadValue{
			What:   "argument 2",
			Valid:  "operator",
			Actual: vals.Repr(ctx.Arguments[1].Value)}
	}
	operand := ctx.Arguments[2].Value

	input, err := ctx.ReadInput()
	if err != nil {
		return err
	}
	types := input.Types()
	col, err := types.Find(path)
	if err != nil {
		return err
	}
	pred, err := predicate(op, types[col], operand)
	if err != nil {
		return err
	}

	out, err := ctx.Output.Initialize(types)
	if err != nil {
		return err
	}
	for {
		row, err := input.Read()
		if err == stream.EOS {
			return nil
		} else if err != nil {
			return err
		}
		if !pred(row[col]) {
			continue
		}
		if err := out.Send(row); err != nil {
			return err
		}
	}
}

// Builds the test applied to each cell of a column.
func predicate(op vals.Op, column vals.ColumnType, operand vals.Value) (func(vals.Value) bool, error) {
	switch op {
	case "==":
		return func(cell vals.Value) bool { return vals.Equal(cell, operand) }, nil
	case "!=":
		return func(cell vals.Value) bool { return !vals.Equal(cell, operand) }, nil
	case "<", "<=", ">", ">=":
		if err := checkOrdered(column, operand); err != nil {
			return nil, err
		}
		return func(cell vals.Value) bool {
			c := compare(cell, operand)
			switch op {
			case "<":
				return c < 0
			case "<=":
				return c <= 0
			case ">":
				return c > 0
			default:
				return c >= 0
			}
		}, nil
	case "=~", "!~":
		m, ok := operand.(vals.Matcher)
		if !ok {
			return nil, errs.BadValue{
				What:   "argument 3",
				Valid:  "glob or regex",
				Actual: vals.KindOf(operand).String()}
		}
		if column.Kind != vals.TextKind {
			return nil, errs.TypeMismatch{
				What:   "column " + column.Name,
				Valid:  vals.TextKind.String(),
				Actual: column.Kind.String()}
		}
		negate := op == "!~"
		return func(cell vals.Value) bool {
			return m.Match(string(cell.(vals.Text))) != negate
		}, nil
	}
	return nil, errs.BadValue{What: "argument 2", Valid: "comparison operator", Actual: string(op)}
}

func checkOrdered(column vals.ColumnType, operand vals.Value) error {
	if column.Kind != vals.IntegerKind && column.Kind != vals.TextKind {
		return errs.TypeMismatch{
			What:   "column " + column.Name,
			Valid:  "integer or text",
			Actual: column.Kind.String()}
	}
	if k := vals.KindOf(operand); k != column.Kind {
		return errs.TypeMismatch{
			What:   "argument 3",
			Valid:  column.Kind.String(),
			Actual: k.String()}
	}
	return nil
}

// Compares two values of the same ordered kind.
func compare(a, b vals.Value) int {
	switch a := a.(type) {
	case vals.Integer:
		return a.Cmp(b.(vals.Integer))
	case vals.Text:
		return strings.Compare(string(a), string(b.(vals.Text)))
	}
	panic("unreachable")
}
