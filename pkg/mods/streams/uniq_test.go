package streams_test

import (
	"testing"

	"src.crush.sh/pkg/eval/errs"
	. "src.crush.sh/pkg/eval/evaltest"
	"src.crush.sh/pkg/eval/vals"
)

func TestUniq(t *testing.T) {
	TestWithSetup(t, setupLs,
		That("ls | uniq %name").Puts(
			Rows(lsTypes, []any{"a", 1}, []any{"b", 2})),
		// Unqualified and qualified names refer to the same command.
		That("ls | stream/uniq %name").Puts(
			Rows(lsTypes, []any{"a", 1}, []any{"b", 2})),
		That("ls | uniq %count").Puts(
			Rows(lsTypes, []any{"a", 1}, []any{"b", 2}, []any{"a", 3})),
		That("ls | uniq").Puts(
			Rows(lsTypes, []any{"a", 1}, []any{"b", 2}, []any{"a", 3})),
		That("stream/seq 0 | uniq").Puts(Rows(seqTypes)),

		// The end-to-end pipeline.
		That("ls | uniq %name | sum %count").Puts(3),

		// A consumer that stops early is not an error.
		That("ls | uniq %name | stop").DoesNothing(),

		That("ls | uniq %name %count").Throws(errs.ArityMismatch{
			What: "arguments", ValidLow: 0, ValidHigh: 1, Actual: 2}),
		// A bareword names a column like a field does.
		That("ls | uniq name").Puts(
			Rows(lsTypes, []any{"a", 1}, []any{"b", 2})),
		That("ls | uniq name | sum count").Puts(3),
		That(`ls | uniq ""`).Throws(errs.BadValue{
			What: "argument 1", Valid: "field", Actual: "text"}),
		That("ls | uniq 1").Throws(errs.BadValue{
			What: "argument 1", Valid: "field", Actual: "integer"}),
		That("ls | uniq %size").Throws(ErrorWithType(errs.NoSuchColumn{})).
			PrintsError("no such column: size (columns are name, count)"),
		That("echo 1 | uniq").Throws(errs.BadValue{
			What: "input", Valid: "stream or rows", Actual: "integer"}),
	)
}

func TestUniq_WholeRows(t *testing.T) {
	TestWithSetup(t, rowsCommand("dups", lsTypes,
		vals.Row{vals.Text("a"), vals.Int(1)},
		vals.Row{vals.Text("a"), vals.Int(1)},
		vals.Row{vals.Text("b"), vals.Int(1)},
		vals.Row{vals.Text("a"), vals.Int(2)},
		vals.Row{vals.Text("b"), vals.Int(1)},
	),
		That("dups | uniq").Puts(
			Rows(lsTypes, []any{"a", 1}, []any{"b", 1}, []any{"a", 2})),
		// Idempotence.
		That("dups | uniq | uniq").Puts(
			Rows(lsTypes, []any{"a", 1}, []any{"b", 1}, []any{"a", 2})),
		That("dups | uniq %name | uniq %name").Puts(
			Rows(lsTypes, []any{"a", 1}, []any{"b", 1})),
	)
}

func TestUniq_TableInput(t *testing.T) {
	TestWithSetup(t, tableCommand("tbl", lsTypes, lsRows...),
		That("tbl | uniq %name").Puts(
			Rows(lsTypes, []any{"a", 1}, []any{"b", 2})),
	)
}

func TestUniq_UnhashableColumn(t *testing.T) {
	streamTypes := vals.ColumnTypes{{Name: "s", Kind: vals.StreamKind}}
	TestWithSetup(t, rowsCommand("nested", streamTypes),
		That("nested | uniq").Throws(errs.TypeMismatch{
			What: "column s", Valid: "hashable value", Actual: "stream"}),
		That("nested | uniq %s").Throws(errs.TypeMismatch{
			What: "column s", Valid: "hashable value", Actual: "stream"}),
	)
}

func TestUniq_TablesCompareByIdentity(t *testing.T) {
	inner := vals.ColumnTypes{{Name: "v", Kind: vals.IntegerKind}}
	t1, _ := vals.NewTable(inner, []vals.Row{{vals.Int(1)}})
	t2, _ := vals.NewTable(inner, []vals.Row{{vals.Int(1)}})
	tabsTypes := vals.ColumnTypes{{Name: "t", Kind: vals.RowsKind}}
	TestWithSetup(t, rowsCommand("tabs", tabsTypes,
		vals.Row{t1}, vals.Row{t2}, vals.Row{t1}),
		That("tabs | uniq %t").Puts(Rows(tabsTypes, []any{t1}, []any{t2})),
		That("tabs | uniq").Puts(Rows(tabsTypes, []any{t1}, []any{t2})),
	)
}
