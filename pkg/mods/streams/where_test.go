package streams_test

import (
	"testing"

	"src.crush.sh/pkg/eval/errs"
	. "src.crush.sh/pkg/eval/evaltest"
)

func TestWhere(t *testing.T) {
	TestWithSetup(t, setupLs,
		That("ls | where %name == a").Puts(
			Rows(lsTypes, []any{"a", 1}, []any{"a", 3})),
		That("ls | where %name != a").Puts(
			Rows(lsTypes, []any{"b", 2})),
		That("ls | where %count > 1").Puts(
			Rows(lsTypes, []any{"b", 2}, []any{"a", 3})),
		That("ls | where %count >= 2").Puts(
			Rows(lsTypes, []any{"b", 2}, []any{"a", 3})),
		That("ls | where %count < 2").Puts(
			Rows(lsTypes, []any{"a", 1})),
		That("ls | where %count <= 2").Puts(
			Rows(lsTypes, []any{"a", 1}, []any{"b", 2})),
		That("ls | where %name > a").Puts(
			Rows(lsTypes, []any{"b", 2})),
		That(`ls | where %name =~ r"^b"`).Puts(
			Rows(lsTypes, []any{"b", 2})),
		That("ls | where %name !~ a*").Puts(
			Rows(lsTypes, []any{"b", 2})),
		That("ls | where %name =~ ?").Puts(
			Rows(lsTypes, []any{"a", 1}, []any{"b", 2}, []any{"a", 3})),
		That("ls | where %count == 5").Puts(Rows(lsTypes)),
		That("ls | where %name == a | sum %count").Puts(4),
		That("ls | where name == a | sum count").Puts(4),

		That("ls | where %name == a b").Throws(errs.ArityMismatch{
			What: "arguments", ValidLow: 3, ValidHigh: 3, Actual: 4}),
		That("ls | where %name is a").Throws(errs.BadValue{
			What: "argument 2", Valid: "operator", Actual: "is"}),
		That("ls | where %count > x").Throws(errs.TypeMismatch{
			What: "argument 3", Valid: "integer", Actual: "text"}),
		That("ls | where %count =~ a*").Throws(errs.TypeMismatch{
			What: "column count", Valid: "text", Actual: "integer"}),
		That("ls | where %name =~ a").Throws(errs.BadValue{
			What: "argument 3", Valid: "glob or regex", Actual: "text"}),
	)
}
