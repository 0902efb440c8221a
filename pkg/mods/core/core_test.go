package core_test

import (
	"testing"

	"src.crush.sh/pkg/eval/errs"
	. "src.crush.sh/pkg/eval/evaltest"
	"src.crush.sh/pkg/eval/vals"
)

func TestLet(t *testing.T) {
	Test(t,
		That("let x=1").DoesNothing(),
		That("let x=1", "echo $x").Puts(1),
		That("let x=1 y=abc", "echo $x $y").Puts(
			vals.MakeList(vals.Int(1), vals.Text("abc"))),
		That("let x=1").Then("echo $x").Puts(1),
		That("let l=[a b]", "echo $l[1]").Puts("b"),

		That("let x=1", "let x=2").Throws(errs.AlreadyDeclared{Name: "x"}),
		That("let 1").Throws(errs.BadValue{
			What: "argument 1", Valid: "named", Actual: "1"}),
	)
}

func TestSet(t *testing.T) {
	Test(t,
		That("let x=1", "set x=2", "echo $x").Puts(2),
		That("let x=1", "let f=`{ set x=2 }", "f", "echo $x").Puts(2),
		That("set nope=1").Throws(errs.NoSuchName{Name: "nope", Path: "nope"}),
		That("set 1").Throws(errs.BadValue{
			What: "argument 1", Valid: "named", Actual: "1"}),
	)
}

func TestEcho(t *testing.T) {
	Test(t,
		That("echo").DoesNothing(),
		That("echo a").Puts("a"),
		That("echo 12").Puts(12),
		That("echo $true").Puts(true),
		That("echo a 1").Puts(vals.MakeList(vals.Text("a"), vals.Int(1))),
		That("echo %a/b").Puts(vals.Field{Path: []string{"a", "b"}}),
		That("echo a=1").Throws(errs.BadValue{
			What: "argument 1", Valid: "positional", Actual: "a=1"}),
	)
}
