package constants_test

import (
	"testing"

	"src.crush.sh/pkg/eval"
	"src.crush.sh/pkg/eval/errs"
	"src.crush.sh/pkg/eval/vals"
	"src.crush.sh/pkg/mods/constants"
)

func TestAddTo(t *testing.T) {
	root := eval.NewRootScope()
	if err := constants.AddTo(root); err != nil {
		t.Fatalf("AddTo -> %v", err)
	}
	child := root.CreateChild(false)

	for name, want := range map[string]vals.Value{
		"true": vals.Bool(true), "false": vals.Bool(false), "global": root,
	} {
		got, ok := child.Get(name)
		if !ok || !vals.Equal(got, want) {
			t.Errorf("Get(%q) -> %v, %v, want %v", name, got, ok, vals.Repr(want))
		}
	}
	if v, err := child.GetPath([]string{"constants", "true"}); err != nil || v != vals.Bool(true) {
		t.Errorf("GetPath(constants/true) -> %v, %v", v, err)
	}
}

func TestAddTo_NamespaceIsReadonly(t *testing.T) {
	root := eval.NewRootScope()
	constants.AddTo(root)
	v, _ := root.Get("constants")
	ns := v.(*eval.Scope)
	if err := ns.Declare("pi", vals.Int(3)); err != (errs.ReadOnlyScope{Name: "pi"}) {
		t.Errorf("Declare -> %v, want ReadOnlyScope", err)
	}
	if err := ns.Set("true", vals.Bool(false)); err != (errs.ReadOnlyScope{Name: "true"}) {
		t.Errorf("Set -> %v, want ReadOnlyScope", err)
	}
}
