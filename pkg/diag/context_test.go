package diag

import (
	"strings"
	"testing"
)

var contextTests = []struct {
	Name    string
	Context *Context
	Indent  string

	WantShow string
}{
	{
		Name:     "single-line culprit",
		Context:  contextInParen("[test]", "echo (bad)"),
		Indent:   "_",
		WantShow: "[test]:1:6: echo <(bad)>",
	},
	{
		Name:    "multi-line culprit",
		Context: contextInParen("[test]", "echo (bad\nbad)\nmore"),
		Indent:  "_",
		WantShow: lines(
			"[test]:1:6: echo <(bad>",
			"_            <bad)>",
		),
	},
	{
		Name: "trailing newline in culprit is removed",
		//                             012345678 9
		Context:  NewContext("[test]", "echo bad\n", Ranging{5, 9}),
		WantShow: "[test]:1:6: echo <bad>",
	},
	{
		Name: "empty culprit",
		//                             012345
		Context:  NewContext("[test]", "echo x", Ranging{5, 5}),
		WantShow: "[test]:1:6: echo <^>x",
	},
	{
		Name:     "culprit on second line",
		Context:  contextInParen("[test]", "a\nbc (d)"),
		WantShow: "[test]:2:4: bc <(d)>",
	},
	{
		Name:     "unknown culprit range",
		Context:  NewContext("[test]", "echo", Ranging{-1, -1}),
		WantShow: "[test], unknown position",
	},
	{
		Name:     "invalid culprit range",
		Context:  NewContext("[test]", "echo", Ranging{2, 1}),
		WantShow: "[test], invalid position 2-1",
	},
}

func TestContext_Show(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	for _, test := range contextTests {
		t.Run(test.Name, func(t *testing.T) {
			gotShow := test.Context.Show(test.Indent)
			if gotShow != test.WantShow {
				t.Errorf("Show() -> %q, want %q", gotShow, test.WantShow)
			}
		})
	}
}

func TestContext_Position(t *testing.T) {
	ctx := NewContext("[test]", "ab\ncd é f", Ranging{9, 10})
	line, col := ctx.Position()
	if line != 2 || col != 6 {
		t.Errorf("Position() -> (%d, %d), want (2, 6)", line, col)
	}
}

// Returns a Context with the given name and source, and a range for the part
// between ( and ).
func contextInParen(name, src string) *Context {
	return NewContext(name, src,
		Ranging{strings.Index(src, "("), strings.Index(src, ")") + 1})
}

func lines(lines ...string) string {
	return strings.Join(lines, "\n")
}
