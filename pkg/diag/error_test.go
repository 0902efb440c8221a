package diag

import (
	"errors"
	"testing"
)

func TestError(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	setMessageMarkers(t, "{", "}")

	err := &Error{
		Type:    "some error",
		Message: "bad list",
		Context: *contextInParen("[test]", "echo (x)"),
	}

	wantErrorString := "some error: [test]:1:6: bad list"
	if gotErrorString := err.Error(); gotErrorString != wantErrorString {
		t.Errorf("Error() -> %q, want %q", gotErrorString, wantErrorString)
	}

	wantRanging := Ranging{From: 5, To: 8}
	if gotRanging := err.Range(); gotRanging != wantRanging {
		t.Errorf("Range() -> %v, want %v", gotRanging, wantRanging)
	}

	// Type is capitalized in return value of Show
	wantShow := lines(
		"Some error: {bad list}",
		"  [test]:1:6: echo <(x)>")
	if gotShow := err.Show(""); gotShow != wantShow {
		t.Errorf("Show() -> %q, want %q", gotShow, wantShow)
	}
}

var errCause = errors.New("cause")

func TestError_UnwrapAndErrorOfType(t *testing.T) {
	inner := &Error{Type: "inner", Message: "m", Cause: errCause}
	outer := &Error{Type: "outer", Message: "m", Cause: inner}

	if !errors.Is(outer, errCause) {
		t.Errorf("errors.Is(outer, errCause) = false, want true")
	}
	if got := ErrorOfType(outer, "inner"); got != inner {
		t.Errorf("ErrorOfType(outer, inner) -> %v, want %v", got, inner)
	}
	if got := ErrorOfType(outer, "missing"); got != nil {
		t.Errorf("ErrorOfType(outer, missing) -> %v, want nil", got)
	}
}
