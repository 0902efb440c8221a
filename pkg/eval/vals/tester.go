package vals

import (
	"testing"
)

// Tester is a helper for testing properties of a value.
type Tester struct {
	t *testing.T
	v Value
}

// TestValue returns a ValueTester.
func TestValue(t *testing.T, v Value) Tester {
	return Tester{t, v}
}

// Kind tests the Kind of the value.
func (vt Tester) Kind(wantKind Kind) Tester {
	vt.t.Helper()
	kind := KindOf(vt.v)
	if kind != wantKind {
		vt.t.Errorf("Kind(v) = %s, want %s", kind, wantKind)
	}
	return vt
}

// Repr tests the Repr of the value.
func (vt Tester) Repr(wantRepr string) Tester {
	vt.t.Helper()
	repr := Repr(vt.v)
	if repr != wantRepr {
		vt.t.Errorf("Repr(v) = %s, want %s", repr, wantRepr)
	}
	return vt
}

// Equal tests that the value is Equal to every of the given values, and has
// the same HashKey as them.
func (vt Tester) Equal(others ...Value) Tester {
	vt.t.Helper()
	for _, other := range others {
		if !Equal(vt.v, other) {
			vt.t.Errorf("Equal(v, %v) = false, want true", other)
		}
		if HashKey(vt.v) != HashKey(other) {
			vt.t.Errorf("HashKey(v) != HashKey(%v)", other)
		}
	}
	return vt
}

// NotEqual tests that the value is not Equal to any of the given values, and
// has a different HashKey from them.
func (vt Tester) NotEqual(others ...Value) Tester {
	vt.t.Helper()
	for _, other := range others {
		if Equal(vt.v, other) {
			vt.t.Errorf("Equal(v, %v) = true, want false", other)
		}
		if HashKey(vt.v) == HashKey(other) {
			vt.t.Errorf("HashKey(v) == HashKey(%v)", other)
		}
	}
	return vt
}
