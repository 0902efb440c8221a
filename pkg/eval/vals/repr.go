package vals

import (
	"fmt"
	"strings"

	"src.crush.sh/pkg/parse"
)

// Reprer wraps the Repr method.
type Reprer interface {
	// Repr returns a string that represents a Value. The string is either a
	// literal of that Value, or a string enclosed in "<>" containing the kind
	// and identity of the Value (like `<closure 0xdeadcafe>`).
	Repr() string
}

// Repr returns the representation for a value. For the literal kinds it is
// source text that evaluates back to an equal value.
func Repr(v Value) string {
	switch v := v.(type) {
	case nil, Empty:
		return "<empty>"
	case Bool:
		if v {
			return "$true"
		}
		return "$false"
	case Integer:
		return v.String()
	case Text:
		return parse.Quote(string(v))
	case Field:
		return "%" + strings.Join(v.Path, "/")
	case Variable:
		return "$" + strings.Join(v.Path, "/")
	case Glob:
		return v.Source
	case Regex:
		return `r"` + v.Source + `"`
	case Op:
		return string(v)
	case List:
		parts := make([]string, len(v.elems))
		for i, elem := range v.elems {
			parts[i] = Repr(elem)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case Reprer:
		return v.Repr()
	default:
		return fmt.Sprintf("<unknown %v>", v)
	}
}

// ToString converts a value to a string for display. Text is written as is;
// every other value uses its Repr.
func ToString(v Value) string {
	if t, ok := v.(Text); ok {
		return string(t)
	}
	return Repr(v)
}
