package diag

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Error represents an error with context that can be showed.
type Error struct {
	Type    string
	Message string
	Context Context
	// Partial is true when the error is at the end of the source, meaning
	// that more input could fix it.
	Partial bool
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns a plain text representation of the error.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Type, e.Context.describeStart(), e.Message)
}

// Unwrap returns the cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// Range returns the range of the error.
func (e *Error) Range() Ranging {
	return e.Context.Range()
}

// Variables controlling the style of the message.
var (
	messageStart = "\033[31;1m"
	messageEnd   = "\033[m"
)

// Show shows the error.
func (e *Error) Show(indent string) string {
	header := fmt.Sprintf("%s: %s%s%s\n", title(e.Type), messageStart, e.Message, messageEnd)
	return header + indent + "  " + e.Context.Show(indent+"  ")
}

// ErrorOfType returns the first *Error in err's chain with the given type.
func ErrorOfType(err error, typ string) *Error {
	var e *Error
	for errors.As(err, &e) {
		if e.Type == typ {
			return e
		}
		err = e.Cause
	}
	return nil
}

func title(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return strings.TrimSpace(string(r))
}
