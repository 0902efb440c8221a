package parse

import (
	"bytes"
	"errors"
	"fmt"

	"src.crush.sh/pkg/diag"
)

// parser maintains the mutable state of parsing.
type parser struct {
	src Source
	lx  *Lexer
}

// Error is a parse error. Its Type is always "parse error".
type Error = diag.Error

const errorType = "parse error"

// GetError returns the parse error in err's chain, or nil if there is none.
func GetError(err error) *Error {
	return diag.ErrorOfType(err, errorType)
}

func (ps *parser) errorp(r diag.Ranger, e error) *Error {
	rg := r.Range()
	if rg.To == rg.From && rg.To < len(ps.src.Code) {
		rg.To++
	}
	return &Error{
		Type:    errorType,
		Message: e.Error(),
		Context: *diag.NewContext(ps.src.Name, ps.src.Code, rg),
		Partial: rg.From == len(ps.src.Code),
	}
}

// Returns an error about an unexpected token.
func (ps *parser) unexpected(t Token, e error) *Error {
	if t.Kind == BadToken {
		return ps.errorp(t, errors.New("bad token: "+t.Text))
	}
	return ps.errorp(t, fmt.Errorf("%v, got %s", e, t.describe()))
}

func newError(text string, shouldbe ...string) error {
	if len(shouldbe) == 0 {
		return errors.New(text)
	}
	var buf bytes.Buffer
	if len(text) > 0 {
		buf.WriteString(text + ", ")
	}
	buf.WriteString("should be " + shouldbe[0])
	for i, opt := range shouldbe[1:] {
		if i == len(shouldbe)-2 {
			buf.WriteString(" or ")
		} else {
			buf.WriteString(", ")
		}
		buf.WriteString(opt)
	}
	return errors.New(buf.String())
}
