package parse

import (
	"fmt"

	"src.crush.sh/pkg/diag"
)

// TokenKind identifies the category of a Token.
type TokenKind int

// Token kinds.
const (
	EOF TokenKind = iota
	BadToken

	String
	QuotedString
	Integer
	Glob
	Regex

	Field
	Variable
	ArrayVariable

	BlockStart
	BlockEnd
	ListStart
	ListEnd
	Pipe
	Separator
	Assign

	Equal
	NotEqual
	GreaterThan
	GreaterThanOrEqual
	LessThan
	LessThanOrEqual
	Match
	NotMatch
)

var tokenKindNames = [...]string{
	EOF: "end of input", BadToken: "bad token",
	String: "string", QuotedString: "quoted string", Integer: "integer",
	Glob: "glob", Regex: "regex",
	Field: "field", Variable: "variable", ArrayVariable: "array variable",
	BlockStart: "block start", BlockEnd: "block end",
	ListStart: "list start", ListEnd: "list end",
	Pipe: "pipe", Separator: "separator", Assign: "assignment",
	Equal: "operator", NotEqual: "operator",
	GreaterThan: "operator", GreaterThanOrEqual: "operator",
	LessThan: "operator", LessThanOrEqual: "operator",
	Match: "operator", NotMatch: "operator",
}

func (k TokenKind) String() string {
	if 0 <= int(k) && int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// IsOperator reports whether the kind is one of the comparison or match
// operators.
func (k TokenKind) IsOperator() bool {
	return Equal <= k && k <= NotMatch
}

// Token is a lexical token. For tokens of kind BadToken, Text is the error
// message; for all other kinds it is the source text of the token.
type Token struct {
	Kind TokenKind
	Text string
	diag.Ranging
}

func (t Token) describe() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case Separator:
		if t.Text == "\n" {
			return "newline"
		}
	}
	return fmt.Sprintf("%q", t.Text)
}
