package parse

import (
	"testing"

	"src.crush.sh/pkg/tt"
)

type kt struct {
	Kind TokenKind
	Text string
}

// Lexes src until EOF or a bad token, returning the kinds and texts.
func lexAll(src string) []kt {
	lx := NewLexer(src)
	var tokens []kt
	for {
		t := lx.Pop()
		tokens = append(tokens, kt{t.Kind, t.Text})
		if t.Kind == EOF || t.Kind == BadToken {
			return tokens
		}
	}
}

func TestLexer(t *testing.T) {
	tt.Test(t, tt.Fn("lexAll", lexAll), tt.Table{
		tt.Args("ls | uniq %name | sum %count").Rets([]kt{
			{String, "ls"}, {Pipe, "|"}, {String, "uniq"}, {Field, "%name"},
			{Pipe, "|"}, {String, "sum"}, {Field, "%count"}, {EOF, ""}}),
		tt.Args("a;b\nc").Rets([]kt{
			{String, "a"}, {Separator, ";"}, {String, "b"}, {Separator, "\n"},
			{String, "c"}, {EOF, ""}}),
		tt.Args(`echo "a b" 'c' 12 -3 *.txt r"a+"`).Rets([]kt{
			{String, "echo"}, {QuotedString, `"a b"`}, {QuotedString, `'c'`},
			{Integer, "12"}, {Integer, "-3"}, {Glob, "*.txt"}, {Regex, `r"a+"`},
			{EOF, ""}}),
		tt.Args("x=1 $a/b $c[0]").Rets([]kt{
			{String, "x"}, {Assign, "="}, {Integer, "1"},
			{Variable, "$a/b"}, {ArrayVariable, "$c"}, {ListStart, "["},
			{Integer, "0"}, {ListEnd, "]"}, {EOF, ""}}),
		tt.Args("== != > >= < <= =~ !~").Rets([]kt{
			{Equal, "=="}, {NotEqual, "!="}, {GreaterThan, ">"},
			{GreaterThanOrEqual, ">="}, {LessThan, "<"}, {LessThanOrEqual, "<="},
			{Match, "=~"}, {NotMatch, "!~"}, {EOF, ""}}),
		tt.Args("f {a} `{b}").Rets([]kt{
			{String, "f"}, {BlockStart, "{"}, {String, "a"}, {BlockEnd, "}"},
			{BlockStart, "`{"}, {String, "b"}, {BlockEnd, "}"}, {EOF, ""}}),
		tt.Args("a # comment\nb").Rets([]kt{
			{String, "a"}, {Separator, "\n"}, {String, "b"}, {EOF, ""}}),
		tt.Args("a \\\n b").Rets([]kt{
			{String, "a"}, {String, "b"}, {EOF, ""}}),
		tt.Args("12abc").Rets([]kt{{Integer, "12abc"}, {EOF, ""}}),

		// Errors.
		tt.Args(`echo "abc`).Rets([]kt{
			{String, "echo"}, {BadToken, "unterminated string"}}),
		tt.Args(`r"abc`).Rets([]kt{{BadToken, "unterminated regex"}}),
		tt.Args("f {a").Rets([]kt{
			{String, "f"}, {BlockStart, "{"}, {String, "a"},
			{BadToken, "unterminated block"}}),
		tt.Args("f [a").Rets([]kt{
			{String, "f"}, {ListStart, "["}, {String, "a"},
			{BadToken, "unterminated list"}}),
		tt.Args("a ^").Rets([]kt{{String, "a"}, {BadToken, "unexpected rune '^'"}}),
		tt.Args("a !").Rets([]kt{{String, "a"}, {BadToken, "unexpected rune '!'"}}),
		tt.Args("`a").Rets([]kt{{BadToken, "'`' must be followed by '{'"}}),
	})
}

func TestLexer_PeekIsIdempotent(t *testing.T) {
	lx := NewLexer("a b")
	first := lx.Peek()
	second := lx.Peek()
	if first != second {
		t.Errorf("Peek() returned %v, then %v", first, second)
	}
	if popped := lx.Pop(); popped != first {
		t.Errorf("Pop() returned %v, want %v", popped, first)
	}
	if next := lx.Peek(); next.Text != "b" {
		t.Errorf("Peek() after Pop() returned %v, want token b", next)
	}
}

func TestLexer_ErrorIsSticky(t *testing.T) {
	lx := NewLexer("^ a")
	first := lx.Pop()
	if first.Kind != BadToken {
		t.Fatalf("Pop() returned %v, want an error token", first)
	}
	if again := lx.Pop(); again != first {
		t.Errorf("Pop() after error returned %v, want %v", again, first)
	}
}

func TestTokenKind_String(t *testing.T) {
	tt.Test(t, tt.Fn("TokenKind.String", TokenKind.String), tt.Table{
		tt.Args(EOF).Rets("end of input"),
		tt.Args(BadToken).Rets("bad token"),
		tt.Args(Pipe).Rets("pipe"),
		tt.Args(Match).Rets("operator"),
		tt.Args(TokenKind(100)).Rets("TokenKind(100)"),
	})
}
