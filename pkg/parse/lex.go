package parse

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"src.crush.sh/pkg/diag"
)

// Lexer splits source text into tokens, with one token of lookahead.
//
// The Lexer never panics on malformed input. Unterminated strings, unclosed
// blocks and lists, and unrecognized runes all produce a token of kind BadToken
// whose Text is a message describing the problem.
type Lexer struct {
	src string
	pos int
	// Stack of the currently open '{' and '[' runes.
	open   []rune
	peeked *Token
}

// NewLexer creates a Lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Peek returns the next token without consuming it. Calling Peek repeatedly
// returns the same token.
func (lx *Lexer) Peek() Token {
	if lx.peeked == nil {
		t := lx.lex()
		lx.peeked = &t
	}
	return *lx.peeked
}

// Pop consumes and returns the next token.
func (lx *Lexer) Pop() Token {
	t := lx.Peek()
	// BadToken and EOF tokens are sticky.
	if t.Kind != BadToken && t.Kind != EOF {
		lx.peeked = nil
	}
	return t
}

const eof rune = -1

func (lx *Lexer) peekRune() rune {
	return lx.runeAt(lx.pos)
}

func (lx *Lexer) runeAt(i int) rune {
	if i >= len(lx.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(lx.src[i:])
	return r
}

func (lx *Lexer) next() rune {
	if lx.pos >= len(lx.src) {
		return eof
	}
	r, s := utf8.DecodeRuneInString(lx.src[lx.pos:])
	lx.pos += s
	return r
}

func (lx *Lexer) token(kind TokenKind, begin int) Token {
	return Token{kind, lx.src[begin:lx.pos], diag.Ranging{From: begin, To: lx.pos}}
}

func (lx *Lexer) errorToken(begin int, format string, args ...any) Token {
	return Token{BadToken, fmt.Sprintf(format, args...), diag.Ranging{From: begin, To: lx.pos}}
}

func (lx *Lexer) lex() Token {
	lx.skipSpacesAndComments()
	begin := lx.pos
	r := lx.next()
	switch r {
	case eof:
		if len(lx.open) > 0 {
			if lx.open[len(lx.open)-1] == '[' {
				return lx.errorToken(begin, "unterminated list")
			}
			return lx.errorToken(begin, "unterminated block")
		}
		return lx.token(EOF, begin)
	case '\n', ';':
		return lx.token(Separator, begin)
	case '|':
		return lx.token(Pipe, begin)
	case '{':
		lx.open = append(lx.open, '{')
		return lx.token(BlockStart, begin)
	case '`':
		if lx.peekRune() != '{' {
			return lx.errorToken(begin, "'`' must be followed by '{'")
		}
		lx.next()
		lx.open = append(lx.open, '{')
		return lx.token(BlockStart, begin)
	case '}':
		lx.close('{')
		return lx.token(BlockEnd, begin)
	case '[':
		lx.open = append(lx.open, '[')
		return lx.token(ListStart, begin)
	case ']':
		lx.close('[')
		return lx.token(ListEnd, begin)
	case '=':
		switch lx.peekRune() {
		case '=':
			lx.next()
			return lx.token(Equal, begin)
		case '~':
			lx.next()
			return lx.token(Match, begin)
		}
		return lx.token(Assign, begin)
	case '!':
		switch lx.peekRune() {
		case '=':
			lx.next()
			return lx.token(NotEqual, begin)
		case '~':
			lx.next()
			return lx.token(NotMatch, begin)
		}
		return lx.errorToken(begin, "unexpected rune '!'")
	case '>':
		if lx.peekRune() == '=' {
			lx.next()
			return lx.token(GreaterThanOrEqual, begin)
		}
		return lx.token(GreaterThan, begin)
	case '<':
		if lx.peekRune() == '=' {
			lx.next()
			return lx.token(LessThanOrEqual, begin)
		}
		return lx.token(LessThan, begin)
	case '"', '\'':
		if !lx.skipQuoted(r) {
			return lx.errorToken(begin, "unterminated string")
		}
		return lx.token(QuotedString, begin)
	case '$':
		lx.skipName()
		if lx.peekRune() == '[' {
			return lx.token(ArrayVariable, begin)
		}
		return lx.token(Variable, begin)
	case '%':
		lx.skipName()
		return lx.token(Field, begin)
	}

	if r == 'r' && lx.peekRune() == '"' {
		lx.next()
		if !lx.skipQuoted('"') {
			return lx.errorToken(begin, "unterminated regex")
		}
		return lx.token(Regex, begin)
	}
	if !isWordRune(r) {
		return lx.errorToken(begin, "unexpected rune %q", r)
	}
	for isWordRune(lx.peekRune()) {
		lx.next()
	}
	word := lx.src[begin:lx.pos]
	switch {
	case strings.ContainsAny(word, "*?"):
		return lx.token(Glob, begin)
	case startsInteger(word):
		return lx.token(Integer, begin)
	default:
		return lx.token(String, begin)
	}
}

func (lx *Lexer) skipSpacesAndComments() {
	for {
		r := lx.peekRune()
		switch {
		case r == ' ' || r == '\t' || r == '\r':
			lx.next()
		case r == '\\' && lx.runeAt(lx.pos+1) == '\n':
			// Line continuation.
			lx.pos += 2
		case r == '#':
			for r := lx.peekRune(); r != '\n' && r != eof; r = lx.peekRune() {
				lx.next()
			}
		default:
			return
		}
	}
}

// Skips the body and closing quote of a quoted string whose opening quote has
// been consumed. It returns false if the closing quote is missing.
func (lx *Lexer) skipQuoted(quote rune) bool {
	for {
		switch lx.next() {
		case eof:
			return false
		case quote:
			return true
		case '\\':
			if lx.next() == eof {
				return false
			}
		}
	}
}

func (lx *Lexer) skipName() {
	for r := lx.peekRune(); isNameRune(r); r = lx.peekRune() {
		lx.next()
	}
}

func (lx *Lexer) close(opener rune) {
	if n := len(lx.open); n > 0 && lx.open[n-1] == opener {
		lx.open = lx.open[:n-1]
	}
}

const wordPunct = "_-./:+,@~*?"

func isWordRune(r rune) bool {
	return r != eof && (unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(wordPunct, r))
}

// Runes allowed in the path of a variable or field. Unlike words, these may
// not contain glob metacharacters.
func isNameRune(r rune) bool {
	return r != '*' && r != '?' && isWordRune(r)
}

func startsInteger(word string) bool {
	if word[0] == '-' {
		word = word[1:]
	}
	return word != "" && '0' <= word[0] && word[0] <= '9'
}
