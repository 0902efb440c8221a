package parse

import (
	"strings"
	"unicode/utf8"
)

// Quote returns a representation of s that lexes back as a single token
// denoting s. If s can be written as a bare string it is returned as is;
// otherwise it is double-quoted.
func Quote(s string) string {
	if isBareString(s) {
		return s
	}
	return quoteDouble(s)
}

func isBareString(s string) bool {
	if s == "" || startsInteger(s) || strings.ContainsAny(s, "*?") {
		return false
	}
	if s[0] == 'r' && len(s) > 1 && s[1] == '"' {
		return false
	}
	for _, r := range s {
		if !isWordRune(r) {
			return false
		}
	}
	return true
}

var doubleEscape = map[rune]rune{
	'\n': 'n', '\r': 'r', '\t': 't', '"': '"', '\\': '\\',
}

func quoteDouble(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		if e, ok := doubleEscape[r]; ok {
			sb.WriteByte('\\')
			sb.WriteRune(e)
		} else {
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// Unescape returns the value denoted by a quoted string token. The enclosing
// quotes are stripped; \n, \r and \t map to the control characters, and a
// backslash followed by any other rune maps to that rune.
func Unescape(quoted string) string {
	body := quoted
	if len(body) >= 2 {
		_, w := utf8.DecodeRuneInString(body)
		body = body[w : len(body)-1]
	}
	var sb strings.Builder
	escaped := false
	for _, r := range body {
		if !escaped {
			if r == '\\' {
				escaped = true
			} else {
				sb.WriteRune(r)
			}
			continue
		}
		escaped = false
		switch r {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
