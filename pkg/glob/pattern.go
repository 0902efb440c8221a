// Package glob implements glob patterns matched against strings.
//
// A pattern consists of literal text, '?' which matches any single rune, and
// '*' which matches any run of runes. A backslash makes the following rune
// literal. Unlike filesystem globbing, '/' is an ordinary rune.
package glob

import "unicode/utf8"

// Pattern is a parsed glob pattern.
type Pattern struct {
	Source   string
	Segments []Segment
}

// Segment is the building block of Pattern.
type Segment interface {
	isSegment()
}

// Literal is a run of literal text.
type Literal struct {
	Data string
}

// Question matches exactly one rune.
type Question struct{}

// Star matches any number of runes, including none.
type Star struct{}

func (Literal) isSegment()  {}
func (Question) isSegment() {}
func (Star) isSegment()     {}

// Match reports whether the whole of name matches the pattern.
func (p Pattern) Match(name string) bool {
	return match(p.Segments, name)
}

// Match parses pattern and matches name against it.
func Match(pattern, name string) bool {
	return Parse(pattern).Match(name)
}

func match(segs []Segment, name string) bool {
segs:
	for len(segs) > 0 {
		// Find a chunk. A chunk is an optional Star followed by a run of
		// fixed-length segments (Literal and Question).
		var i int
		for i = 1; i < len(segs); i++ {
			if _, ok := segs[i].(Star); ok {
				break
			}
		}

		chunk := segs[:i]
		_, startsWithStar := chunk[0].(Star)
		if startsWithStar {
			chunk = chunk[1:]
		}
		segs = segs[i:]

		// Match at the current position. If this is the last chunk, name must
		// be exhausted by the matching.
		ok, rest := matchFixedLength(chunk, name)
		if ok && (rest == "" || len(segs) > 0) {
			name = rest
			continue
		}

		if startsWithStar {
			for i, r := range name {
				j := i + utf8.RuneLen(r)
				ok, rest := matchFixedLength(chunk, name[j:])
				if ok && (rest == "" || len(segs) > 0) {
					name = rest
					continue segs
				}
			}
		}
		return false
	}
	return name == ""
}

// matchFixedLength returns whether a run of fixed-length segments (Literal and
// Question) matches a prefix of name. It returns whether the match is
// successful and if it is, the remaining part of name.
func matchFixedLength(segs []Segment, name string) (bool, string) {
	for _, seg := range segs {
		switch seg := seg.(type) {
		case Literal:
			n := len(seg.Data)
			if len(name) < n || name[:n] != seg.Data {
				return false, ""
			}
			name = name[n:]
		case Question:
			if name == "" {
				return false, ""
			}
			_, n := utf8.DecodeRuneInString(name)
			name = name[n:]
		default:
			panic("matchFixedLength given non-literal non-question segment")
		}
	}
	return true, name
}
