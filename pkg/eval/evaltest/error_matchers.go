package evaltest

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"src.crush.sh/pkg/eval"
	"src.crush.sh/pkg/parse"
)

type errorMatcher interface{ matchError(error) bool }

// AnyParseError is an error that can be passed to Case.Throws to match any
// parse error.
var AnyParseError anyParseError

type anyParseError struct{}

func (anyParseError) Error() string           { return "any parse error" }
func (anyParseError) matchError(e error) bool { return parse.GetError(e) != nil }

// AnyConstructionError is an error that can be passed to Case.Throws to match
// any error from setting up a job.
var AnyConstructionError anyConstructionError

type anyConstructionError struct{}

func (anyConstructionError) Error() string { return "any construction error" }
func (anyConstructionError) matchError(e error) bool {
	return eval.GetConstructionError(e) != nil
}

// ErrorWithType returns an error that can be passed to Case.Throws to match
// any error whose chain has an error with the same type as the argument.
func ErrorWithType(v error) error { return errWithType{v} }

// An errorMatcher for any error with the given type.
type errWithType struct{ v error }

func (e errWithType) Error() string { return fmt.Sprintf("error with type %T", e.v) }

func (e errWithType) matchError(e2 error) bool {
	for ; e2 != nil; e2 = errors.Unwrap(e2) {
		if reflect.TypeOf(e.v) == reflect.TypeOf(e2) {
			return true
		}
	}
	return false
}

// ErrorWithMessage returns an error that can be passed to Case.Throws to match
// any error whose message contains the given text.
func ErrorWithMessage(msg string) error { return errWithMessage{msg} }

// An errorMatcher for any error with the given message.
type errWithMessage struct{ msg string }

func (e errWithMessage) Error() string { return "error with message " + e.msg }

func (e errWithMessage) matchError(e2 error) bool {
	return e2 != nil && strings.Contains(e2.Error(), e.msg)
}

func matchErr(want, got error) bool {
	if want == nil {
		return got == nil
	}
	if matcher, ok := want.(errorMatcher); ok {
		return matcher.matchError(got)
	}
	return errors.Is(got, want)
}
