// Package errs declares error types used by the evaluator, the stream layer
// and builtin commands.
package errs

import (
	"fmt"
	"strconv"
	"strings"
)

// OutOfRange encodes an error where a value is out of its valid range.
type OutOfRange struct {
	What      string
	ValidLow  int
	ValidHigh int
	Actual    string
}

// Error implements the error interface.
func (e OutOfRange) Error() string {
	if e.ValidHigh < e.ValidLow {
		return fmt.Sprintf(
			"out of range: %v has no valid value, but is %v", e.What, e.Actual)
	}
	return fmt.Sprintf(
		"out of range: %s must be from %v to %v, but is %v",
		e.What, e.ValidLow, e.ValidHigh, e.Actual)
}

// BadValue encodes an error where the value does not meet a requirement. For
// out-of-range errors, use OutOfRange.
type BadValue struct {
	What   string
	Valid  string
	Actual string
}

// Error implements the error interface.
func (e BadValue) Error() string {
	return fmt.Sprintf(
		"bad value: %v must be %v, but is %v", e.What, e.Valid, e.Actual)
}

// ArityMismatch encodes an error where the expected number of values is out
// of the valid range. A negative ValidHigh means there is no upper bound.
type ArityMismatch struct {
	What      string
	ValidLow  int
	ValidHigh int
	Actual    int
}

// Error implements the error interface.
func (e ArityMismatch) Error() string {
	switch {
	case e.ValidHigh == e.ValidLow:
		return fmt.Sprintf("arity mismatch: %v must be %v, but is %v",
			e.What, nValues(e.ValidLow), nValues(e.Actual))
	case e.ValidHigh < 0:
		return fmt.Sprintf("arity mismatch: %v must be %v or more values, but is %v",
			e.What, e.ValidLow, nValues(e.Actual))
	default:
		return fmt.Sprintf("arity mismatch: %v must be %v to %v values, but is %v",
			e.What, e.ValidLow, e.ValidHigh, nValues(e.Actual))
	}
}

func nValues(n int) string {
	if n == 1 {
		return "1 value"
	}
	return strconv.Itoa(n) + " values"
}

// TypeMismatch encodes an error where a value or a row does not have the
// kind required by its context.
type TypeMismatch struct {
	What   string
	Valid  string
	Actual string
}

// Error implements the error interface.
func (e TypeMismatch) Error() string {
	return fmt.Sprintf(
		"type mismatch: %v must be %v, but is %v", e.What, e.Valid, e.Actual)
}

// NoSuchColumn is returned when a field does not name any column.
type NoSuchColumn struct {
	Name      string
	Available []string
}

// Error implements the error interface.
func (e NoSuchColumn) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("no such column: %s (there are no columns)", e.Name)
	}
	return fmt.Sprintf("no such column: %s (columns are %s)",
		e.Name, strings.Join(e.Available, ", "))
}

// NoSuchName is returned when a name cannot be resolved. Path is the full
// path being resolved, and Name is the segment that failed.
type NoSuchName struct {
	Name string
	Path string
}

// Error implements the error interface.
func (e NoSuchName) Error() string {
	if e.Path == "" || e.Path == e.Name {
		return "no such name: " + e.Name
	}
	return fmt.Sprintf("no such name: %s (in %s)", e.Name, e.Path)
}

// NotAScope is returned when a qualified path goes through a value that is
// not a scope.
type NotAScope struct {
	Name   string
	Path   string
	Actual string
}

// Error implements the error interface.
func (e NotAScope) Error() string {
	return fmt.Sprintf("not a scope: %s in %s is %s", e.Name, e.Path, e.Actual)
}

// ReadOnlyScope is returned when declaring or assigning in a frozen scope.
type ReadOnlyScope struct {
	Name string
}

// Error implements the error interface.
func (e ReadOnlyScope) Error() string {
	return "cannot bind " + e.Name + ": scope is read-only"
}

// AlreadyDeclared is returned when declaring a name that is already bound in
// the same scope.
type AlreadyDeclared struct {
	Name string
}

// Error implements the error interface.
func (e AlreadyDeclared) Error() string {
	return "already declared: " + e.Name
}

// UnknownCommand is returned when a command name does not resolve.
type UnknownCommand struct {
	Name string
}

// Error implements the error interface.
func (e UnknownCommand) Error() string {
	return "unknown command: " + e.Name
}

// NotCallable is returned when a command name resolves to a value that cannot
// be invoked.
type NotCallable struct {
	Name   string
	Actual string
}

// Error implements the error interface.
func (e NotCallable) Error() string {
	return fmt.Sprintf("not callable: %s is %s", e.Name, e.Actual)
}

// ReaderGone is returned by stream and channel sends when the reading end has
// gone away.
type ReaderGone struct{}

// Error implements the error interface.
func (ReaderGone) Error() string { return "reader gone" }

// AlreadySent is returned when a one-shot channel is sent to twice.
type AlreadySent struct{}

// Error implements the error interface.
func (AlreadySent) Error() string { return "value already sent" }
