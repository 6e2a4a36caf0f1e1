// Package errtax defines the small taxonomy of errors the evaluator
// can raise, each carrying the offending source text and an optional
// 1-based column cursor for a human-readable diagnostic.
package errtax

import (
	"fmt"
	"strings"

	"gopkg.in/src-d/go-errors.v1"
)

// Kinds, one per row of the taxonomy. Each message is a format string
// consumed by New/Wrap.
var (
	UnbalancedParens  = errors.NewKind("unbalanced parentheses")
	FunctionNotFound  = errors.NewKind("function not found: %s")
	InvalidArguments  = errors.NewKind("no overload of %q accepts %d argument(s)")
	VariableNotFound  = errors.NewKind("variable not found: %s")
	InvalidParameter  = errors.NewKind("invalid parameter: %s")
	ParseFailure      = errors.NewKind("%s")
)

// Error wraps one of the Kinds above with the source text that
// produced it and, where known, the 1-based column at which the
// problem was detected.
type Error struct {
	cause      *errors.Error
	Source     string
	Cursor     int // 0 means "no cursor available"
	Suggestion string
}

func (e *Error) Error() string {
	msg := e.cause.Error()
	if e.Suggestion != "" {
		msg = msg + ", did you mean " + e.Suggestion + "?"
	}
	if e.Source == "" {
		return msg
	}
	if e.Cursor <= 0 {
		return fmt.Sprintf("%s\n\t%s", msg, e.Source)
	}
	return fmt.Sprintf("%s\n\t%s\n\t%s^", msg, e.Source, strings.Repeat(" ", e.Cursor-1))
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether err was produced from kind, unwrapping through
// *Error the way a bare *errors.Error would be checked directly.
func Is(kind *errors.Kind, err error) bool {
	if e, ok := err.(*Error); ok {
		return kind.Is(e.cause)
	}
	return kind.Is(err)
}

// New builds a new taxonomy error of the given kind.
func New(kind *errors.Kind, source string, cursor int, args ...interface{}) *Error {
	return &Error{cause: kind.New(args...), Source: source, Cursor: cursor}
}

// NewWithSuggestion is New plus a "did you mean" hint, used by
// VariableNotFound when a similarly named variable is resolved.
func NewWithSuggestion(kind *errors.Kind, source string, cursor int, suggestion string, args ...interface{}) *Error {
	return &Error{cause: kind.New(args...), Source: source, Cursor: cursor, Suggestion: suggestion}
}

// Wrap adapts any other error into a parse-failure taxonomy error,
// unless it is already one of ours, in which case it is returned
// unchanged: core errors pass through untouched, anything else gets
// wrapped.
func Wrap(err error, source string) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*Error); ok {
		return err
	}
	return &Error{cause: ParseFailure.Wrap(err, err.Error()), Source: source}
}
