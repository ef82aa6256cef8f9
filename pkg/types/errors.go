// Package types holds the error taxonomy and the compiled Expression
// wrapper shared by the rest of the engine: the lexer, parser, indexer,
// binop and function packages all import it, but it imports none of them
// (only pkg/value, for Expression).
package types

import "fmt"

// Kind classifies an Error by the point in the pipeline where it was
// detected, not by the Go type that raised it. See the error handling
// design for the full taxonomy.
type Kind string

const (
	KindParse                Kind = "parse"
	KindIndexing             Kind = "indexing"
	KindVectorizedArithmetic Kind = "vectorized_arithmetic"
	KindType                 Kind = "type"
	KindInvalidMutation      Kind = "invalid_mutation"
	KindInternalCast         Kind = "internal_cast"
)

// Error is the single structured error type returned by every compile and
// eval path in the engine. Position is -1 when the error has no associated
// source offset (e.g. a runtime vectorization failure).
type Error struct {
	Kind     Kind
	Message  string
	Position int
	Token    string
	Err      error
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Position: -1}
}

func (e *Error) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s: %s (near %q)", e.Kind, e.Message, e.Token)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithToken returns a copy of e with Token and Position set.
func (e *Error) WithToken(token string, position int) *Error {
	c := *e
	c.Token = token
	c.Position = position
	return &c
}

// WithCause returns a copy of e wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	c := *e
	c.Err = cause
	return &c
}

func Parsef(format string, a ...interface{}) *Error {
	return New(KindParse, fmt.Sprintf(format, a...))
}

func Indexingf(format string, a ...interface{}) *Error {
	return New(KindIndexing, fmt.Sprintf(format, a...))
}

func VectorizedArithmeticf(format string, a ...interface{}) *Error {
	return New(KindVectorizedArithmetic, fmt.Sprintf(format, a...))
}

func Typef(format string, a ...interface{}) *Error {
	return New(KindType, fmt.Sprintf(format, a...))
}

func InvalidMutationf(format string, a ...interface{}) *Error {
	return New(KindInvalidMutation, fmt.Sprintf(format, a...))
}

func InternalCastf(format string, a ...interface{}) *Error {
	return New(KindInternalCast, fmt.Sprintf(format, a...))
}
