package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine failures so controllers can map them to HTTP
// status codes without string matching.
type ErrorKind string

const (
	ErrKindValidation    ErrorKind = "validation"
	ErrKindAuthorization ErrorKind = "authorization"
	ErrKindPrecondition  ErrorKind = "precondition"
	ErrKindConflict      ErrorKind = "conflict"
	ErrKindNotFound      ErrorKind = "not_found"
)

// ReviewError is a rejected engine operation. Rule names the specific check
// that fired so callers can present a precise message.
type ReviewError struct {
	Kind    ErrorKind
	Rule    string
	Message string
}

func (e *ReviewError) Error() string {
	return fmt.Sprintf("%s (%s/%s)", e.Message, e.Kind, e.Rule)
}

func validationError(rule, format string, args ...interface{}) *ReviewError {
	return &ReviewError{Kind: ErrKindValidation, Rule: rule, Message: fmt.Sprintf(format, args...)}
}

func authorizationError(rule, format string, args ...interface{}) *ReviewError {
	return &ReviewError{Kind: ErrKindAuthorization, Rule: rule, Message: fmt.Sprintf(format, args...)}
}

func preconditionError(rule, format string, args ...interface{}) *ReviewError {
	return &ReviewError{Kind: ErrKindPrecondition, Rule: rule, Message: fmt.Sprintf(format, args...)}
}

func notFoundError(rule, format string, args ...interface{}) *ReviewError {
	return &ReviewError{Kind: ErrKindNotFound, Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the classification of err, or "" for plain errors.
func KindOf(err error) ErrorKind {
	var reviewErr *ReviewError
	if errors.As(err, &reviewErr) {
		return reviewErr.Kind
	}
	return ""
}

// RuleOf returns the name of the rule that rejected the operation.
func RuleOf(err error) string {
	var reviewErr *ReviewError
	if errors.As(err, &reviewErr) {
		return reviewErr.Rule
	}
	return ""
}
