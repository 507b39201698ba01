package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so handlers can pick an HTTP status without
// string-matching on messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindMalformed
)

// Error carries a kind alongside the wrapped cause. Fields is only set for
// validation failures and maps field name -> violated constraint.
type Error struct {
	Kind   Kind
	Msg    string
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func NotFoundWrap(msg string, err error) error {
	return &Error{Kind: KindNotFound, Msg: msg, Err: err}
}

// Validation reports every violated field at once.
func Validation(msg string, fields map[string]string) error {
	return &Error{Kind: KindValidation, Msg: msg, Fields: fields}
}

func Conflict(msg string, err error) error {
	return &Error{Kind: KindConflict, Msg: msg, Err: err}
}

func Malformed(msg string) error {
	return &Error{Kind: KindMalformed, Msg: msg}
}

// KindOf extracts the kind from anywhere in the chain; plain errors are
// KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// MessageOf returns the typed error's own message without the wrapped
// cause, so driver detail stays out of client responses.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return err.Error()
}

// FieldsOf returns the validation field map, or nil.
func FieldsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

func IsNotFound(err error) bool  { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool  { return KindOf(err) == KindConflict }
func IsMalformed(err error) bool { return KindOf(err) == KindMalformed }
