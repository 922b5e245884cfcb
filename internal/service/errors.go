package service

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound covers missing ads, conversations and messages. Handlers
	// translate it to a generic 404 that never confirms what was asked for.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller is authenticated but is not a
	// participant of the conversation (or not the sender of the message).
	ErrForbidden = errors.New("forbidden")

	// ErrIsOwner signals that the contact attempt came from the ad's own
	// owner. Not a failure: the caller is steered to the per-ad
	// conversation list instead of getting a conversation with themself.
	ErrIsOwner = errors.New("requester owns the ad")
)

// ValidationError carries per-field messages so the boundary can answer
// 400 with a structure a form can re-render from.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, field+": "+strings.Join(msgs, "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func newFieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {msg}}}
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
