package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a request failure the way the pages react to it.
type Kind int

const (
	// KindValidation covers both client-side pre-flight failures and remote
	// 400 responses carrying field errors.
	KindValidation Kind = iota
	// KindAuthentication means the remote service rejected the credential.
	KindAuthentication
	// KindAuthorization means the session's role may not perform the action.
	KindAuthorization
	// KindNotFound means the referenced profile or achievement is missing.
	KindNotFound
	// KindTransient means the request never completed (DNS, refused
	// connection, canceled context).
	KindTransient
	// KindServer is any other remote failure.
	KindServer
)

// Error is the single error type the client surfaces. Field-level messages
// from the remote service are kept, but render as one concatenated string.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Fields     map[string][]string
	cause      error
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], " ")))
		}
		return strings.Join(parts, ", ")
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// NewValidationError builds a client-side validation failure that blocks
// submission before any network call.
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func kindOf(err error) (Kind, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return 0, false
}

func IsValidation(err error) bool     { k, ok := kindOf(err); return ok && k == KindValidation }
func IsAuthentication(err error) bool { k, ok := kindOf(err); return ok && k == KindAuthentication }
func IsAuthorization(err error) bool  { k, ok := kindOf(err); return ok && k == KindAuthorization }
func IsNotFound(err error) bool       { k, ok := kindOf(err); return ok && k == KindNotFound }
func IsTransient(err error) bool      { k, ok := kindOf(err); return ok && k == KindTransient }
