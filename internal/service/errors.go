package service

import (
	"errors"
	"fmt"

	"github.com/noah-isme/lms-go-api/internal/authz"
)

// ErrorKind classifies operation failures so the handler layer can map each
// kind to a fixed HTTP status deterministically.
type ErrorKind int

const (
	// KindUnauthenticated means caller credentials were required but absent.
	KindUnauthenticated ErrorKind = iota
	// KindForbidden means the caller is authenticated but lacks permission.
	KindForbidden
	// KindNotFound means the resource is absent, or exists but the caller has
	// no right to learn that it exists.
	KindNotFound
	// KindInvalidState means a lifecycle rule rejected the transition.
	KindInvalidState
	// KindConflict means a uniqueness invariant would be violated.
	KindConflict
)

// Error is the failure type returned by every service operation.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewUnauthenticated builds an authentication-required error.
func NewUnauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated, Message: "authentication required"}
}

// NewForbidden builds a permission error.
func NewForbidden(reason string) *Error {
	if reason == "" {
		reason = "not permitted"
	}
	return &Error{Kind: KindForbidden, Message: reason}
}

// NewNotFound builds a not-found error for the named resource.
func NewNotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// NewInvalidState builds a rejected-transition error naming the violated rule.
func NewInvalidState(rule string) *Error {
	return &Error{Kind: KindInvalidState, Message: rule}
}

// NewConflict builds a uniqueness-violation error.
func NewConflict(reason string) *Error {
	return &Error{Kind: KindConflict, Message: reason}
}

// KindOf extracts the error kind, reporting false for foreign errors.
func KindOf(err error) (ErrorKind, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind, true
	}
	return 0, false
}

// denialError translates a policy denial into the matching service error. The
// resource name is used for not-found denials so draft hiding produces the same
// message as a genuinely missing resource.
func denialError(decision authz.Decision, resource string) *Error {
	switch decision.Effect {
	case authz.DenyUnauthenticated:
		return NewUnauthenticated()
	case authz.DenyNotFound:
		return NewNotFound(resource)
	default:
		return NewForbidden(decision.Reason)
	}
}
