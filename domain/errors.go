package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrUnauthenticated will throw if the request carries no principal
	ErrUnauthenticated = errors.New("you are not authenticated")
	// ErrInsufficientPermissions will throw if the principal may not perform the action
	ErrInsufficientPermissions = errors.New("you do not have the permissions required to perform this action")
	// ErrInvalidParentComment will throw if a parent comment belongs to another post
	ErrInvalidParentComment = errors.New("the parent comment belongs to a different post")
	// ErrCacheMiss will throw if the key is not in cache
	ErrCacheMiss = errors.New("cache miss")
)

// Stable error kinds surfaced to API callers.
const (
	KindNotFound                = "NOT_FOUND"
	KindInsufficientPermissions = "INSUFFICIENT_PERMISSIONS"
	KindInvalidParentComment    = "INVALID_PARENT_COMMENT"
	KindValidation              = "VALIDATION_ERROR"
	KindUnauthenticated         = "UNAUTHENTICATED"
	KindConflict                = "CONFLICT"
	KindInternal                = "INTERNAL"
)

// ErrorKind maps err onto one of the stable kinds.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInsufficientPermissions):
		return KindInsufficientPermissions
	case errors.Is(err, ErrInvalidParentComment):
		return KindInvalidParentComment
	case errors.Is(err, ErrBadParamInput):
		return KindValidation
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindInternal
	}
}

// NewNotFoundError wraps ErrNotFound with the resource that was looked up.
func NewNotFoundError(resource, field string, value any) error {
	return fmt.Errorf("%w: %s not found with %s: '%v'", ErrNotFound, resource, field, value)
}

// NewValidationError wraps ErrBadParamInput with a reason.
func NewValidationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrBadParamInput, reason)
}
