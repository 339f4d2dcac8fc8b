// Package services implements the business rules for users, notes, and auth.
package services

// Kind classifies a business-rule failure
type Kind int

const (
	// KindValidation means the request was missing or malformed input
	KindValidation Kind = iota + 1
	// KindNotFound means an id did not resolve or a collection was empty
	KindNotFound
	// KindConflict means a uniqueness rule was violated
	KindConflict
	// KindBlocked means a delete was prevented by a dependency
	KindBlocked
	// KindUnauthorized means credentials were missing or wrong
	KindUnauthorized
	// KindForbidden means a token was present but not acceptable
	KindForbidden
)

// Error is a business-rule failure with a human-readable message suitable for
// the response body
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func validationError(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func notFoundError(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func conflictError(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

func blockedError(message string) error {
	return &Error{Kind: KindBlocked, Message: message}
}

func unauthorizedError(message string) error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func forbiddenError(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}
