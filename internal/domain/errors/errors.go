package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = forbiddenError{}
	ErrSessionNotFound    = errors.New("session not found")
	ErrStorage            = errors.New("storage failure")
	ErrInternal           = errors.New("internal failure")
)

// AuthError describes why a login attempt was rejected. The message is the same
// for every reason so callers cannot tell unknown users from wrong passwords.
type AuthError struct {
	Reason string
}

var (
	ErrUnknownUser = &AuthError{Reason: "unknown user"}
	ErrBadPassword = &AuthError{Reason: "bad password"}
)

func (e *AuthError) Error() string {
	return ErrInvalidCredentials.Error()
}

func (e *AuthError) Unwrap() error {
	return ErrInvalidCredentials
}

// forbiddenError is returned for authenticated callers that are not allowed to
// perform an action. It still matches ErrUnauthorized.
type forbiddenError struct{}

func (forbiddenError) Error() string { return "forbidden" }

func (forbiddenError) Is(target error) bool {
	return target == ErrUnauthorized
}
