package errors

import "errors"

var (
	ErrInvalidVoter      = errors.New("voter identity must not be empty")
	ErrUnauthorized      = errors.New("only the admin can register voters")
	ErrAlreadyRegistered = errors.New("voter is already registered")
	ErrConflict          = errors.New("registry state conflict")
)
