package utils

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrInvalidEnumValue = errors.New("invalid enum value")
	ErrInvalidPage      = errors.New("invalid page parameter")
	ErrInvalidPageSize  = errors.New("invalid page size parameter")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("forbidden")

	ErrAccountNotFound = errors.New("account not found")
	ErrMemberNotFound  = errors.New("member not found")

	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")

	ErrSelfDeletion = errors.New("cannot delete own account")

	ErrUnsupportedFormat = errors.New("unsupported export format")

	ErrDatabaseError = errors.New("database error")
)
