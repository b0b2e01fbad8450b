package infrastructure

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrSignedPreKeyMissing = errors.New("no signed pre-key available")
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrSignatureInvalid    = errors.New("signature verification failed")
	ErrRequestExpired      = errors.New("request expired")
	ErrForbidden           = errors.New("forbidden")
	ErrInternalServer      = errors.New("internal server error")
)
