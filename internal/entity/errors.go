package entity

import "errors"

var (
	ErrIncorrectRequestBody = errors.New("incorrect request body")
	ErrInvalidInput         = errors.New("invalid input")
	ErrAlreadyExists        = errors.New("already exists")
	ErrNotFound             = errors.New("not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInUse                = errors.New("still referenced by dependent records")
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

var (
	ErrFileTooLarge = errors.New("file too large")
	ErrSaveFailed   = errors.New("save failed")
	ErrNoFile       = errors.New("no file")
)
