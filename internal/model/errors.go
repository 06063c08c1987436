package model

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrCorruptStore    = errors.New("store document is corrupt")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenInvalid    = errors.New("token invalid")
	ErrPasswordTooLong = errors.New("password too long")
)
