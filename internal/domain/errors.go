package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrSwipeNotFound      = errors.New("swipe not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrCannotSwipeSelf    = errors.New("cannot swipe yourself")
	ErrInvalidInput       = errors.New("invalid input")
)
