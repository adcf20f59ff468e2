package user

import "errors"

var (
	ErrUserNotFound          = errors.New("User not found")
	ErrEmailExists           = errors.New("Email already registered")
	ErrInvalidRole           = errors.New("Invalid role")
	ErrAdminAccessRequired   = errors.New("Admin access required")
	ErrManagerAccessRequired = errors.New("Manager access required")
)
