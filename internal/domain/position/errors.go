package position

import "errors"

var (
	ErrPositionNotFound = errors.New("Position not found")
	ErrPositionNameUsed = errors.New("Position name already used")
	ErrPositionInUse    = errors.New("Position still assigned to users")
)
