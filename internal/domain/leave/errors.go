package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("Leave request not found")
	ErrActionNotAvailable   = errors.New("Action not available for current status")
	ErrNotRequestOwner      = errors.New("Leave request belongs to another user")
	ErrRequestNotEditable   = errors.New("Only pending requests can be updated")
	ErrInsufficientBalance  = errors.New("Insufficient leave balance")
	ErrOverlappingRequest   = errors.New("Leave request overlaps an existing one")
	ErrAllocationNotFound   = errors.New("Leave allocation not found")
	ErrAllocationExists     = errors.New("Leave allocation already exists for this year")
)
