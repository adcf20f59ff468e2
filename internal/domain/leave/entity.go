package leave

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCancelled Status = "cancelled"
	StatusReverse   Status = "reverse"
)

// Action is an operation performed on a leave request after submission.
type Action string

const (
	ActionConfirm Action = "confirm"
	ActionReject  Action = "reject"
	ActionCancel  Action = "cancel"
	ActionReverse Action = "reverse"
)

// transitions defines every legal status change. Action availability is
// always computed from the record's current status, never from cached state.
var transitions = map[Status]map[Action]Status{
	StatusPending: {
		ActionConfirm: StatusApproved,
		ActionReject:  StatusCancelled,
		ActionCancel:  StatusCancelled,
	},
	StatusApproved: {
		ActionReverse: StatusReverse,
		ActionCancel:  StatusCancelled,
	},
	StatusReverse: {
		ActionCancel: StatusCancelled,
	},
	StatusCancelled: {},
}

// managerActions lists which actions the approval side may take per status.
var managerActions = map[Status][]Action{
	StatusPending:  {ActionConfirm, ActionReject},
	StatusApproved: {ActionReverse, ActionCancel},
	StatusReverse:  {ActionCancel},
}

// ownerActions lists which actions the requesting staff may take per status.
var ownerActions = map[Status][]Action{
	StatusPending:  {ActionCancel},
	StatusApproved: {ActionReverse},
}

// NextStatus resolves the status an action leads to from the current one.
func NextStatus(current Status, action Action) (Status, error) {
	next, ok := transitions[current][action]
	if !ok {
		return "", ErrActionNotAvailable
	}
	return next, nil
}

// ManagerCan reports whether the approval side may take action on a record
// in the given status.
func ManagerCan(current Status, action Action) bool {
	for _, a := range managerActions[current] {
		if a == action {
			return true
		}
	}
	return false
}

// OwnerCan reports whether the requesting staff may take action on their own
// record in the given status.
func OwnerCan(current Status, action Action) bool {
	for _, a := range ownerActions[current] {
		if a == action {
			return true
		}
	}
	return false
}

// AvailableManagerActions returns the actions the approval side may take.
func AvailableManagerActions(current Status) []Action {
	return managerActions[current]
}

// AvailableOwnerActions returns the actions the owner may take.
func AvailableOwnerActions(current Status) []Action {
	return ownerActions[current]
}

// Editable reports whether the owner may still update the request fields.
func Editable(current Status) bool {
	return current == StatusPending
}

type LeaveRequest struct {
	ID     string
	UserID string

	StartDate time.Time
	EndDate   time.Time
	TotalDays int // inclusive span

	Reason string
	Status Status

	DecidedBy    *string
	DecidedAt    *time.Time
	ManagerNotes *string

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joins
	UserName     *string
	DeciderName  *string
	PositionName *string
}

// Allocation is the yearly leave budget of one user.
type Allocation struct {
	ID        string
	UserID    string
	Year      int
	TotalDays int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary aggregates a user's leave usage for a year. Used days count
// approved requests only, pending days are tracked separately.
type Summary struct {
	Year          int
	TotalDays     int
	UsedDays      int
	PendingDays   int
	RemainingDays int
}
