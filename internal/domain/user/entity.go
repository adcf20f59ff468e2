package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"   // Full administrative access
	RoleManager Role = "manager" // Can approve leave and review attendance
	RoleStaff   Role = "staff"   // Regular employee
)

// ValidRoles lists every role the API accepts on user creation.
var ValidRoles = []Role{RoleAdmin, RoleManager, RoleStaff}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type User struct {
	ID              string
	FullName        string
	Email           string
	PasswordHash    *string
	Role            Role
	PositionID      *string
	Status          Status
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	PositionName *string
}

// IsAdmin checks if user has full administrative access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManagement checks if user is manager or admin
func (u *User) IsManagement() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// CanApprove checks if user can act on other staff's leave requests
func (u *User) CanApprove() bool {
	return u.IsManagement()
}

// IsActive checks if the account may authenticate
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}
