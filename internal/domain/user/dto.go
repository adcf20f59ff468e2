package user

import "github.com/kantorkita/hr-backend-go/internal/pkg/validator"

type CreateUserRequest struct {
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Role       string  `json:"role"`
	PositionID *string `json:"position_id,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if len(r.FullName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if !validator.IsInSlice(r.Role, []string{string(RoleAdmin), string(RoleManager), string(RoleStaff)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, manager, staff",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateUserRequest struct {
	ID         string  `json:"-"`
	FullName   *string `json:"full_name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Role       *string `json:"role,omitempty"`
	PositionID *string `json:"position_id,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if r.Role != nil && !validator.IsInSlice(*r.Role, []string{string(RoleAdmin), string(RoleManager), string(RoleStaff)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, manager, staff",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListUsersFilter struct {
	Search *string `json:"search,omitempty"` // matches full name or email
	Role   *string `json:"role,omitempty"`
	Status *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type UserResponse struct {
	ID           string  `json:"id"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	PositionID   *string `json:"position_id,omitempty"`
	PositionName *string `json:"position_name,omitempty"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		Role:         string(u.Role),
		PositionID:   u.PositionID,
		PositionName: u.PositionName,
		Status:       string(u.Status),
		CreatedAt:    u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
