package user

import "context"

type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Get(ctx context.Context, id string) (UserResponse, error)
	List(ctx context.Context, filter ListUsersFilter) ([]UserResponse, int64, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	SetStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}
