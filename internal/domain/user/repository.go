package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]User, int64, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
	Delete(ctx context.Context, id string) error
}
