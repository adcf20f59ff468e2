package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/kantorkita/hr-backend-go/internal/domain/position"
	"github.com/kantorkita/hr-backend-go/internal/domain/user"
	"github.com/kantorkita/hr-backend-go/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	db *database.DB
	user.UserRepository
	position.PositionRepository
}

func NewUserService(
	db *database.DB,
	userRepository user.UserRepository,
	positionRepository position.PositionRepository,
) user.UserService {
	return &UserServiceImpl{
		db:                 db,
		UserRepository:     userRepository,
		PositionRepository: positionRepository,
	}
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if _, err := s.UserRepository.GetByEmail(ctx, req.Email); err == nil {
		return user.UserResponse{}, user.ErrEmailExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return user.UserResponse{}, err
	}

	if req.PositionID != nil {
		if _, err := s.PositionRepository.GetByID(ctx, *req.PositionID); err != nil {
			return user.UserResponse{}, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	created, err := s.UserRepository.Create(ctx, user.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: &hashed,
		Role:         user.Role(req.Role),
		PositionID:   req.PositionID,
		Status:       user.StatusActive,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(created), nil
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.ListUsersFilter) ([]user.UserResponse, int64, error) {
	users, total, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}

	return responses, total, nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) error {
	if req.PositionID != nil {
		if _, err := s.PositionRepository.GetByID(ctx, *req.PositionID); err != nil {
			return err
		}
	}
	return s.UserRepository.Update(ctx, req)
}

// SetStatus implements user.UserService.
func (s *UserServiceImpl) SetStatus(ctx context.Context, id string, status user.Status) error {
	return s.UserRepository.UpdateStatus(ctx, id, status)
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	return s.UserRepository.Delete(ctx, id)
}
