package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "recicla/internal/errors"
	"recicla/internal/model"
	"recicla/internal/repository"
)

// UpdateProfileInput carries the optional fields of a profile update;
// nil fields pass through unchanged.
type UpdateProfileInput struct {
	Name      *string
	Email     *string
	Password  *string
	Phone     *string
	Address   *string
	Latitude  *float64
	Longitude *float64
}

// UserService handles profile reads and self-service updates.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*model.User, error)
	ListUsers(ctx context.Context, role *model.Role) ([]model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetUser returns a user's public profile.
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateUser applies the non-nil fields to the profile. A new password is
// rehashed before persisting; a new email must not collide with another user.
func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if other, err := s.userRepo.FindByEmail(ctx, *input.Email); err == nil && other != nil && other.ID != id {
			return nil, apperrors.ErrEmailTaken
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Address != nil {
		user.Address = input.Address
	}
	if input.Latitude != nil {
		user.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		user.Longitude = input.Longitude
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// ListUsers returns public profiles, optionally restricted to one role.
func (s *userService) ListUsers(ctx context.Context, role *model.Role) ([]model.User, error) {
	return s.userRepo.List(ctx, role)
}
