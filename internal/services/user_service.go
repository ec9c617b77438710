package services

import (
	"errors"
	"fmt"

	"foodcourt/internal/models"
	"foodcourt/internal/repositories"
)

// UserUpdate carries the fields an admin may change on an account. Empty
// fields are left untouched.
type UserUpdate struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"omitempty,email"`
	Role      string `json:"role" validate:"omitempty,oneof=user admin"`
}

// UserService handles the admin-facing user management operations.
// Registration and credentials live in AuthService.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ListUsers returns every registered account.
func (s *UserService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// UpdateUser applies the non-empty fields of the update to an account.
// Promoting an account to admin issues it an admin ID, mirroring admin
// registration.
func (s *UserService) UpdateUser(id string, upd UserUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return nil, err
	}

	if upd.Email != "" && upd.Email != user.Email {
		if existing, err := s.userRepo.GetByEmail(upd.Email); err == nil && existing != nil {
			return nil, fmt.Errorf("%w: email '%s' already registered", ErrInvalidInput, upd.Email)
		}
		user.Email = upd.Email
	}
	if upd.FirstName != "" {
		user.FirstName = upd.FirstName
	}
	if upd.LastName != "" {
		user.LastName = upd.LastName
	}
	if upd.Role != "" {
		if upd.Role != models.RoleUser && upd.Role != models.RoleAdmin {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, upd.Role)
		}
		user.Role = upd.Role
		if user.Role == models.RoleAdmin && user.AdminID == "" {
			user.AdminID = generateAdminID()
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return user, nil
}

// DeleteUser removes an account.
func (s *UserService) DeleteUser(id string) error {
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}
