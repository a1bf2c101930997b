package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"projecthub/internal/constants"
	"projecthub/internal/models"
	"projecthub/internal/repository"
)

var (
	ErrNameTooShort = errors.New("name must be at least 2 characters")
	ErrInvalidRole  = errors.New("invalid role")
)

// UserService handles user management business logic. Confirmed writes
// patch the user store so the dashboard views stay current without a reload.
type UserService struct {
	userRepo repository.UserRepository
	stores   *DashboardService
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, stores *DashboardService) *UserService {
	return &UserService{
		userRepo: userRepo,
		stores:   stores,
	}
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	Name      string
	Email     string
	Password  string
	AvatarURL *string
	Role      models.UserRole
}

// UpdateUserInput represents a partial user update
type UpdateUserInput struct {
	Name           *string
	Email          *string
	AvatarURL      *string
	ClearAvatarURL bool
	Role           *models.UserRole
}

// ListUsers returns the full user collection ordered by name
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateUser creates a user on behalf of an administrator
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) < 2 {
		return nil, ErrNameTooShort
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if input.Role == "" {
		input.Role = models.RoleUser
	}
	if !models.ValidUserRole(input.Role) {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		AvatarURL:    input.AvatarURL,
		Role:         input.Role,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, ErrFailedToCreateUser
	}

	s.stores.Users.Add(*user)
	return user, nil
}

// UpdateUser applies a partial update to a user
func (s *UserService) UpdateUser(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len(name) < 2 {
			return nil, ErrNameTooShort
		}
		user.Name = name
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" {
			return nil, ErrEmailRequired
		}
		if email != user.Email {
			if _, err := s.userRepo.FindByEmail(email); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			user.Email = email
		}
	}
	if input.ClearAvatarURL {
		user.AvatarURL = nil
	} else if input.AvatarURL != nil {
		user.AvatarURL = input.AvatarURL
	}
	if input.Role != nil {
		if !models.ValidUserRole(*input.Role) {
			return nil, ErrInvalidRole
		}
		user.Role = *input.Role
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.stores.Users.Update(*user)
	return user, nil
}

// DeleteUser deletes a user. Tasks assigned to them keep a dangling
// assigned_to and render as unassigned.
func (s *UserService) DeleteUser(id uint64) error {
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.stores.Users.Remove(id)
	return nil
}
