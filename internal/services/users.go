package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/rolodex-hq/rolodex/internal/repository"
	"github.com/rolodex-hq/rolodex/pkg/models"
)

// UserService handles user creation, retrieval, email confirmation, and
// password management.
type UserService struct {
	repo *repository.UserRepository
	hash Hash
}

// NewUserService returns a user service backed by db.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{repo: repository.NewUserRepository(db)}
}

// GravatarURL returns the Gravatar image URL for an email address.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s", hex.EncodeToString(sum[:]))
}

// Register creates a new user with a hashed password and a Gravatar avatar.
// Returns ErrConflict if the email or username is already taken.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("username already taken: %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := s.hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:       username,
		Email:          email,
		HashedPassword: hashed,
		Avatar:         GravatarURL(email),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if isDuplicateKeyError(err) {
			return nil, fmt.Errorf("user already exists: %w", ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

// Authenticate checks the username and password and returns the user.
// Returns ErrUnauthorized on bad credentials and ErrEmailNotConfirmed when
// the password matches but the email has not been verified.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !s.hash.VerifyPassword(password, user.HashedPassword) {
		return nil, ErrUnauthorized
	}
	if !user.Confirmed {
		return nil, ErrEmailNotConfirmed
	}
	return user, nil
}

// GetByID retrieves a user by ID. Returns ErrNotFound if missing.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return mapNotFound(s.repo.GetByID(ctx, id))
}

// GetByUsername retrieves a user by username. Returns ErrNotFound if missing.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return mapNotFound(s.repo.GetByUsername(ctx, username))
}

// GetByEmail retrieves a user by email address. Returns ErrNotFound if
// missing.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return mapNotFound(s.repo.GetByEmail(ctx, email))
}

// ConfirmEmail marks the email address as verified.
func (s *UserService) ConfirmEmail(ctx context.Context, email string) error {
	if err := s.repo.ConfirmEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// UpdatePassword hashes and stores a new password for the user with the
// given email address.
func (s *UserService) UpdatePassword(ctx context.Context, email, newPassword string) error {
	hashed, err := s.hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, email, hashed); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func mapNotFound(user *models.User, err error) (*models.User, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
