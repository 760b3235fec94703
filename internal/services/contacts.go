package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/rolodex-hq/rolodex/internal/repository"
	"github.com/rolodex-hq/rolodex/pkg/models"
)

// UpcomingBirthdayWindowDays is the size of the upcoming-birthdays window.
const UpcomingBirthdayWindowDays = 7

// ContactService handles the contact business logic on top of the
// repository, translating database errors into service sentinels.
type ContactService struct {
	repo *repository.ContactRepository
}

// NewContactService returns a contact service backed by db.
func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{repo: repository.NewContactRepository(db)}
}

// isDuplicateKeyError detects a uniqueness violation from either the GORM
// error translator or the raw driver message (postgres and sqlite).
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// Create inserts a contact for the user. Returns ErrConflict if the user
// already has a contact with the same email address.
func (s *ContactService) Create(ctx context.Context, userID uint, contact *models.Contact) (*models.Contact, error) {
	contact.UserID = userID
	if err := s.repo.Create(ctx, contact); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return contact, nil
}

// List returns a page of the user's contacts.
func (s *ContactService) List(ctx context.Context, userID uint, skip, limit int) ([]models.Contact, error) {
	return s.repo.List(ctx, userID, skip, limit)
}

// GetByID returns one of the user's contacts by ID.
func (s *ContactService) GetByID(ctx context.Context, userID, contactID uint) (*models.Contact, error) {
	return s.mapNotFound(s.repo.GetByID(ctx, userID, contactID))
}

// GetByFirstName returns one of the user's contacts by first name.
func (s *ContactService) GetByFirstName(ctx context.Context, userID uint, firstName string) (*models.Contact, error) {
	return s.mapNotFound(s.repo.GetByFirstName(ctx, userID, firstName))
}

// GetByLastName returns one of the user's contacts by last name.
func (s *ContactService) GetByLastName(ctx context.Context, userID uint, lastName string) (*models.Contact, error) {
	return s.mapNotFound(s.repo.GetByLastName(ctx, userID, lastName))
}

// GetByEmail returns one of the user's contacts by email address.
func (s *ContactService) GetByEmail(ctx context.Context, userID uint, email string) (*models.Contact, error) {
	return s.mapNotFound(s.repo.GetByEmail(ctx, userID, email))
}

// UpcomingBirthdays returns the user's contacts with a birthday in the next
// seven days.
func (s *ContactService) UpcomingBirthdays(ctx context.Context, userID uint) ([]models.Contact, error) {
	return s.repo.ListUpcomingBirthdays(ctx, userID, time.Now(), UpcomingBirthdayWindowDays)
}

// Update replaces the mutable fields of one of the user's contacts.
func (s *ContactService) Update(ctx context.Context, userID, contactID uint, contact *models.Contact) (*models.Contact, error) {
	updated, err := s.repo.Update(ctx, userID, contactID, contact)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if isDuplicateKeyError(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes one of the user's contacts and returns the deleted record.
func (s *ContactService) Delete(ctx context.Context, userID, contactID uint) (*models.Contact, error) {
	return s.mapNotFound(s.repo.Delete(ctx, userID, contactID))
}

func (s *ContactService) mapNotFound(contact *models.Contact, err error) (*models.Contact, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return contact, nil
}
