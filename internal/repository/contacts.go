package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rolodex-hq/rolodex/pkg/models"
)

// ContactRepository persists and retrieves contacts. Every query is scoped to
// the owning user's ID.
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository returns a contact repository backed by db.
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) forUser(ctx context.Context, userID uint) *gorm.DB {
	return r.db.WithContext(ctx).Where("user_id = ?", userID)
}

// List returns a page of the user's contacts.
func (r *ContactRepository) List(ctx context.Context, userID uint, skip, limit int) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := r.forUser(ctx, userID).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// GetByID retrieves one of the user's contacts by ID.
func (r *ContactRepository) GetByID(ctx context.Context, userID, contactID uint) (*models.Contact, error) {
	var contact models.Contact
	if err := r.forUser(ctx, userID).
		Where("id = ?", contactID).
		First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// GetByFirstName retrieves one of the user's contacts by first name.
func (r *ContactRepository) GetByFirstName(ctx context.Context, userID uint, firstName string) (*models.Contact, error) {
	var contact models.Contact
	if err := r.forUser(ctx, userID).
		Where("first_name = ?", firstName).
		First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// GetByLastName retrieves one of the user's contacts by last name.
func (r *ContactRepository) GetByLastName(ctx context.Context, userID uint, lastName string) (*models.Contact, error) {
	var contact models.Contact
	if err := r.forUser(ctx, userID).
		Where("last_name = ?", lastName).
		First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// GetByEmail retrieves one of the user's contacts by email address.
func (r *ContactRepository) GetByEmail(ctx context.Context, userID uint, email string) (*models.Contact, error) {
	var contact models.Contact
	if err := r.forUser(ctx, userID).
		Where("email = ?", email).
		First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// ListUpcomingBirthdays returns the user's contacts whose birthday falls
// within the next `days` days, starting from `from`. The month/day comparison
// is done in Go so the window is correct across a year boundary and portable
// across database engines.
func (r *ContactRepository) ListUpcomingBirthdays(ctx context.Context, userID uint, from time.Time, days int) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := r.forUser(ctx, userID).
		Order("id").
		Find(&contacts).Error; err != nil {
		return nil, err
	}

	upcoming := make([]models.Contact, 0, len(contacts))
	for _, c := range contacts {
		if c.BirthdayInWindow(from, days) {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming, nil
}

// Create inserts a new contact for the user.
func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

// Update replaces the mutable fields of one of the user's contacts and
// returns the updated row. Returns gorm.ErrRecordNotFound if the contact does
// not exist or belongs to another user.
func (r *ContactRepository) Update(ctx context.Context, userID, contactID uint, updated *models.Contact) (*models.Contact, error) {
	contact, err := r.GetByID(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	contact.FirstName = updated.FirstName
	contact.LastName = updated.LastName
	contact.Email = updated.Email
	contact.Phone = updated.Phone
	contact.Birthday = updated.Birthday
	contact.Note = updated.Note

	if err := r.db.WithContext(ctx).Save(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

// Delete removes one of the user's contacts and returns the deleted row.
// Returns gorm.ErrRecordNotFound if the contact does not exist or belongs to
// another user.
func (r *ContactRepository) Delete(ctx context.Context, userID, contactID uint) (*models.Contact, error) {
	contact, err := r.GetByID(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}
