package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gorm.io/gorm"
)

// Contact is an address-book entry owned by a single user. Contacts are
// removed outright on delete so a deleted contact's email address can be
// reused.
type Contact struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// UserID is the owning user. Every query against contacts filters on it.
	UserID uint `gorm:"index;not null;uniqueIndex:idx_contacts_user_email" json:"-"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	FirstName string `gorm:"not null" json:"first_name"`
	LastName  string `gorm:"not null" json:"last_name"`

	// Email is unique per owner, not globally.
	Email string `gorm:"not null;uniqueIndex:idx_contacts_user_email" json:"email"`

	Phone string `gorm:"not null" json:"phone"`

	// Birthday carries only a meaningful month and day for the upcoming
	// birthdays window; the year is kept as entered.
	Birthday time.Time `gorm:"not null" json:"birthday"`

	// Note is optional free text.
	Note *string `json:"note,omitempty"`
}

// Validate checks the contact fields before persisting.
func (c *Contact) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.UserID, validation.Required),
		validation.Field(&c.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&c.LastName, validation.Required, validation.Length(1, 50)),
		validation.Field(&c.Email, validation.Required, is.EmailFormat),
		validation.Field(&c.Phone, validation.Required, validation.Length(5, 20)),
		validation.Field(&c.Birthday, validation.Required),
	)
}

// BeforeCreate validates the contact before it is inserted.
func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	return c.Validate()
}

// BeforeUpdate validates the contact before an update is written.
func (c *Contact) BeforeUpdate(tx *gorm.DB) error {
	return c.Validate()
}

// BirthdayInWindow reports whether the contact's birthday (month/day) falls
// within [from, from+days], handling a window that crosses a year boundary.
func (c *Contact) BirthdayInWindow(from time.Time, days int) bool {
	next := time.Date(from.Year(), c.Birthday.Month(), c.Birthday.Day(),
		0, 0, 0, 0, from.Location())
	today := time.Date(from.Year(), from.Month(), from.Day(),
		0, 0, 0, 0, from.Location())
	if next.Before(today) {
		next = next.AddDate(1, 0, 0)
	}
	return !next.After(today.AddDate(0, 0, days))
}
