package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gorm.io/gorm"
)

// User represents a registered account. Contacts are always scoped to their
// owning user; a user never sees another user's contacts.
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Username is the unique login name.
	Username string `gorm:"uniqueIndex;not null" json:"username"`

	// Email is the unique email address used for verification and password
	// reset mail.
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	// HashedPassword is the bcrypt hash of the password. Never serialized.
	HashedPassword string `gorm:"not null" json:"-"`

	// Avatar is the avatar URL, defaulted to the Gravatar URL for Email at
	// registration time.
	Avatar string `json:"avatar,omitempty"`

	// Confirmed reports whether the email address has been verified. Login is
	// refused until the address is confirmed.
	Confirmed bool `gorm:"not null;default:false" json:"confirmed"`

	// Contacts are the user's contacts.
	Contacts []Contact `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Validate checks the user fields before persisting.
func (u *User) Validate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&u.Email, validation.Required, is.EmailFormat),
		validation.Field(&u.HashedPassword, validation.Required),
	)
}

// BeforeCreate validates the user before it is inserted.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	return u.Validate()
}
