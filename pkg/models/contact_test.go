package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestContactValidate(t *testing.T) {
	valid := Contact{
		UserID:    1,
		FirstName: "Bob",
		LastName:  "Smith",
		Email:     "bob@example.com",
		Phone:     "555-0100",
		Birthday:  date(1990, time.March, 14),
	}

	tests := []struct {
		name    string
		mutate  func(*Contact)
		wantErr bool
	}{
		{"valid", func(c *Contact) {}, false},
		{"missing owner", func(c *Contact) { c.UserID = 0 }, true},
		{"missing first name", func(c *Contact) { c.FirstName = "" }, true},
		{"missing last name", func(c *Contact) { c.LastName = "" }, true},
		{"bad email", func(c *Contact) { c.Email = "not-an-email" }, true},
		{"phone too short", func(c *Contact) { c.Phone = "123" }, true},
		{"missing birthday", func(c *Contact) { c.Birthday = time.Time{} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestContactBirthdayInWindow(t *testing.T) {
	contact := func(month time.Month, day int) *Contact {
		return &Contact{Birthday: date(1990, month, day)}
	}

	tests := []struct {
		name string
		c    *Contact
		from time.Time
		want bool
	}{
		{"today", contact(time.June, 10), date(2025, time.June, 10), true},
		{"last day of window", contact(time.June, 17), date(2025, time.June, 10), true},
		{"day after window", contact(time.June, 18), date(2025, time.June, 10), false},
		{"yesterday", contact(time.June, 9), date(2025, time.June, 10), false},
		{"across new year", contact(time.January, 2), date(2025, time.December, 29), true},
		{"new year edge", contact(time.January, 5), date(2025, time.December, 29), true},
		{"past new year window", contact(time.January, 6), date(2025, time.December, 29), false},
		{"dec 31 from dec 29", contact(time.December, 31), date(2025, time.December, 29), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.BirthdayInWindow(tt.from, 7))
		})
	}
}

func TestUserValidate(t *testing.T) {
	valid := User{
		Username:       "alice",
		Email:          "alice@example.com",
		HashedPassword: "$2a$10$hash",
	}

	tests := []struct {
		name    string
		mutate  func(*User)
		wantErr bool
	}{
		{"valid", func(u *User) {}, false},
		{"username too short", func(u *User) { u.Username = "al" }, true},
		{"bad email", func(u *User) { u.Email = "nope" }, true},
		{"missing password hash", func(u *User) { u.HashedPassword = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := valid
			tt.mutate(&u)
			err := u.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
