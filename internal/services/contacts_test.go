package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolodex-hq/rolodex/pkg/models"
)

func TestContactServiceCreate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserService(db)
	contacts := NewContactService(db)

	owner := registerTestUser(t, users, "alice", "alice@example.com")

	created, err := contacts.Create(ctx, owner.ID, &models.Contact{
		FirstName: "Bob",
		LastName:  "Smith",
		Email:     "bob@example.com",
		Phone:     "555-0100",
		Birthday:  testBirthday(1990, time.March, 14),
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, created.UserID)
	assert.NotZero(t, created.ID)

	t.Run("duplicate email for same owner", func(t *testing.T) {
		_, err := contacts.Create(ctx, owner.ID, &models.Contact{
			FirstName: "Robert",
			LastName:  "Smith",
			Email:     "bob@example.com",
			Phone:     "555-0101",
			Birthday:  testBirthday(1990, time.March, 14),
		})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("same email under another owner", func(t *testing.T) {
		other := registerTestUser(t, users, "carol", "carol@example.com")
		_, err := contacts.Create(ctx, other.ID, &models.Contact{
			FirstName: "Bob",
			LastName:  "Smith",
			Email:     "bob@example.com",
			Phone:     "555-0100",
			Birthday:  testBirthday(1990, time.March, 14),
		})
		assert.NoError(t, err)
	})
}

func TestContactServiceNotFound(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserService(db)
	contacts := NewContactService(db)

	owner := registerTestUser(t, users, "alice", "alice@example.com")

	_, err := contacts.GetByID(ctx, owner.ID, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = contacts.GetByEmail(ctx, owner.ID, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = contacts.Update(ctx, owner.ID, 42, &models.Contact{
		FirstName: "Bob",
		LastName:  "Smith",
		Email:     "bob@example.com",
		Phone:     "555-0100",
		Birthday:  testBirthday(1990, time.March, 14),
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = contacts.Delete(ctx, owner.ID, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContactServiceUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserService(db)
	contacts := NewContactService(db)

	owner := registerTestUser(t, users, "alice", "alice@example.com")
	created, err := contacts.Create(ctx, owner.ID, &models.Contact{
		FirstName: "Bob",
		LastName:  "Smith",
		Email:     "bob@example.com",
		Phone:     "555-0100",
		Birthday:  testBirthday(1990, time.March, 14),
	})
	require.NoError(t, err)

	updated, err := contacts.Update(ctx, owner.ID, created.ID, &models.Contact{
		FirstName: "Robert",
		LastName:  "Smith",
		Email:     "robert@example.com",
		Phone:     "555-0102",
		Birthday:  testBirthday(1990, time.March, 14),
	})
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.FirstName)
	assert.Equal(t, "robert@example.com", updated.Email)

	deleted, err := contacts.Delete(ctx, owner.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = contacts.GetByID(ctx, owner.ID, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContactServiceOwnershipScoping(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserService(db)
	contacts := NewContactService(db)

	alice := registerTestUser(t, users, "alice", "alice@example.com")
	bob := registerTestUser(t, users, "bob", "bob@example.com")

	created, err := contacts.Create(ctx, alice.ID, &models.Contact{
		FirstName: "Carol",
		LastName:  "Jones",
		Email:     "carol@example.com",
		Phone:     "555-0100",
		Birthday:  testBirthday(1985, time.July, 4),
	})
	require.NoError(t, err)

	_, err = contacts.GetByID(ctx, bob.ID, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = contacts.Delete(ctx, bob.ID, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := contacts.List(ctx, bob.ID, 0, 25)
	require.NoError(t, err)
	assert.Empty(t, list)
}
