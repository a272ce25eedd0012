package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionAddExistsDelete(t *testing.T) {
	db := newTestDatabase(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	exists, err := db.SubscriptionRepo().Exists(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, db.SubscriptionRepo().Add(alice.ID, bob.ID))

	exists, err = db.SubscriptionRepo().Exists(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// Direction matters: bob does not follow alice
	exists, err = db.SubscriptionRepo().Exists(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	deleted, err := db.SubscriptionRepo().Delete(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = db.SubscriptionRepo().Delete(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSubscriptionDuplicateRejected(t *testing.T) {
	db := newTestDatabase(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, db.SubscriptionRepo().Add(alice.ID, bob.ID))
	assert.Error(t, db.SubscriptionRepo().Add(alice.ID, bob.ID))
}
