package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	setupTestDB(t)

	user, err := CreateUser("alice@example.com", "alice", "hash")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)

	found, err := GetUserByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	byID, err := GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	setupTestDB(t)

	_, err := CreateUser("alice@example.com", "alice", "hash")
	require.NoError(t, err)

	_, err = CreateUser("alice@example.com", "also-alice", "hash2")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestGetUserMissing(t *testing.T) {
	setupTestDB(t)

	_, err := GetUserByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = GetUserByID("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}
