package removebirthday

import (
	"birthdaybot/internal/core/domain/birthday"
	"birthdaybot/internal/core/domain/dates"
	"birthdaybot/internal/core/domain/logging"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

const OWNER = birthday.ChatID(111)

func addRecord(t *testing.T, repo *birthday.TestRepository, owner birthday.ChatID, name string) {
	t.Helper()
	date, err := dates.Parse("14-03-1990")
	require.Nil(t, err)
	_, err = repo.Create(context.Background(), birthday.CreateInput{Owner: owner, Name: name, Date: date})
	require.Nil(t, err)
}

func TestRemoveBirthday(t *testing.T) {
	// Setup ---
	repo := birthday.NewTestRepository()
	addRecord(t, repo, OWNER, "Alice")
	service := New(logging.NewFakeLogger(), repo)

	// Exercise ---
	_, err := service.Run(context.Background(), Input{Owner: OWNER, Name: "Alice"})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Equal(0, repo.Count(OWNER))
}

func TestRemoveBirthdayNotFound(t *testing.T) {
	// Setup ---
	repo := birthday.NewTestRepository()
	addRecord(t, repo, OWNER, "Alice")
	service := New(logging.NewFakeLogger(), repo)

	// Exercise ---
	_, err := service.Run(context.Background(), Input{Owner: OWNER, Name: "Bob"})

	// Verify ---
	assert := require.New(t)
	assert.ErrorIs(err, birthday.ErrDoesNotExist)
	assert.Equal(1, repo.Count(OWNER))
}

func TestRemoveBirthdayScopedByOwner(t *testing.T) {
	// Setup ---
	repo := birthday.NewTestRepository()
	addRecord(t, repo, OWNER, "Alice")
	service := New(logging.NewFakeLogger(), repo)

	// Exercise ---
	_, err := service.Run(context.Background(), Input{Owner: birthday.ChatID(222), Name: "Alice"})

	// Verify ---
	assert := require.New(t)
	assert.ErrorIs(err, birthday.ErrDoesNotExist)
	assert.Equal(1, repo.Count(OWNER))
}
