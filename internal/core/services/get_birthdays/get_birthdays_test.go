package getbirthdays

import (
	"birthdaybot/internal/core/domain/birthday"
	"birthdaybot/internal/core/domain/dates"
	"birthdaybot/internal/core/domain/logging"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

const OWNER = birthday.ChatID(111)

func addRecord(t *testing.T, repo *birthday.TestRepository, owner birthday.ChatID, name string, date string) {
	t.Helper()
	d, err := dates.Parse(date)
	require.Nil(t, err)
	_, err = repo.Create(context.Background(), birthday.CreateInput{Owner: owner, Name: name, Date: d})
	require.Nil(t, err)
}

func TestListAll(t *testing.T) {
	// Setup ---
	repo := birthday.NewTestRepository()
	addRecord(t, repo, OWNER, "Alice", "14-03-1990")
	addRecord(t, repo, OWNER, "Bob", "01-01-2000")
	addRecord(t, repo, birthday.ChatID(222), "Carol", "20-11-1985")
	service := New(logging.NewFakeLogger(), repo)

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Owner: OWNER})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.True(result.ListedAll)
	assert.Len(result.Entries, 2)
	for _, entry := range result.Entries {
		assert.True(entry.Record.IsPresent)
		assert.Equal(OWNER, entry.Record.Value.Owner)
	}
}

func TestListAllEmpty(t *testing.T) {
	// Setup ---
	repo := birthday.NewTestRepository()
	service := New(logging.NewFakeLogger(), repo)

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Owner: OWNER})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.True(result.ListedAll)
	assert.Len(result.Entries, 0)
}

func TestLookupByNames(t *testing.T) {
	// Setup ---
	repo := birthday.NewTestRepository()
	addRecord(t, repo, OWNER, "Alice", "14-03-1990")
	service := New(logging.NewFakeLogger(), repo)

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Owner: OWNER, Names: []string{"Alice", "Bob"}})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.False(result.ListedAll)
	assert.Len(result.Entries, 2)

	assert.Equal("Alice", result.Entries[0].Name)
	assert.True(result.Entries[0].Record.IsPresent)
	assert.Equal("14-03-1990", result.Entries[0].Record.Value.Date.String())

	assert.Equal("Bob", result.Entries[1].Name)
	assert.False(result.Entries[1].Record.IsPresent)
}

func TestLookupScopedByOwner(t *testing.T) {
	// Setup ---
	repo := birthday.NewTestRepository()
	addRecord(t, repo, birthday.ChatID(1), "Carol", "14-03-1990")
	addRecord(t, repo, birthday.ChatID(2), "Carol", "01-01-2000")
	service := New(logging.NewFakeLogger(), repo)

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Owner: birthday.ChatID(2), Names: []string{"Carol"}})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.True(result.Entries[0].Record.IsPresent)
	assert.Equal("01-01-2000", result.Entries[0].Record.Value.Date.String())
}
