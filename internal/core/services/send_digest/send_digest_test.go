package senddigest

import (
	"birthdaybot/internal/core/domain/birthday"
	"birthdaybot/internal/core/domain/bot"
	"birthdaybot/internal/core/domain/dates"
	"birthdaybot/internal/core/domain/logging"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const OWNER = birthday.ChatID(111)

var Now = time.Date(2023, 3, 14, 6, 45, 0, 0, time.UTC)

func addRecord(t *testing.T, repo *birthday.TestRepository, name string, date string) {
	t.Helper()
	d, err := dates.Parse(date)
	require.Nil(t, err)
	_, err = repo.Create(context.Background(), birthday.CreateInput{Owner: OWNER, Name: name, Date: d})
	require.Nil(t, err)
}

func TestDigestSent(t *testing.T) {
	// Setup ---
	repo := birthday.NewTestRepository()
	addRecord(t, repo, "Alice", "14-03-1990")
	addRecord(t, repo, "Bob", "15-03-2000")
	sender := bot.NewTestMessageSender()
	service := New(logging.NewFakeLogger(), repo, sender)

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Owner: OWNER, At: Now})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.True(result.Sent)
	assert.Equal(1, result.RecordCount)

	sent := sender.LastSent()
	assert.Equal(OWNER, sent.ChatID)
	assert.Equal(
		"The following people are celebrating their birthday today:\n- Alice (33)",
		sent.Text,
	)
}

func TestDigestSkippedWhenNothingLeft(t *testing.T) {
	// Setup ---
	repo := birthday.NewTestRepository()
	addRecord(t, repo, "Bob", "15-03-2000")
	sender := bot.NewTestMessageSender()
	service := New(logging.NewFakeLogger(), repo, sender)

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Owner: OWNER, At: Now})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.False(result.Sent)
	assert.Len(sender.Sent, 0)
}

func TestDigestSendFailure(t *testing.T) {
	// Setup ---
	repo := birthday.NewTestRepository()
	addRecord(t, repo, "Alice", "14-03-1990")
	sender := bot.NewTestMessageSender()
	sender.Error = errors.New("telegram is unreachable")
	log := logging.NewFakeLogger()
	service := New(log, repo, sender)

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Owner: OWNER, At: Now})

	// Verify ---
	assert := require.New(t)
	assert.NotNil(err)
	assert.False(result.Sent)
	assert.NotEmpty(log.Logged)
}
