package dispatchcommand

import (
	"birthdaybot/internal/core/domain/birthday"
	"birthdaybot/internal/core/domain/logging"
	"birthdaybot/internal/core/services"
	addbirthday "birthdaybot/internal/core/services/add_birthday"
	getbirthdays "birthdaybot/internal/core/services/get_birthdays"
	removebirthday "birthdaybot/internal/core/services/remove_birthday"
	todaybirthdays "birthdaybot/internal/core/services/today_birthdays"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	OWNER      = birthday.ChatID(111)
	MAINTAINER = birthday.ChatID(42)
)

var Now = time.Date(2023, 3, 14, 6, 45, 0, 0, time.UTC)

type env struct {
	repo     *birthday.TestRepository
	log      *logging.FakeLogger
	dispatch services.Service[Input, Result]
}

func newEnv() *env {
	repo := birthday.NewTestRepository()
	log := logging.NewFakeLogger()
	now := func() time.Time { return Now }
	return &env{
		repo: repo,
		log:  log,
		dispatch: New(
			log,
			addbirthday.New(log, repo, now),
			removebirthday.New(log, repo),
			getbirthdays.New(log, repo),
			todaybirthdays.New(log, repo, now),
			MAINTAINER,
			now,
		),
	}
}

func (e *env) handle(t *testing.T, owner birthday.ChatID, text string) string {
	t.Helper()
	result, err := e.dispatch.Run(context.Background(), Input{Owner: owner, Text: text})
	require.Nil(t, err)
	require.NotEmpty(t, result.ReplyText)
	return result.ReplyText
}

func TestHelpCommands(t *testing.T) {
	env := newEnv()

	for _, text := range []string{"/start", "/help", "/start whatever, args"} {
		reply := env.handle(t, OWNER, text)
		assert.Contains(t, reply, "Available commands:")
		assert.Contains(t, reply, "/add <name>,<birthday> - add a birthday")
	}
}

func TestAddThenGetReproducesDate(t *testing.T) {
	env := newEnv()

	reply := env.handle(t, OWNER, "/add Alice,14-03-1990")
	assert.Equal(t, "Alice has been added to your birthday reminders.", reply)

	reply = env.handle(t, OWNER, "/get Alice")
	assert.Equal(t, "- Alice (14-03-1990)", reply)
}

func TestAddTrimsArgumentWhitespace(t *testing.T) {
	env := newEnv()

	env.handle(t, OWNER, "/add  Alice , 14-03-1990 ")

	reply := env.handle(t, OWNER, "/get Alice")
	assert.Equal(t, "- Alice (14-03-1990)", reply)
}

func TestAddWrongArgumentCount(t *testing.T) {
	env := newEnv()

	for _, text := range []string{"/add", "/add Alice", "/add Alice,14-03-1990,telegram"} {
		reply := env.handle(t, OWNER, text)
		assert.Contains(t, reply, "Incorrect number of arguments.")
		assert.Contains(t, reply, "Format: /add <name>,dd-mm-yyyy,<service>,<handle>")
	}
	assert.Equal(t, 0, env.repo.Count(OWNER))
}

func TestAddIncorrectDate(t *testing.T) {
	env := newEnv()

	reply := env.handle(t, OWNER, "/add Alice,31-02-1990")

	assert.Contains(t, reply, "Incorrect date.")
	assert.Equal(t, 0, env.repo.Count(OWNER))
}

func TestAddIncorrectService(t *testing.T) {
	env := newEnv()

	reply := env.handle(t, OWNER, "/add Alice,14-03-1990,email,alice")

	assert.Contains(t, reply, "Service must be either whatsapp or telegram.")
	assert.Equal(t, 0, env.repo.Count(OWNER))
}

func TestAddDuplicateName(t *testing.T) {
	env := newEnv()
	env.handle(t, OWNER, "/add Alice,14-03-1990")

	reply := env.handle(t, OWNER, "/add Alice,01-01-2000")

	assert.Equal(t, "There is already a birthday reminder for Alice.", reply)
	assert.Equal(t, 1, env.repo.Count(OWNER))
}

func TestAddWithTelegramLink(t *testing.T) {
	env := newEnv()
	env.handle(t, OWNER, "/add Bob,01-01-2000,telegram,bob123")

	reply := env.handle(t, OWNER, "/get Bob")

	assert.Equal(t, "- Bob (01-01-2000) - https://web.telegram.org/#/im?p=bob123", reply)
}

func TestRemove(t *testing.T) {
	env := newEnv()
	env.handle(t, OWNER, "/add Alice,14-03-1990")

	reply := env.handle(t, OWNER, "/remove Alice")
	assert.Equal(t, "Removed birthday for `Alice`", reply)

	reply = env.handle(t, OWNER, "/get Alice")
	assert.Equal(t, "Could not find a birthday for `Alice`", reply)
}

func TestRemoveUnknownName(t *testing.T) {
	env := newEnv()
	env.handle(t, OWNER, "/add Alice,14-03-1990")

	reply := env.handle(t, OWNER, "/remove Bob")

	assert.Equal(t, "Could not find a birthday with that name", reply)
	assert.Equal(t, 1, env.repo.Count(OWNER))
}

func TestRemoveWrongArgumentCount(t *testing.T) {
	env := newEnv()

	for _, text := range []string{"/remove", "/remove Alice,Bob"} {
		reply := env.handle(t, OWNER, text)
		assert.Equal(t, "Incorrect usage", reply)
	}
}

func TestListAll(t *testing.T) {
	env := newEnv()
	env.handle(t, OWNER, "/add Alice,14-03-1990")
	env.handle(t, OWNER, "/add Bob,01-01-2000,telegram,bob123")

	for _, text := range []string{"/get", "/list", "/get "} {
		reply := env.handle(t, OWNER, text)
		lines := strings.Split(reply, "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "You have the following birthdays registered:", lines[0])
		assert.Contains(t, reply, "- Alice (14-03-1990)")
		assert.Contains(t, reply, "- Bob (01-01-2000) - https://web.telegram.org/#/im?p=bob123")
	}
}

func TestGetBatchReportsMissesInline(t *testing.T) {
	env := newEnv()
	env.handle(t, OWNER, "/add Alice,14-03-1990")

	reply := env.handle(t, OWNER, "/get Bob,Alice,Carol")

	assert.Equal(
		t,
		"Could not find a birthday for `Bob`\n"+
			"- Alice (14-03-1990)\n"+
			"Could not find a birthday for `Carol`",
		reply,
	)
}

func TestTodayWithMatches(t *testing.T) {
	env := newEnv()
	env.handle(t, OWNER, "/add Alice,14-03-1990")
	env.handle(t, OWNER, "/add Bob,15-03-2000")

	reply := env.handle(t, OWNER, "/today")

	assert.Equal(
		t,
		"The following people are celebrating their birthday today:\n- Alice (33)",
		reply,
	)
}

func TestTodayWithoutMatches(t *testing.T) {
	env := newEnv()
	env.handle(t, OWNER, "/add Bob,15-03-2000")

	reply := env.handle(t, OWNER, "/today")

	assert.Equal(t, "There are no birthdays today.", reply)
}

func TestOwnersAreIsolated(t *testing.T) {
	env := newEnv()
	env.handle(t, 1, "/add Carol,14-03-1990")
	env.handle(t, 2, "/add Carol,01-01-2000")

	assert.Equal(t, "- Carol (14-03-1990)", env.handle(t, 1, "/get Carol"))
	assert.Equal(t, "- Carol (01-01-2000)", env.handle(t, 2, "/get Carol"))
}

func TestUnknownCommand(t *testing.T) {
	env := newEnv()

	reply := env.handle(t, OWNER, "/frobnicate now")

	assert.Equal(t, "Unknown command /frobnicate", reply)
}

func TestInternalFaultGenericReply(t *testing.T) {
	env := newEnv()
	env.repo.ReadError = errors.New("connection refused")

	reply := env.handle(t, OWNER, "/get")

	assert.Equal(t, "Operation resulted in an unexpected error.", reply)
	require.NotEmpty(t, env.log.Logged)
}

func TestInternalFaultVerboseReplyForMaintainer(t *testing.T) {
	env := newEnv()
	env.repo.ReadError = errors.New("connection refused")

	reply := env.handle(t, MAINTAINER, "/get")

	assert.Contains(t, reply, "Operation resulted in error. Exception:")
	assert.Contains(t, reply, "connection refused")
}
