package bot

import (
	"birthdaybot/internal/core/domain/birthday"
	"context"
)

// MessageSender delivers outbound text to a chat. Sends are
// best-effort from the caller's perspective, retries are up to the
// implementation.
type MessageSender interface {
	SendMessage(ctx context.Context, chatID birthday.ChatID, text string) error
}

// Update is one inbound chat event fetched through the polling API.
type Update struct {
	ID     int64
	ChatID birthday.ChatID
	Text   string
}

// UpdatesFetcher pulls pending updates starting at the given offset.
type UpdatesFetcher interface {
	FetchUpdates(ctx context.Context, offset int64) ([]Update, error)
}

// UpdateCursor persists the polling offset between calls.
type UpdateCursor interface {
	Get(ctx context.Context) (int64, error)
	Set(ctx context.Context, offset int64) error
}
