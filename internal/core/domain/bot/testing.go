package bot

import (
	"birthdaybot/internal/core/domain/birthday"
	"context"
	"sync"
)

type SentMessage struct {
	ChatID birthday.ChatID
	Text   string
}

type TestMessageSender struct {
	Sent  []SentMessage
	Error error
	lock  sync.Mutex
}

func NewTestMessageSender() *TestMessageSender {
	return &TestMessageSender{}
}

func (s *TestMessageSender) SendMessage(ctx context.Context, chatID birthday.ChatID, text string) error {
	if s.Error != nil {
		return s.Error
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, SentMessage{ChatID: chatID, Text: text})
	return nil
}

func (s *TestMessageSender) LastSent() SentMessage {
	s.lock.Lock()
	defer s.lock.Unlock()
	if len(s.Sent) == 0 {
		panic("no messages were sent")
	}
	return s.Sent[len(s.Sent)-1]
}

type TestUpdateCursor struct {
	Offset int64
	Error  error
}

func NewTestUpdateCursor() *TestUpdateCursor {
	return &TestUpdateCursor{}
}

func (c *TestUpdateCursor) Get(ctx context.Context) (int64, error) {
	return c.Offset, c.Error
}

func (c *TestUpdateCursor) Set(ctx context.Context, offset int64) error {
	if c.Error != nil {
		return c.Error
	}
	c.Offset = offset
	return nil
}
