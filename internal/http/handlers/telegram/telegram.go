package telegram

import (
	"birthdaybot/internal/core/domain/birthday"
	"birthdaybot/internal/core/domain/bot"
	e "birthdaybot/internal/core/domain/errors"
	"birthdaybot/internal/core/domain/logging"
	ratelimiter "birthdaybot/internal/core/domain/rate_limiter"
	"birthdaybot/internal/core/services"
	dispatchcommand "birthdaybot/internal/core/services/dispatch_command"
	"birthdaybot/internal/http/handlers/response"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type Handler struct {
	log              logging.Logger
	botMessageSender bot.MessageSender
	rateLimiter      ratelimiter.RateLimiter
	chatRateLimit    ratelimiter.Limit
	dispatchCommand  services.Service[dispatchcommand.Input, dispatchcommand.Result]
}

func New(
	log logging.Logger,
	botMessageSender bot.MessageSender,
	rateLimiter ratelimiter.RateLimiter,
	chatRateLimit ratelimiter.Limit,
	dispatchCommand services.Service[dispatchcommand.Input, dispatchcommand.Result],
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if botMessageSender == nil {
		panic(e.NewNilArgumentError("botMessageSender"))
	}
	if rateLimiter == nil {
		panic(e.NewNilArgumentError("rateLimiter"))
	}
	if dispatchCommand == nil {
		panic(e.NewNilArgumentError("dispatchCommand"))
	}
	return &Handler{
		log:              log,
		botMessageSender: botMessageSender,
		rateLimiter:      rateLimiter,
		chatRateLimit:    chatRateLimit,
		dispatchCommand:  dispatchCommand,
	}
}

type chat struct {
	ID int64 `json:"id"`
}

type message struct {
	ID   int64  `json:"message_id"`
	Chat chat   `json:"chat"`
	Date int64  `json:"date"`
	Text string `json:"text"`
}

type update struct {
	ID      int64    `json:"update_id"`
	Message *message `json:"message"`
}

// updatesFromJSON accepts both a single update object and a JSON list
// of updates.
func updatesFromJSON(r io.Reader) ([]update, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		updates := []update{}
		if err := json.Unmarshal(trimmed, &updates); err != nil {
			return nil, err
		}
		return updates, nil
	}

	u := update{}
	if err := json.Unmarshal(trimmed, &u); err != nil {
		return nil, err
	}
	return []update{u}, nil
}

// ServeHTTP always answers 200 so Telegram does not redeliver an
// update the bot could not make sense of.
func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	defer response.Render(rw, struct{}{}, http.StatusOK)

	updates, err := updatesFromJSON(r.Body)
	if err != nil {
		h.log.Error(
			r.Context(),
			"Could not decode Telegram update.",
			logging.Entry("err", err),
		)
		return
	}

	for _, update := range updates {
		h.handleUpdate(r.Context(), update)
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update update) {
	if update.Message == nil || update.Message.Text == "" {
		h.log.Info(
			ctx,
			"Skip Telegram update.",
			logging.Entry("updateID", update.ID),
		)
		return
	}

	chatID := birthday.ChatID(update.Message.Chat.ID)
	h.log.Info(
		ctx,
		"Got Telegram update.",
		logging.Entry("updateID", update.ID),
		logging.Entry("chatID", chatID),
	)

	rateLimitKey := fmt.Sprintf("telegram-chat::%d", chatID)
	if result := h.rateLimiter.CheckLimit(ctx, rateLimitKey, h.chatRateLimit); !result.IsAllowed {
		h.log.Warning(
			ctx,
			"Rate limit exceeded for chat, update skipped.",
			logging.Entry("chatID", chatID),
		)
		return
	}

	result, err := h.dispatchCommand.Run(ctx, dispatchcommand.Input{Owner: chatID, Text: update.Message.Text})
	if err != nil {
		h.log.Error(
			ctx,
			"Command dispatching returned an error.",
			logging.Entry("chatID", chatID),
			logging.Entry("err", err),
		)
		return
	}

	h.sendBotMessage(ctx, chatID, result.ReplyText)
}

func (h *Handler) sendBotMessage(ctx context.Context, chatID birthday.ChatID, text string) {
	if err := h.botMessageSender.SendMessage(ctx, chatID, text); err != nil {
		h.log.Error(
			ctx,
			"Could not send Telegram bot message due to unexpected error.",
			logging.Entry("chatID", chatID),
			logging.Entry("err", err),
		)
		return
	}
	h.log.Info(
		ctx,
		"Telegram message successfully sent.",
		logging.Entry("chatID", chatID),
	)
}
