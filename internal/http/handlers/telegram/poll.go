package telegram

import (
	"birthdaybot/internal/core/domain/bot"
	e "birthdaybot/internal/core/domain/errors"
	"birthdaybot/internal/core/domain/logging"
	ratelimiter "birthdaybot/internal/core/domain/rate_limiter"
	"birthdaybot/internal/core/services"
	dispatchcommand "birthdaybot/internal/core/services/dispatch_command"
	"birthdaybot/internal/http/handlers/response"
	"net/http"
)

// PollHandler drains pending updates through the getUpdates API. It
// backs deployments where a public webhook URL is not available.
type PollHandler struct {
	log            logging.Logger
	updatesFetcher bot.UpdatesFetcher
	updateCursor   bot.UpdateCursor
	updatesHandler *Handler
}

func NewPoll(
	log logging.Logger,
	updatesFetcher bot.UpdatesFetcher,
	updateCursor bot.UpdateCursor,
	botMessageSender bot.MessageSender,
	rateLimiter ratelimiter.RateLimiter,
	chatRateLimit ratelimiter.Limit,
	dispatchCommand services.Service[dispatchcommand.Input, dispatchcommand.Result],
) *PollHandler {
	if updatesFetcher == nil {
		panic(e.NewNilArgumentError("updatesFetcher"))
	}
	if updateCursor == nil {
		panic(e.NewNilArgumentError("updateCursor"))
	}
	return &PollHandler{
		log:            log,
		updatesFetcher: updatesFetcher,
		updateCursor:   updateCursor,
		updatesHandler: New(log, botMessageSender, rateLimiter, chatRateLimit, dispatchCommand),
	}
}

type pollResult struct {
	UpdateCount int `json:"update_count"`
}

func (h *PollHandler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	offset, err := h.updateCursor.Get(ctx)
	if err != nil {
		h.log.Error(ctx, "Could not read updates offset.", logging.Entry("err", err))
		response.RenderInternalError(rw)
		return
	}

	updates, err := h.updatesFetcher.FetchUpdates(ctx, offset)
	if err != nil {
		h.log.Error(ctx, "Could not fetch Telegram updates.", logging.Entry("err", err))
		response.RenderInternalError(rw)
		return
	}

	for _, u := range updates {
		if u.Text != "" {
			h.updatesHandler.handleUpdate(ctx, update{
				ID:      u.ID,
				Message: &message{Chat: chat{ID: int64(u.ChatID)}, Text: u.Text},
			})
		}
		if err := h.updateCursor.Set(ctx, u.ID+1); err != nil {
			h.log.Error(ctx, "Could not advance updates offset.", logging.Entry("err", err))
			response.RenderInternalError(rw)
			return
		}
	}

	response.Render(rw, pollResult{UpdateCount: len(updates)}, http.StatusOK)
}
