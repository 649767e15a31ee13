package app

import (
	"birthdaybot/internal/app/deps"
	"birthdaybot/internal/app/services"
	"birthdaybot/internal/http/handlers/response"
	telegram "birthdaybot/internal/http/handlers/telegram"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	telegramRouter := chi.NewRouter()
	telegramRouter.Method(
		http.MethodPost,
		fmt.Sprintf("/updates/%s", deps.Config.TelegramURLSecret),
		telegram.New(
			deps.Logger,
			deps.TelegramBotMessageSender,
			deps.RateLimiter,
			deps.ChatRateLimit,
			s.DispatchCommand,
		),
	)
	telegramRouter.Method(
		http.MethodPost,
		fmt.Sprintf("/poll/%s", deps.Config.TelegramURLSecret),
		telegram.NewPoll(
			deps.Logger,
			deps.TelegramBotMessageSender,
			deps.UpdateCursor,
			deps.TelegramBotMessageSender,
			deps.RateLimiter,
			deps.ChatRateLimit,
			s.DispatchCommand,
		),
	)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Get("/health", func(rw http.ResponseWriter, r *http.Request) {
		response.Render(rw, struct{}{}, http.StatusOK)
	})
	router.Mount("/telegram", telegramRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
