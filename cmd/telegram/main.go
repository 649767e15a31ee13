package main

import (
	"birthdaybot/internal/config"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Manages the Telegram webhook registration for the bot. Supported
// actions are register (default), show and delete.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	action := "register"
	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	switch action {
	case "register":
		url := cfg.BaseURL.JoinPath("telegram", "updates", cfg.TelegramURLSecret)
		body := callTelegram(cfg, "setWebhook", fmt.Sprintf(`{"url": "%s"}`, url))
		fmt.Printf("Webhook %s successfully registered: %s\n", url, body)
	case "show":
		body := callTelegram(cfg, "getWebhookInfo", "{}")
		fmt.Printf("%s\n", body)
	case "delete":
		body := callTelegram(cfg, "deleteWebhook", "{}")
		fmt.Printf("Webhook successfully deleted: %s\n", body)
	default:
		fmt.Fprintf(os.Stderr, "unknown action %q, expected register, show or delete\n", action)
		os.Exit(1)
	}
}

func callTelegram(cfg *config.Config, method string, payload string) string {
	resp, err := http.Post(
		cfg.TelegramBaseURL.JoinPath(fmt.Sprintf("bot%s", cfg.TelegramToken), method).String(),
		"application/json",
		bytes.NewBufferString(payload),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not call Telegram %s, error: %v\n", method, err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not read Telegram %s response, error: %v\n", method, err)
		os.Exit(1)
	}
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "could not call Telegram %s, status: %v, body: %s\n", method, resp.StatusCode, body)
		os.Exit(1)
	}
	return string(body)
}
