package telegrambotmessagesender

import (
	"birthdaybot/internal/core/domain/birthday"
	"birthdaybot/internal/core/domain/bot"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type telegramMessage struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type telegramUpdatesRequest struct {
	Offset int64 `json:"offset"`
}

type telegramChat struct {
	ID int64 `json:"id"`
}

type telegramInboundMessage struct {
	Chat telegramChat `json:"chat"`
	Text string       `json:"text"`
}

type telegramUpdate struct {
	ID      int64                   `json:"update_id"`
	Message *telegramInboundMessage `json:"message"`
}

type telegramUpdatesResponse struct {
	OK     bool             `json:"ok"`
	Result []telegramUpdate `json:"result"`
}

type TelegramBotMessageSender struct {
	httpClient http.Client
	baseURL    url.URL
	token      string
}

func New(baseURL url.URL, token string, timeout time.Duration) *TelegramBotMessageSender {
	return &TelegramBotMessageSender{
		baseURL:    baseURL,
		token:      token,
		httpClient: http.Client{Timeout: timeout},
	}
}

func (s *TelegramBotMessageSender) SendMessage(
	ctx context.Context,
	chatID birthday.ChatID,
	text string,
) error {
	_, err := s.call(ctx, "sendMessage", telegramMessage{ChatID: int64(chatID), Text: text})
	return err
}

// FetchUpdates pulls pending updates through the getUpdates API.
// Updates without a text message are skipped.
func (s *TelegramBotMessageSender) FetchUpdates(ctx context.Context, offset int64) ([]bot.Update, error) {
	body, err := s.call(ctx, "getUpdates", telegramUpdatesRequest{Offset: offset})
	if err != nil {
		return nil, err
	}

	response := telegramUpdatesResponse{}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, err
	}
	if !response.OK {
		return nil, fmt.Errorf("got unsuccessfull getUpdates response from Telegram: %s", string(body))
	}

	updates := make([]bot.Update, 0, len(response.Result))
	for _, u := range response.Result {
		if u.Message == nil {
			updates = append(updates, bot.Update{ID: u.ID})
			continue
		}
		updates = append(updates, bot.Update{
			ID:     u.ID,
			ChatID: birthday.ChatID(u.Message.Chat.ID),
			Text:   u.Message.Text,
		})
	}
	return updates, nil
}

func (s *TelegramBotMessageSender) call(ctx context.Context, method string, payload interface{}) ([]byte, error) {
	url := s.baseURL.JoinPath(fmt.Sprintf("bot%s", s.token), method)

	var body bytes.Buffer
	encoder := json.NewEncoder(&body)
	if err := encoder.Encode(payload); err != nil {
		return nil, err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url.String(), &body)
	if err != nil {
		return nil, err
	}
	request.Header.Add("content-type", "application/json")

	resp, err := s.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("got unsuccessfull response from Telegram: %s", string(responseBody))
	}
	return responseBody, nil
}
