package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jerseystore/jerseystore-backend/pkg/config"
	pkgerrors "github.com/jerseystore/jerseystore-backend/pkg/errors"
)

const (
	defaultBaseURL             = "https://api.telegram.org"
	responseBodyReadLimit int64 = 1024
)

var (
	errBotTokenRequired = errors.New("telegram bot token is required")
	errChatIDRequired   = errors.New("telegram chat id is required")
)

// Client delivers order notifications through the Telegram Bot API. Each
// successful checkout produces exactly one sendMessage call.
type Client struct {
	httpClient *http.Client
	baseURL    string
	botToken   string
	chatID     string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the Bot API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the Telegram client from config.
func NewClient(cfg config.TelegramConfig, opts ...Option) (*Client, error) {
	token := strings.TrimSpace(cfg.BotToken)
	if token == "" {
		return nil, errBotTokenRequired
	}
	chatID := strings.TrimSpace(cfg.ChatID)
	if chatID == "" {
		return nil, errChatIDRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		botToken:   token,
		chatID:     chatID,
	}
	if cfg.BaseURL != "" {
		client.baseURL = strings.TrimSpace(cfg.BaseURL)
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage posts the text to the configured chat. A transport failure or
// a non-2xx response is reported as a notification failure; the caller
// decides whether to retry.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeNotificationFailed, "telegram client not configured")
	}
	if strings.TrimSpace(text) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "message text is required")
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNotificationFailed, err, "marshal sendMessage request")
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(c.baseURL, "/"), c.botToken)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNotificationFailed, err, "build sendMessage request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNotificationFailed, err, "execute sendMessage request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(
			pkgerrors.CodeNotificationFailed,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
			"sendMessage request failed",
		)
	}

	return nil
}
