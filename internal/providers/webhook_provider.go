package providers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"rankwatch/internal/structures"

	json "github.com/goccy/go-json"
)

type WebhookProviderInterface interface {
	// Post sends a plain text message and returns the HTTP status of the response.
	Post(ctx context.Context, webhookURL, content string) (int, error)
}

type WebhookProvider struct {
	client *http.Client
}

type webhookPayload struct {
	Content string `json:"content"`
}

func NewWebhookProvider(conf *structures.Config) WebhookProviderInterface {
	return &WebhookProvider{
		client: &http.Client{Timeout: conf.Discord.Timeout},
	}
}

func (w *WebhookProvider) Post(ctx context.Context, webhookURL, content string) (int, error) {
	target, err := waitURL(webhookURL)
	if err != nil {
		return 0, err
	}

	body, err := json.Marshal(webhookPayload{Content: content})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// waitURL asks the chat service to answer with the created message (200) instead of 204.
func waitURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid webhook url: %w", err)
	}
	q := u.Query()
	q.Set("wait", "true")
	u.RawQuery = q.Encode()
	return u.String(), nil
}
