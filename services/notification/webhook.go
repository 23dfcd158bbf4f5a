package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"flexspace/config"
	"flexspace/models"
)

var webhookClient = &http.Client{Timeout: 10 * time.Second}

// chatMessage is the JSON body posted to the configured chat webhook.
type chatMessage struct {
	Title  string               `json:"title"`
	Text   string               `json:"text"`
	Event  string               `json:"event"`
	Detail models.NotifyPayload `json:"detail"`
}

// webhookEnabled reports whether a chat webhook URL is configured.
func webhookEnabled() bool {
	return config.AppConfig.ChatWebhookURL != ""
}

// sendChatWebhook posts the event to the admin chat channel.
func sendChatWebhook(ctx context.Context, title, body string, payload models.NotifyPayload) error {
	url := config.AppConfig.ChatWebhookURL
	if url == "" {
		return nil
	}

	data, err := json.Marshal(chatMessage{
		Title:  title,
		Text:   body,
		Event:  payload.Event,
		Detail: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := webhookClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook post failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
