package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PushConfig holds the messaging-platform push API settings.
type PushConfig struct {
	Enabled bool
	// Endpoint is the platform's broadcast URL.
	Endpoint string
	// Token is the channel access token sent as a bearer credential.
	Token string
}

// HTTPPusher implements Pusher against an HTTP push API.
type HTTPPusher struct {
	cfg    PushConfig
	client *http.Client
}

// NewHTTPPusher creates a Pusher from the given configuration.
func NewHTTPPusher(cfg PushConfig) *HTTPPusher {
	return &HTTPPusher{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Push broadcasts one text message.
func (p *HTTPPusher) Push(ctx context.Context, message string) error {
	if !p.cfg.Enabled {
		return ErrDisabled
	}

	payload := map[string]any{
		"messages": []map[string]string{
			{"type": "text", "text": message},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.Token)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
