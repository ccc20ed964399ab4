package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/screfy/ldw/pkg/domain/interfaces"
	"github.com/screfy/ldw/pkg/domain/model"
	"github.com/screfy/ldw/pkg/domain/types"
)

// DefaultBaseURL is the public Discord webhook endpoint prefix
const DefaultBaseURL = "https://discord.com/api/webhooks"

type client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a webhook poster bound to baseURL
func NewClient(baseURL string) interfaces.WebhookPoster {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// Post issues one POST to the webhook. No retry; a non-2xx response is an
// upstream failure.
func (c *client) Post(ctx context.Context, webhookID, webhookToken string, msg *model.WebhookMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal webhook message")
	}

	url := fmt.Sprintf("%s/%s/%s", c.baseURL, webhookID, webhookToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to post webhook message", goerr.T(types.ErrTagUpstream))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return goerr.New("unexpected status from webhook endpoint",
			goerr.T(types.ErrTagUpstream),
			goerr.V("status", resp.StatusCode),
		)
	}

	return nil
}
