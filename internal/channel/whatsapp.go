package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	customError "github.com/fintrack/scheme-engine/pkg/errors"
)

// WhatsAppChannel posts messages to a WhatsApp gateway over HTTP. Retry and
// queueing live behind the gateway; a failed send surfaces as a DispatchError
// and is only logged by the caller.
type WhatsAppChannel struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewWhatsAppChannel(baseURL, token string, timeout time.Duration) *WhatsAppChannel {
	return &WhatsAppChannel{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

type sendRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

func (c *WhatsAppChannel) Send(ctx context.Context, target, text string) error {
	payload, err := json.Marshal(sendRequest{To: target, Body: text})
	if err != nil {
		return customError.WrapDispatchError(target, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return customError.WrapDispatchError(target, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return customError.WrapDispatchError(target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return customError.WrapDispatchError(target, fmt.Errorf("gateway returned status %d", resp.StatusCode))
	}

	return nil
}
