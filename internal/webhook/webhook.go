// Package webhook is the outbound HTTP client for the chat webhook.
//
// One Send is one POST of {"content": <message>}. There is no retry here;
// delivery policy lives with the caller.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultUserAgent = "releasebot/1.0"

// maxErrorBody caps how much of an error response is carried into the error
// message; webhook error payloads are small JSON blobs, anything longer is
// noise in a CI log.
const maxErrorBody = 2048

// StatusError is a non-2xx webhook response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook request failed (%d): %s", e.Code, e.Body)
}

type Client struct {
	url       string
	userAgent string
	hc        *http.Client
}

// NewClient builds a client for one webhook URL. timeout bounds each request
// end to end; <= 0 falls back to 10s.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:       url,
		userAgent: defaultUserAgent,
		hc:        &http.Client{Timeout: timeout},
	}
}

// Send POSTs one message. A non-2xx response becomes a *StatusError carrying
// the status code and (truncated) response body.
func (c *Client) Send(ctx context.Context, content string) error {
	payload, err := json.Marshal(struct {
		Content string `json:"content"`
	}{Content: content})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return nil
}
