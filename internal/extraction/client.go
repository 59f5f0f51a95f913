// Package extraction is a client for the content-extraction service, which
// turns attachment URLs (voice notes, photos) into text.
package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	infraerrors "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/errors"
)

const defaultTimeout = 20 * time.Second

// ErrDisabled is returned when no extraction service is configured.
var ErrDisabled = errors.New("content extraction is disabled")

// Config holds extraction service settings.
type Config struct {
	URL     string        `env:"EXTRACTION_URL"     yaml:"url"`
	Timeout time.Duration `env:"EXTRACTION_TIMEOUT" yaml:"timeout"`
}

// Client calls POST <base>/extract.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type extractRequest struct {
	URL    string `json:"url"`
	Source string `json:"source,omitempty"`
}

type extractResponse struct {
	Text string `json:"text"`
}

// NewClient creates a client. An empty URL yields a client whose calls
// return ErrDisabled.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether an extraction service is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// Extract returns the text content of the attachment at attachmentURL.
// source is the attachment kind (voice, image) as a hint for the service.
func (c *Client) Extract(ctx context.Context, attachmentURL, source string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	body, err := json.Marshal(extractRequest{URL: attachmentURL, Source: source})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("extract: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if httpErr := infraerrors.ParseHTTPError(resp); httpErr != nil {
		return "", fmt.Errorf("extract: %w", httpErr)
	}

	var out extractResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&out); decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}
	return strings.TrimSpace(out.Text), nil
}
