// Package llmtransport provides the HTTP transport for generateContent-style
// text generation endpoints.
package llmtransport

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

	"github.com/tidwall/gjson"

	infraerrors "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/errors"
)

const (
	defaultTimeout   = 15 * time.Second
	maxResponseBytes = 1 << 20
	apiKeyHeader     = "x-goog-api-key"
	candidateText    = "candidates.0.content.parts.0.text"
)

var (
	// ErrEmptyCandidate is returned when the response carries no candidate text.
	ErrEmptyCandidate = errors.New("response has no candidate text")
	// ErrInvalidResponse is returned when the response body is not JSON.
	ErrInvalidResponse = errors.New("response is not valid JSON")
)

// GenerateRequest is the request body for POST <model>:generateContent.
type GenerateRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

// Content is one conversational turn.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is a text fragment of a turn.
type Part struct {
	Text string `json:"text"`
}

// GenerationConfig bounds sampling and output size.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// NewTextRequest builds a single-turn text request.
func NewTextRequest(prompt string, temperature float64, maxOutputTokens int) *GenerateRequest {
	return &GenerateRequest{
		Contents:         []Content{{Parts: []Part{{Text: prompt}}}},
		GenerationConfig: GenerationConfig{Temperature: temperature, MaxOutputTokens: maxOutputTokens},
	}
}

// GenerateEndpoint returns the generateContent URL for model under baseURL.
func GenerateEndpoint(baseURL, model string) string {
	return trimSlash(baseURL) + "/models/" + model + ":generateContent"
}

// DoGenerate posts req to endpoint and returns the first candidate's text.
// A nil client uses a client with a default timeout.
func DoGenerate(ctx context.Context, client *http.Client, endpoint, apiKey string, req *GenerateRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(apiKeyHeader, apiKey)

	resp, err := httpClient(client).Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if httpErr := infraerrors.ParseHTTPError(resp); httpErr != nil {
			return "", fmt.Errorf("generate: %w", httpErr)
		}
		return "", fmt.Errorf("generate: unexpected status %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	return ExtractText(respBody)
}

// ExtractText pulls the first candidate's text out of a generateContent
// response. Any missing level yields ErrEmptyCandidate.
func ExtractText(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", ErrInvalidResponse
	}

	text := gjson.GetBytes(body, candidateText)
	if !text.Exists() || text.Type != gjson.String {
		if reason := gjson.GetBytes(body, "promptFeedback.blockReason"); reason.Exists() {
			return "", fmt.Errorf("%w: blocked (%s)", ErrEmptyCandidate, reason.String())
		}
		return "", ErrEmptyCandidate
	}
	return text.String(), nil
}

// DoHealth lists models at baseURL to check that the endpoint is reachable
// and the key is accepted.
func DoHealth(ctx context.Context, client *http.Client, baseURL, apiKey string) (latency time.Duration, err error) {
	start := time.Now()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, trimSlash(baseURL)+"/models?pageSize=1", http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set(apiKeyHeader, apiKey)

	resp, err := httpClient(client).Do(httpReq)
	latency = time.Since(start)
	if err != nil {
		return latency, fmt.Errorf("service unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return latency, fmt.Errorf("unhealthy status: %d", resp.StatusCode)
	}
	return latency, nil
}

func httpClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: defaultTimeout}
}

func trimSlash(s string) string {
	return strings.TrimRight(s, "/")
}
