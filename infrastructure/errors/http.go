// Package errors turns non-success HTTP responses from upstream services
// into structured errors.
package errors

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

const (
	// MinErrorStatusCode is the lowest status treated as an error.
	MinErrorStatusCode = 400
	maxErrorBodyBytes  = 64 << 10
)

// HTTPError represents an error response from an upstream API.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP error: %s", e.Status)
}

// ParseHTTPError returns nil for success responses. Otherwise it reads the
// body and extracts a message from the common JSON error shapes:
// {"error":{"message":...}}, {"error":"..."} and {"message":"..."}.
func ParseHTTPError(resp *http.Response) error {
	if resp.StatusCode < MinErrorStatusCode {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    fmt.Sprintf("read error body: %v", err),
		}
	}

	return &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(body),
		Message:    extractMessage(body),
	}
}

func extractMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return string(body)
	}

	for _, path := range []string{"error.message", "error", "message", "detail"} {
		if r := gjson.GetBytes(body, path); r.Type == gjson.String && r.String() != "" {
			return r.String()
		}
	}
	return string(body)
}

// StatusCode returns the upstream status code when err wraps an HTTPError.
func StatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}
