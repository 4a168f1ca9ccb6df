package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 1 << 20

// HTTPError is a response with status >= 400. Message is the backend's
// "error" or "message" field, or the raw body when neither is present.
type HTTPError struct {
	StatusCode int
	Message    string
	Method     string
	Path       string
}

func (e *HTTPError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// newHTTPError builds the error for a failed response, reading at most
// maxErrorBody bytes of it.
func newHTTPError(resp *http.Response, method, path string) *HTTPError {
	e := &HTTPError{StatusCode: resp.StatusCode, Method: method, Path: path}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		e.Message = fmt.Sprintf("failed to read body: %v", err)
		return e
	}
	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &apiErr) == nil {
		switch {
		case apiErr.Error != "":
			e.Message = apiErr.Error
			return e
		case apiErr.Message != "":
			e.Message = apiErr.Message
			return e
		}
	}
	e.Message = string(body)
	if e.Message == "" {
		e.Message = http.StatusText(resp.StatusCode)
	}
	return e
}

// IsStatus reports whether err wraps an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsUnauthorized reports whether the backend rejected the caller's token.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized) || IsStatus(err, http.StatusForbidden)
}
