package rabbitmq

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Validation error codes for machine-readable error identification.
const (
	ErrCodeRequired = "required"
	ErrCodeEnum     = "enum"
	ErrCodePattern  = "pattern"
)

// ValidationError reports a request schema field that failed validation.
// It is returned before any HTTP request is made.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string

	// Code is a machine-readable error code (required, enum, pattern).
	Code string

	// Message is a human-readable error description.
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// HTTPError is a non-2xx response from the broker. ErrorName and Reason are
// parsed best-effort from the broker's {"error": ..., "reason": ...} payload;
// Body holds the raw response either way.
type HTTPError struct {
	StatusCode int
	ErrorName  string
	Reason     string
	Body       []byte
}

func (e *HTTPError) Error() string {
	if e.ErrorName != "" {
		return fmt.Sprintf("broker returned status %d: %s: %s", e.StatusCode, e.ErrorName, e.Reason)
	}
	return fmt.Sprintf("broker returned status %d: %s", e.StatusCode, e.Body)
}

// TransportError is a network-level failure: the request never produced an
// HTTP response (connection refused, timeout, DNS failure, bad base URL).
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cannot reach broker at %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an *HTTPError with status 404.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

// parseError reads a non-2xx response into an *HTTPError.
func parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	httpErr := &HTTPError{
		StatusCode: resp.StatusCode,
		Body:       body,
	}

	var errResp struct {
		Error  string `json:"error"`
		Reason string `json:"reason"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		httpErr.ErrorName = errResp.Error
		httpErr.Reason = errResp.Reason
	}
	return httpErr
}
