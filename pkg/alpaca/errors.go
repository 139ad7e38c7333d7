package alpaca

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the trading API.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
	Body       []byte
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Message:    http.StatusText(status),
		Body:       body,
	}

	var payload struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Code = payload.Code
		if payload.Message != "" {
			apiErr.Message = payload.Message
		}
	}

	return apiErr
}

func (e *APIError) Error() string {
	return fmt.Sprintf("alpaca api error %d: %s", e.StatusCode, e.Message)
}

// Unauthorized reports whether the credentials were rejected.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
