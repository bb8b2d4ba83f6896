package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return e.Detail
}

// decodeAPIError extracts the server's message from an error body. The
// backend documents a detail field; some handlers emit message instead,
// and validation failures carry a structured detail which is kept as raw JSON.
func decodeAPIError(status int, body []byte) *APIError {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if detail := rawText(payload.Detail); detail != "" {
			return &APIError{StatusCode: status, Detail: detail}
		}
		if msg := rawText(payload.Message); msg != "" {
			return &APIError{StatusCode: status, Detail: msg}
		}
	}
	return &APIError{StatusCode: status, Detail: fmt.Sprintf("%d %s", status, http.StatusText(status))}
}

func rawText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
