package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// ConnectionError means no HTTP response was received at all: the
// server is down, the address is wrong, or the connection was reset.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "connection error: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ValidationError is a rejected payload. Fields maps a JSON field name
// (nome, id_curso, ...) to the server's messages for it.
type ValidationError struct {
	StatusCode int
	Fields     map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return fmt.Sprintf("validation error (%d): %s", e.StatusCode, strings.Join(parts, "; "))
}

// ServerError is any other non-2xx response.
type ServerError struct {
	StatusCode int
	// Status is the reason phrase, e.g. "Not Found".
	Status string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: %d - %s", e.StatusCode, e.Status)
}

// decodeFailure classifies a non-2xx response. It is the only place the
// error body shape is inspected.
func decodeFailure(resp *http.Response, body []byte) error {
	var fields map[string][]string
	if err := json.Unmarshal(body, &fields); err == nil && len(fields) > 0 {
		return &ValidationError{StatusCode: resp.StatusCode, Fields: fields}
	}

	return &ServerError{StatusCode: resp.StatusCode, Status: reasonPhrase(resp)}
}

// reasonPhrase returns the status text as the server sent it, falling
// back to the standard text when the status line carried none.
func reasonPhrase(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text != "" {
		return text
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return "Unknown Status"
}
