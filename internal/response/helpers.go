package response

import (
	"encoding/json"

	"github.com/Brownie44l1/shipping-http/internal/headers"
)

// HTML builds a text/html response
func HTML(code StatusCode, body string) *Response {
	return New(code, headers.With("Content-Type", "text/html"), []byte(body))
}

// Text builds a text/plain response
func Text(code StatusCode, body string) *Response {
	return New(code, headers.With("Content-Type", "text/plain"), []byte(body))
}

// JSON marshals v and builds an application/json response
func JSON(code StatusCode, v any) (*Response, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return New(code, headers.With("Content-Type", "application/json"), data), nil
}

// Bytes builds a response with arbitrary content
func Bytes(code StatusCode, contentType string, data []byte) *Response {
	h := headers.NewHeaders()
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return New(code, h, data)
}

// Error builds a response whose body is the status line text, for failures
// that happen before any handler runs.
func Error(code StatusCode, message string) *Response {
	if message == "" {
		message = StatusText(code)
	}
	return HTML(code, message)
}
