// Package handler holds the fixed set of response producers the router
// picks from: static files, the JSON API and the not-found page.
package handler

import (
	"strings"

	"github.com/Brownie44l1/shipping-http/internal/request"
	"github.com/Brownie44l1/shipping-http/internal/response"
)

// Handler produces the response for one request. Implementations read
// only from their collaborators and never modify the request.
type Handler interface {
	Handle(req *request.Request) *response.Response
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(req *request.Request) *response.Response

func (f HandlerFunc) Handle(req *request.Request) *response.Response {
	return f(req)
}

// FileReader returns the bytes of a file below a document root, or false
// when it cannot be found or read.
type FileReader interface {
	ReadFile(name string) ([]byte, bool)
}

// Store looks up a record by key, or returns false when nothing matches.
type Store interface {
	Find(key string) (any, bool)
}

// stripQuery drops everything from the first '?'.
func stripQuery(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		return path[:idx]
	}
	return path
}
