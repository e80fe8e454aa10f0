package router

import (
	"io"
	"strings"

	"github.com/Brownie44l1/shipping-http/internal/handler"
	"github.com/Brownie44l1/shipping-http/internal/request"
	"github.com/Brownie44l1/shipping-http/internal/response"
)

// Kind names one member of the fixed handler set.
type Kind int

const (
	KindStatic Kind = iota
	KindAPI
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindAPI:
		return "api"
	case KindNotFound:
		return "not_found"
	default:
		return "static"
	}
}

// Select picks the handler kind for a method and path. Anything but GET
// goes to KindNotFound. A GET whose first path segment is "api" goes to
// KindAPI, every other GET to KindStatic.
func Select(method request.Method, path string) Kind {
	if method != request.MethodGet {
		return KindNotFound
	}

	if firstSegment(path) == "api" {
		return KindAPI
	}
	return KindStatic
}

// firstSegment returns the element after the leading slash, or "" when the
// path has no slash at all.
func firstSegment(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// Router dispatches decoded requests to its three handlers. It keeps no
// routing table and no per-request state.
type Router struct {
	static   handler.Handler
	api      handler.Handler
	notFound handler.Handler
}

// New creates a router over the given static and API handlers.
func New(static, api handler.Handler) *Router {
	return &Router{
		static:   static,
		api:      api,
		notFound: handler.NotFound{},
	}
}

// Handler returns the handler serving k.
func (r *Router) Handler(k Kind) handler.Handler {
	switch k {
	case KindAPI:
		return r.api
	case KindNotFound:
		return r.notFound
	default:
		return r.static
	}
}

// Dispatch runs the selected handler and returns its response.
func (r *Router) Dispatch(req *request.Request) *response.Response {
	return r.Handler(Select(req.Method, req.Path())).Handle(req)
}

// Route dispatches req and writes the encoded response to w in one call.
// The response is returned even when the write fails.
func (r *Router) Route(req *request.Request, w io.Writer) (*response.Response, error) {
	resp := r.Dispatch(req)
	_, err := resp.WriteTo(w)
	return resp, err
}

// Serve decodes raw and routes the result to w. A message that cannot be
// decoded is answered with a 400 instead of reaching any handler.
func (r *Router) Serve(raw []byte, w io.Writer) (*response.Response, error) {
	req, err := request.FromBytes(raw)
	if err != nil {
		return r.BadRequest(w)
	}
	return r.Route(req, w)
}

// BadRequest answers a message whose request line could not be decoded.
func (r *Router) BadRequest(w io.Writer) (*response.Response, error) {
	resp := response.Error(response.StatusBadRequest, "")
	_, err := resp.WriteTo(w)
	return resp, err
}
