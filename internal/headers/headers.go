package headers

import (
	"errors"
	"strings"
)

var ErrNoSeparator = errors.New("malformed header: no colon")

// Headers maps a header name to exactly one value. Names are stored
// verbatim; a later Set for the same name replaces the earlier value.
type Headers struct {
	headers map[string]string
}

func NewHeaders() *Headers {
	return &Headers{
		headers: make(map[string]string),
	}
}

// With builds a Headers from alternating name/value pairs.
func With(kv ...string) *Headers {
	h := NewHeaders()
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return h
}

// Get returns the value stored under key
func (h *Headers) Get(key string) (string, bool) {
	v, ok := h.headers[key]
	return v, ok
}

// Set replaces the value for a header
func (h *Headers) Set(key, value string) {
	h.headers[key] = value
}

// Del removes a header
func (h *Headers) Del(key string) {
	delete(h.headers, key)
}

func (h *Headers) Len() int {
	return len(h.headers)
}

// All returns a copy of the header map. Iteration order is whatever the
// map gives; callers must not rely on it.
func (h *Headers) All() map[string]string {
	out := make(map[string]string, len(h.headers))
	for k, v := range h.headers {
		out[k] = v
	}
	return out
}

// Each calls fn for every header in map order.
func (h *Headers) Each(fn func(key, value string)) {
	for k, v := range h.headers {
		fn(k, v)
	}
}

// Clone returns an independent copy.
func (h *Headers) Clone() *Headers {
	return &Headers{headers: h.All()}
}

// ParseLine stores one header line. Only the first colon separates name
// from value and neither side is trimmed, so "Host: a:1" yields
// ("Host", " a:1").
func (h *Headers) ParseLine(line string) (string, string, error) {
	name, value, err := SplitLine(line)
	if err != nil {
		return "", "", err
	}
	h.Set(name, value)
	return name, value, nil
}

// SplitLine splits a header line on its first colon.
func SplitLine(line string) (string, string, error) {
	name, value, found := strings.Cut(line, ":")
	if !found {
		return "", "", ErrNoSeparator
	}
	return name, value, nil
}
