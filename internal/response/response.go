package response

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/Brownie44l1/shipping-http/internal/headers"
)

const Version = "HTTP/1.1"

// Response is built by a handler for one request and encoded once.
// Body nil means no body. Content-Length is never kept in Headers; Encode
// derives it from Body.
type Response struct {
	Version    string
	StatusCode StatusCode
	StatusText string
	Headers    *headers.Headers
	Body       []byte
}

// New builds a response. An empty code means 200. A nil h gets the single
// default header Content-Type: text/html; a non-nil h is copied as given,
// minus any Content-Length entry.
func New(code StatusCode, h *headers.Headers, body []byte) *Response {
	if code == "" {
		code = StatusOK
	}

	if h == nil {
		h = headers.With("Content-Type", "text/html")
	} else {
		h = h.Clone()
		h.Each(func(key, _ string) {
			if isContentLength(key) {
				h.Del(key)
			}
		})
	}

	return &Response{
		Version:    Version,
		StatusCode: code,
		StatusText: StatusText(code),
		Headers:    h,
		Body:       body,
	}
}

// ContentLength is the byte length of the body, 0 when absent.
func (r *Response) ContentLength() int {
	return len(r.Body)
}

// Encode returns the exact wire form:
//
//	<version> <code> <text>\r\n<name>: <value>\r\n...Content-Length: <n>\r\n\r\n<body>
//
// Header order follows map iteration.
func (r *Response) Encode() []byte {
	var buf bytes.Buffer
	buf.Grow(64 + len(r.Body))

	buf.WriteString(r.Version)
	buf.WriteByte(' ')
	buf.WriteString(string(r.StatusCode))
	buf.WriteByte(' ')
	buf.WriteString(r.StatusText)
	buf.WriteString("\r\n")

	if r.Headers != nil {
		r.Headers.Each(func(key, value string) {
			if isContentLength(key) {
				return
			}
			buf.WriteString(key)
			buf.WriteString(": ")
			buf.WriteString(value)
			buf.WriteString("\r\n")
		})
	}

	buf.WriteString("Content-Length: ")
	buf.WriteString(strconv.Itoa(r.ContentLength()))
	buf.WriteString("\r\n\r\n")
	buf.Write(r.Body)

	return buf.Bytes()
}

func isContentLength(key string) bool {
	return strings.EqualFold(key, "Content-Length")
}

func (r *Response) String() string {
	return string(r.Encode())
}

// WriteTo writes the encoded response with a single Write call. A short
// write is reported as io.ErrShortWrite; nothing is retried.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	data := r.Encode()
	n, err := w.Write(data)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	return int64(n), err
}
