package request

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/Brownie44l1/shipping-http/internal/headers"
)

// DefaultReadSize bounds the single read a request is decoded from.
const DefaultReadSize = 1024

var ErrEmptyRead = errors.New("no request data")

// Resource is the request target, kept verbatim including any query.
type Resource struct {
	Path string
}

// Request is a decoded message. It is built once by Decode and is not
// modified afterwards.
type Request struct {
	Method   Method
	Version  Version
	Resource Resource
	Headers  *headers.Headers
	Body     string
}

// lineKind classifies one physical line of a message.
type lineKind int

const (
	lineRequest lineKind = iota
	lineHeader
	lineBlank
	lineBody
)

// classify looks at content, not position. The "HTTP" check runs before
// the colon check, so a request line is never taken for a header.
func classify(line string) lineKind {
	switch {
	case strings.Contains(line, "HTTP"):
		return lineRequest
	case strings.Contains(line, ":"):
		return lineHeader
	case line == "":
		return lineBlank
	default:
		return lineBody
	}
}

// splitLines splits on LF and drops one trailing CR per line.
func splitLines(raw string) []string {
	lines := strings.Split(raw, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Decode turns the full text of one message into a Request. Only a request
// line with fewer than three tokens fails; everything else is decoded
// permissively. When several lines qualify as body the last one is kept.
func Decode(raw string) (*Request, error) {
	req := &Request{
		Headers: headers.NewHeaders(),
	}

	for _, line := range splitLines(raw) {
		switch classify(line) {
		case lineRequest:
			m, res, v, err := parseRequestLine(line)
			if err != nil {
				return nil, err
			}
			req.Method, req.Resource, req.Version = m, res, v

		case lineHeader:
			// classify guarantees a colon, so this cannot fail
			req.Headers.ParseLine(line)

		case lineBlank:

		case lineBody:
			req.Body = line
		}
	}

	return req, nil
}

// FromBytes decodes raw bytes, replacing ill-formed UTF-8 with U+FFFD.
func FromBytes(b []byte) (*Request, error) {
	text, _, err := transform.String(runes.ReplaceIllFormed(), string(b))
	if err != nil {
		return nil, fmt.Errorf("decode utf-8: %w", err)
	}
	return Decode(text)
}

// ReadMessage performs exactly one read into buf and returns the bytes that
// arrived. It does not wait for more data; a message longer than buf is cut
// off. A read that yields nothing is ErrEmptyRead.
func ReadMessage(reader io.Reader, buf []byte) ([]byte, error) {
	if len(buf) == 0 {
		buf = make([]byte, DefaultReadSize)
	}

	n, err := reader.Read(buf)
	if n == 0 {
		if err == nil || err == io.EOF {
			return nil, ErrEmptyRead
		}
		return nil, fmt.Errorf("read error: %w", err)
	}
	return buf[:n], nil
}

// FromReader reads one message with ReadMessage and decodes it.
func FromReader(reader io.Reader, buf []byte) (*Request, error) {
	raw, err := ReadMessage(reader, buf)
	if err != nil {
		return nil, err
	}
	return FromBytes(raw)
}

// Path returns the resource path.
func (r *Request) Path() string {
	return r.Resource.Path
}
