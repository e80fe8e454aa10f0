package request

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedRequestLine = errors.New("malformed request line")

// Method is the request method. Tokens outside the known set decode to
// MethodUnrecognized rather than failing.
type Method int

const (
	MethodUnrecognized Method = iota
	MethodGet
	MethodPost
	MethodPut
	MethodPatch
	MethodDelete
)

var methodNames = map[Method]string{
	MethodGet:    "GET",
	MethodPost:   "POST",
	MethodPut:    "PUT",
	MethodPatch:  "PATCH",
	MethodDelete: "DELETE",
}

// ParseMethod maps a request-line token to a Method by exact match.
func ParseMethod(token string) Method {
	switch token {
	case "GET":
		return MethodGet
	case "POST":
		return MethodPost
	case "PUT":
		return MethodPut
	case "PATCH":
		return MethodPatch
	case "DELETE":
		return MethodDelete
	default:
		return MethodUnrecognized
	}
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return "UNRECOGNIZED"
}

// Version is the protocol version from the request line. VersionUnset is
// what a request carries when no request line was seen, so it can be told
// apart from a parsed HTTP/1.1.
type Version int

const (
	VersionUnset Version = iota
	Version11
	Version20
	Version30
	VersionUnrecognized
)

// ParseVersion maps a request-line token to a Version by exact match.
func ParseVersion(token string) Version {
	switch token {
	case "HTTP/1.1":
		return Version11
	case "HTTP/2.0":
		return Version20
	case "HTTP/3.0":
		return Version30
	default:
		return VersionUnrecognized
	}
}

func (v Version) String() string {
	switch v {
	case Version11:
		return "HTTP/1.1"
	case Version20:
		return "HTTP/2.0"
	case Version30:
		return "HTTP/3.0"
	case VersionUnset:
		return "UNSET"
	default:
		return "UNRECOGNIZED"
	}
}

// parseRequestLine parses: METHOD TARGET VERSION
// Tokens are whitespace separated; anything after the third is ignored.
func parseRequestLine(line string) (Method, Resource, Version, error) {
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return MethodUnrecognized, Resource{}, VersionUnset,
			fmt.Errorf("%w: %q", ErrMalformedRequestLine, line)
	}

	return ParseMethod(parts[0]), Resource{Path: parts[1]}, ParseVersion(parts[2]), nil
}
