package response

// StatusCode is the three digit status as it appears on the wire.
type StatusCode string

const (
	StatusOK                  StatusCode = "200"
	StatusBadRequest          StatusCode = "400"
	StatusNotFound            StatusCode = "404"
	StatusInternalServerError StatusCode = "500"
)

// statusText maps status codes to reason phrases
var statusText = map[StatusCode]string{
	StatusOK:                  "OK",
	StatusBadRequest:          "Bad Request",
	StatusNotFound:            "Not Found",
	StatusInternalServerError: "Internal Server Error",
}

// StatusText returns the reason phrase for a code. Codes outside the table
// read "Not Found".
func StatusText(code StatusCode) string {
	if text, ok := statusText[code]; ok {
		return text
	}
	return statusText[StatusNotFound]
}

// IsSuccess returns true for 2xx status codes
func (code StatusCode) IsSuccess() bool {
	return len(code) == 3 && code[0] == '2'
}

// IsClientError returns true for 4xx status codes
func (code StatusCode) IsClientError() bool {
	return len(code) == 3 && code[0] == '4'
}

// IsServerError returns true for 5xx status codes
func (code StatusCode) IsServerError() bool {
	return len(code) == 3 && code[0] == '5'
}

// IsError returns true for 4xx or 5xx status codes
func (code StatusCode) IsError() bool {
	return code.IsClientError() || code.IsServerError()
}
