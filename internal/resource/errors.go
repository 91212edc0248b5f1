package resource

import (
	"errors"
	"fmt"
	"net/http"
)

// Configuration errors are returned before any action is dispatched and are
// never swallowed, regardless of the handler's rethrow policy.
var (
	// ErrUnknownArchive is returned when fetching an archive key that was
	// never registered.
	ErrUnknownArchive = errors.New("unknown archive")

	// ErrMissingID is returned when an update payload carries no usable id.
	ErrMissingID = errors.New("entity has no id")
)

// UnknownCode is the code reported when an error response body carries none.
const UnknownCode = "__unknown"

// RequestError describes a failed HTTP request. The raw response and body
// are attached for inspection by callers that need more than message/code.
type RequestError struct {
	Message  string
	Code     string
	Status   int
	Body     []byte
	Response *http.Response
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s (code %s, HTTP %d)", e.Message, e.Code, e.Status)
}

// newRequestError builds a RequestError from a decoded error body, falling
// back to a generic message and the unknown-code sentinel.
func newRequestError(resp *http.Response, body []byte, decoded map[string]any) *RequestError {
	re := &RequestError{
		Message:  fmt.Sprintf("request failed with status %d", resp.StatusCode),
		Code:     UnknownCode,
		Status:   resp.StatusCode,
		Body:     body,
		Response: resp,
	}
	if msg, ok := decoded["message"].(string); ok && msg != "" {
		re.Message = msg
	}
	if code, ok := decoded["code"].(string); ok && code != "" {
		re.Code = code
	}
	return re
}
