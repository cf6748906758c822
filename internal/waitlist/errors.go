package waitlist

import (
	"encoding/json"
	"fmt"
)

// ApplicationError is returned when the service answered with a non-2xx status.
// Detail holds the server's "detail" string, or "" when the body had none.
type ApplicationError struct {
	StatusCode int
	Detail     string
	Body       string
}

func (e *ApplicationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("waitlist returned status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("waitlist returned status %d", e.StatusCode)
}

// TransportError is returned when no response was received at all.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// parseDetail extracts a string "detail" field from an error body. Non-string
// details (such as validation error lists) and unparseable bodies yield "".
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if len(payload.Detail) == 0 {
		return ""
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return ""
	}
	return detail
}
