package internal

import "time"

// Attempt is one submission as kept in the local journal.
type Attempt struct {
	ID         string        `json:"id"`
	Email      string        `json:"email"`
	Source     string        `json:"source"`
	BaseURL    string        `json:"base_url"`
	Outcome    string        `json:"outcome"`
	StatusCode int           `json:"status_code,omitempty"`
	Detail     string        `json:"detail,omitempty"`
	Latency    time.Duration `json:"latency"`
	Timestamp  time.Time     `json:"timestamp"`
}
