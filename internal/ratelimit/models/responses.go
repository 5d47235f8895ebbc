package models

import "time"

// CallerRateLimitExceededResponse is the API response when a caller exhausts
// its window.
type CallerRateLimitExceededResponse struct {
	Error      string    `json:"error"`
	Message    string    `json:"message"`
	Limit      int       `json:"limit"`
	RetryAfter int       `json:"retry_after"`
	ResetAt    time.Time `json:"reset_at"`
}
