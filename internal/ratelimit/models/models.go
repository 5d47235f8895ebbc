package models

import (
	"time"

	id "surety/pkg/domain"
)

// KeyPrefix namespaces caller buckets in shared stores.
const KeyPrefix = "surety:ratelimit:"

// CallerKey is the bucket key for one caller.
func CallerKey(caller id.MemberID) string {
	return KeyPrefix + caller.String()
}

// RateLimitResult is the outcome of one admission check against a bucket.
type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int // seconds
}

// Policy is the sliding window applied to every caller.
type Policy struct {
	Limit  int
	Window time.Duration
}

// Enabled reports whether the policy limits anything.
func (p Policy) Enabled() bool {
	return p.Limit > 0 && p.Window > 0
}
