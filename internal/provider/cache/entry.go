// Package cache stores provider responses on disk with a time-to-live so
// repeated estimates for the same roof do not refetch building insights.
package cache

import (
	"encoding/json"
	"time"
)

// Entry is a single cached provider response.
type Entry struct {
	// Key is the caller's logical key, e.g. "insights:25.4687,-80.4776".
	Key string `json:"key"`

	// Data is the raw provider response body.
	Data json.RawMessage `json:"data"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// newEntry stamps an entry that expires ttl after now.
func newEntry(key string, data json.RawMessage, now time.Time, ttl time.Duration) *Entry {
	return &Entry{
		Key:       key,
		Data:      data,
		CreatedAt: now.UTC(),
		ExpiresAt: now.UTC().Add(ttl),
	}
}

// ExpiredAt reports whether the entry is expired at t.
func (e *Entry) ExpiredAt(t time.Time) bool {
	return !t.Before(e.ExpiresAt)
}

// Age returns how long ago the entry was written, relative to t.
func (e *Entry) Age(t time.Time) time.Duration {
	return t.Sub(e.CreatedAt)
}
