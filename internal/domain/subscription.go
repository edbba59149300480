package domain

import "time"

// Subscription is the feature-gate record for a structure. Selling is
// allowed while Active is true and ExpiresAt is in the future.
type Subscription struct {
	StructureID string    `json:"structureId"`
	Plan        string    `json:"plan"`
	Active      bool      `json:"active"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Valid reports whether the subscription allows gated actions at t.
func (s Subscription) Valid(t time.Time) bool {
	return s.Active && t.Before(s.ExpiresAt)
}
