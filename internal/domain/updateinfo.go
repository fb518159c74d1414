package domain

import "time"

// UpdateInfo records who performed a submit or unlock and why. It is
// immutable once created and attached to exactly one revision event.
type UpdateInfo struct {
	UpdatedAt     time.Time
	UpdatedBy     string
	UpdatedReason string
}
