package domain

import "github.com/google/uuid"

// NewID generates a random 128-bit identifier for application-owned entities.
// IDs are opaque, UUID-shaped, and never reused.
func NewID() string {
	return uuid.NewString()
}
