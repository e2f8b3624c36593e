package model

import "github.com/google/uuid"

// generateID creates a shopping item id: a UUIDv7, whose leading bits are
// a millisecond timestamp and whose tail is random.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback -- should never happen.
		return uuid.NewString()
	}
	return id.String()
}
