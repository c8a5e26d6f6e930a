package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID generates a prefixed record identifier such as "trip_a1b2c3d4".
// The suffix is the first 8 hex characters of a random UUID — short enough to
// read aloud over the phone, random enough to never collide in practice.
// Ids are immutable once assigned.
func NewID(prefix string) string {
	u := uuid.New()
	return fmt.Sprintf("%s_%x", prefix, u[:4])
}
