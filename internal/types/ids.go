package types

import (
	"time"

	"github.com/google/uuid"
)

// NewConfigID generates a UUIDv7 configuration identifier.
// Time-ordered IDs ensure sequential inserts cluster in B-tree pages.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewConfigID() ConfigID {
	return ConfigID(uuid.Must(uuid.NewV7()).String())
}

// ParseConfigID validates and converts a string to ConfigID.
// Rejects malformed UUIDs to prevent invalid IDs from entering the system.
func ParseConfigID(s string) (ConfigID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return ConfigID(s), nil
}

// ConfigIDTime extracts the timestamp embedded in a UUIDv7 ID.
// Enables time-based queries without database lookup.
// Returns zero time for invalid UUIDs; caller should check IsZero().
func ConfigIDTime(id ConfigID) time.Time {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return time.Time{}
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec)
}
