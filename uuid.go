package ulid

import (
	"fmt"

	"github.com/google/uuid"
)

// ULIDs and UUIDs share the same 16 raw bytes; conversion only re-frames
// the text layout.

// UUID returns the identifier as a uuid.UUID.
func (u ULID) UUID() uuid.UUID {
	return uuid.UUID(u)
}

// ToUUID converts a ULID string to the canonical 36-character UUID form.
func ToUUID(s string) (string, error) {
	u, err := Parse(s)
	if err != nil {
		return "", err
	}
	return u.UUID().String(), nil
}

// FromUUID creates a ULID from a canonical 36-character UUID string. It
// fails with ErrInvalidFormat on wrong length or hyphen placement and
// ErrInvalidCharacter on non-hex digits.
func FromUUID(s string) (ULID, error) {
	if len(s) != UUIDSize {
		return Zero, fmt.Errorf("%w: uuid length %d, want %d", ErrInvalidFormat, len(s), UUIDSize)
	}
	for _, i := range [4]int{8, 13, 18, 23} {
		if s[i] != '-' {
			return Zero, fmt.Errorf("%w: uuid missing hyphen at position %d", ErrInvalidFormat, i)
		}
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %v", ErrInvalidCharacter, err)
	}
	return ULID(id), nil
}
