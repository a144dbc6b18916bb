// Package ulid generates and parses ULIDs: Universally Unique
// Lexicographically Sortable Identifiers.
//
// A ULID is a 128-bit ID that sorts naturally by creation time. Unlike
// random UUIDs, the string form orders lexicographically in timestamp
// order, which makes ULIDs well suited as database primary keys.
//
// Basic usage:
//
//	id := ulid.NewID()
//	fmt.Println(id) // 01ARZ3NDEKTSV4RRFFQ69G5FAV
//
//	batch := ulid.NewBatch(100)
//
// Each ULID contains:
//   - 48-bit timestamp (milliseconds since the Unix epoch)
//   - 80-bit random data
//
// IDs generated from one Generator are strictly monotonic: within the same
// millisecond the random component is incremented instead of redrawn, so
// consecutive IDs always sort after one another. The 48-bit timestamp is
// good until roughly the year 10889.
package ulid

import (
	"bytes"
	"database/sql/driver"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	// ULID field bit sizes
	TimestampBits = 48
	RandomBits    = 80

	// MaxTimestamp is the largest representable timestamp, in milliseconds
	// since the Unix epoch (281474976710655, ~year 10889).
	MaxTimestamp = (1 << TimestampBits) - 1

	// Representation sizes
	BinarySize  = 16 // 128 bits = 16 bytes
	EncodedSize = 26 // Crockford Base32 encoding
	UUIDSize    = 36 // canonical 8-4-4-4-12 hex form

	timestampSize = TimestampBits / 8
	randomSize    = RandomBits / 8
)

// MaxRandom is the largest representable random component (2^80 - 1).
var MaxRandom = Uint128{Hi: 1<<(RandomBits-64) - 1, Lo: 1<<64 - 1}

// Errors
var (
	ErrInvalidFormat       = errors.New("ulid: invalid format")
	ErrInvalidCharacter    = errors.New("ulid: invalid character")
	ErrTimestampOverflow   = errors.New("ulid: timestamp exceeds 48 bits")
	ErrRandomnessExhausted = errors.New("ulid: random component exhausted within one millisecond")
)

// ULID is the raw 16-byte form of an identifier. Byte 0 is the most
// significant byte of the 48-bit big-endian timestamp; bytes 6-15 hold the
// 80-bit random component. Numeric order over the 16 bytes, byte-wise
// comparison, and lexicographic order of the encoded string all agree.
type ULID [BinarySize]byte

// Zero represents the zero value ULID.
var Zero ULID

// New creates a ULID from a timestamp in milliseconds and a random
// component. It fails if either field exceeds its bit range.
func New(timestamp uint64, random Uint128) (ULID, error) {
	if timestamp > MaxTimestamp {
		return Zero, fmt.Errorf("%w: %d exceeds maximum %d", ErrTimestampOverflow, timestamp, uint64(MaxTimestamp))
	}
	if random.Cmp(MaxRandom) > 0 {
		return Zero, fmt.Errorf("ulid: random component exceeds %d bits", RandomBits)
	}

	var u ULID
	binary.BigEndian.PutUint64(u[0:8], timestamp<<16|random.Hi)
	binary.BigEndian.PutUint64(u[8:16], random.Lo)
	return u, nil
}

// FromBytes creates a ULID from 16-byte binary data.
func FromBytes(data [BinarySize]byte) ULID {
	return ULID(data)
}

// Bytes returns the 16-byte binary form.
func (u ULID) Bytes() [BinarySize]byte {
	return [BinarySize]byte(u)
}

// ToBytes returns the 16-byte binary data as a slice.
func (u ULID) ToBytes() []byte {
	b := u.Bytes()
	return b[:]
}

// Timestamp returns the timestamp in milliseconds since the Unix epoch.
func (u ULID) Timestamp() uint64 {
	return binary.BigEndian.Uint64(u[0:8]) >> 16
}

// Random returns the 80-bit random component.
func (u ULID) Random() Uint128 {
	return Uint128{
		Hi: binary.BigEndian.Uint64(u[0:8]) & (1<<16 - 1),
		Lo: binary.BigEndian.Uint64(u[8:16]),
	}
}

// Time returns the timestamp as a time.Time.
func (u ULID) Time() time.Time {
	ms := u.Timestamp()
	return time.Unix(int64(ms/1000), int64(ms%1000)*int64(time.Millisecond))
}

// String returns the 26-character Crockford Base32 form.
func (u ULID) String() string {
	return Encode(u.Bytes())
}

// Parse creates a ULID from its 26-character string form. Lowercase input
// is accepted. It fails with ErrInvalidFormat on wrong length and
// ErrInvalidCharacter on symbols outside the Base32 alphabet.
func Parse(s string) (ULID, error) {
	raw, err := Decode(s)
	if err != nil {
		return Zero, err
	}
	return ULID(raw), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) ULID {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// IsValid reports whether s is a well-formed ULID string. It never fails;
// malformed input simply yields false.
func IsValid(s string) bool {
	_, err := Decode(s)
	return err == nil
}

// ParseTimestamp extracts the millisecond timestamp from a ULID string.
func ParseTimestamp(s string) (uint64, error) {
	u, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return u.Timestamp(), nil
}

// ParseRandomness extracts the 80-bit random component from a ULID string.
func ParseRandomness(s string) (Uint128, error) {
	u, err := Parse(s)
	if err != nil {
		return Uint128{}, err
	}
	return u.Random(), nil
}

// Compare returns:
//
//	-1 if u < other (u is earlier)
//	 0 if u == other
//	+1 if u > other (u is later)
//
// The order agrees with lexicographic order of the string form.
func (u ULID) Compare(other ULID) int {
	return bytes.Compare(u[:], other[:])
}

// Equal returns true if ULIDs are equal.
func (u ULID) Equal(other ULID) bool {
	return u == other
}

// Less returns true if u < other (for sorting).
func (u ULID) Less(other ULID) bool {
	return u.Compare(other) < 0
}

// IsZero returns true if the ULID is the zero value.
func (u ULID) IsZero() bool {
	return u == Zero
}

// Age returns how long ago this ULID was created.
func (u ULID) Age() time.Duration {
	return time.Since(u.Time())
}

// IsOlderThan returns true if this ULID is older than the given duration.
func (u ULID) IsOlderThan(d time.Duration) bool {
	return u.Age() > d
}

// IsNewerThan returns true if this ULID is newer than the given duration.
func (u ULID) IsNewerThan(d time.Duration) bool {
	return u.Age() < d
}

// JSON marshaling/unmarshaling support
func (u ULID) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

func (u *ULID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// SQL database support
func (u ULID) Value() (driver.Value, error) {
	return u.String(), nil
}

func (u *ULID) Scan(value interface{}) error {
	if value == nil {
		*u = Zero
		return nil
	}

	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into ULID", value)
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
