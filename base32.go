package ulid

import (
	"encoding/binary"
	"fmt"
)

// Alphabet is Crockford's Base32 alphabet (excludes I, L, O, U to reduce
// transcription ambiguity).
const Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// Base32 decode lookup table
var base32DecodeMap [256]byte

func init() {
	for i := range base32DecodeMap {
		base32DecodeMap[i] = 0xFF
	}
	for i, c := range Alphabet {
		base32DecodeMap[c] = byte(i)
		if c >= 'A' && c <= 'Z' {
			base32DecodeMap[c+'a'-'A'] = byte(i)
		}
	}
}

// Uint128 is an unsigned 128-bit integer, the carrier for the 80-bit random
// component and the generic Base32 integer entry points.
type Uint128 struct {
	Hi, Lo uint64
}

// Cmp returns -1, 0 or +1 comparing u against v numerically.
func (u Uint128) Cmp(v Uint128) int {
	switch {
	case u.Hi < v.Hi:
		return -1
	case u.Hi > v.Hi:
		return 1
	case u.Lo < v.Lo:
		return -1
	case u.Lo > v.Lo:
		return 1
	}
	return 0
}

// IsZero returns true if u is zero.
func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// Encode encodes 16 raw bytes as 26 uppercase Crockford Base32 characters,
// 5 bits per symbol, most significant bits first. Lexicographic order of
// the output equals numeric order of the input.
func Encode(raw [BinarySize]byte) string {
	return encode128(Uint128{
		Hi: binary.BigEndian.Uint64(raw[0:8]),
		Lo: binary.BigEndian.Uint64(raw[8:16]),
	})
}

// Decode decodes a 26-character Crockford Base32 string into 16 raw bytes.
// Lowercase input is accepted. It fails with ErrInvalidFormat on wrong
// length (or a first character above '7', which would denote a value beyond
// 128 bits) and ErrInvalidCharacter on symbols outside the alphabet.
func Decode(s string) ([BinarySize]byte, error) {
	var raw [BinarySize]byte
	if len(s) != EncodedSize {
		return raw, fmt.Errorf("%w: length %d, want %d", ErrInvalidFormat, len(s), EncodedSize)
	}

	v, err := decode128(s)
	if err != nil {
		return raw, err
	}

	binary.BigEndian.PutUint64(raw[0:8], v.Hi)
	binary.BigEndian.PutUint64(raw[8:16], v.Lo)
	return raw, nil
}

// EncodeBase32 encodes an arbitrary 128-bit integer as a fixed-width
// 26-character Crockford Base32 string.
func EncodeBase32(v Uint128) string {
	return encode128(v)
}

// DecodeBase32 decodes a Crockford Base32 string of up to 26 characters
// into a 128-bit integer.
func DecodeBase32(s string) (Uint128, error) {
	if len(s) == 0 || len(s) > EncodedSize {
		return Uint128{}, fmt.Errorf("%w: length %d, want 1 to %d", ErrInvalidFormat, len(s), EncodedSize)
	}
	return decode128(s)
}

func encode128(v Uint128) string {
	var buf [EncodedSize]byte
	for i := EncodedSize - 1; i >= 0; i-- {
		buf[i] = Alphabet[v.Lo&0x1F]
		v.Lo = v.Lo>>5 | v.Hi<<59
		v.Hi >>= 5
	}
	return string(buf[:])
}

func decode128(s string) (Uint128, error) {
	var v Uint128
	for i := 0; i < len(s); i++ {
		digit := base32DecodeMap[s[i]]
		if digit == 0xFF {
			return Uint128{}, fmt.Errorf("%w: %q", ErrInvalidCharacter, s[i])
		}
		// 26 symbols carry 130 bits; the first symbol of a full-width
		// string must leave the top 2 bits clear.
		if i == 0 && len(s) == EncodedSize && digit > 7 {
			return Uint128{}, fmt.Errorf("%w: value exceeds 128 bits", ErrInvalidFormat)
		}
		v.Hi = v.Hi<<5 | v.Lo>>59
		v.Lo = v.Lo<<5 | uint64(digit)
	}
	return v, nil
}
