package ulid

import (
	"encoding/json"
	"errors"
	"math/rand"
	"sort"
	"testing"
	"time"
)

// TestNew tests ULID creation and field validation
func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		timestamp   uint64
		random      Uint128
		shouldError bool
	}{
		{"valid ULID", 1469922850259, Uint128{Hi: 0xd676, Lo: 0x4c61efb99302bd5b}, false},
		{"max values", MaxTimestamp, MaxRandom, false},
		{"timestamp overflow", MaxTimestamp + 1, Uint128{}, true},
		{"random overflow", 0, Uint128{Hi: 1 << 16, Lo: 0}, true},
		{"zero values", 0, Uint128{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := New(tt.timestamp, tt.random)

			if tt.shouldError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if u.Timestamp() != tt.timestamp {
				t.Errorf("timestamp mismatch: got %d, want %d", u.Timestamp(), tt.timestamp)
			}
			if u.Random() != tt.random {
				t.Errorf("random mismatch: got %+v, want %+v", u.Random(), tt.random)
			}
		})
	}
}

// TestNewReferenceVector tests that field packing matches the reference
// identifier byte for byte.
func TestNewReferenceVector(t *testing.T) {
	u, err := New(refTimestamp, refRandom)
	if err != nil {
		t.Fatalf("failed to create ULID: %v", err)
	}
	if u.Bytes() != refRaw {
		t.Errorf("packed bytes mismatch: got %x, want %x", u.Bytes(), refRaw)
	}
	if u.String() != refString {
		t.Errorf("string mismatch: got %q, want %q", u.String(), refString)
	}
}

// TestBinaryEncoding tests binary serialization/deserialization
func TestBinaryEncoding(t *testing.T) {
	original, err := New(1469922850259, Uint128{Hi: 0x1234, Lo: 0x56789ABCDEF01234})
	if err != nil {
		t.Fatalf("failed to create ULID: %v", err)
	}

	b := original.Bytes()
	if len(b) != BinarySize {
		t.Errorf("binary size mismatch: got %d, want %d", len(b), BinarySize)
	}

	decoded := FromBytes(b)
	if !original.Equal(decoded) {
		t.Errorf("binary round-trip failed: original=%s, decoded=%s", original, decoded)
	}

	slice := original.ToBytes()
	if len(slice) != BinarySize {
		t.Errorf("ToBytes length = %d, want %d", len(slice), BinarySize)
	}
}

// TestParse tests parsing of ULID strings
func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "01ARZ3NDEKTSV4RRFFQ69G5FAV", false},
		{"lowercase", "01arz3ndektsv4rrffq69g5fav", false},
		{"zero", "00000000000000000000000000", false},
		{"25 chars", "01ARZ3NDEKTSV4RRFFQ69G5FA", true},
		{"27 chars", "01ARZ3NDEKTSV4RRFFQ69G5FAV0", true},
		{"invalid character", "01ARZ3NDEKTSVILLEGAL123456", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)

			if tt.wantErr && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// TestIsValid tests the non-failing validation probe
func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid", "01ARZ3NDEKTSV4RRFFQ69G5FAV", true},
		{"lowercase", "01arz3ndektsv4rrffq69g5fav", true},
		{"25 chars", "01ARZ3NDEKTSV4RRFFQ69G5FA", false},
		{"excluded characters", "01ARZ3NDEKTSVILLEGAL12345", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.input); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestMustParse tests the MustParse function
func TestMustParse(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Error("MustParse panicked on valid input")
		}
	}()

	u := MustParse(refString)
	if u.IsZero() {
		t.Error("parsed ULID is zero")
	}
}

// TestMustParsePanic tests that MustParse panics on invalid input
func TestMustParsePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParse should have panicked on invalid input")
		}
	}()

	MustParse("invalid")
}

// TestFieldExtraction tests timestamp and randomness extraction from text
func TestFieldExtraction(t *testing.T) {
	ts, err := ParseTimestamp(refString)
	if err != nil {
		t.Fatalf("ParseTimestamp failed: %v", err)
	}
	if ts != refTimestamp {
		t.Errorf("timestamp mismatch: got %d, want %d", ts, refTimestamp)
	}

	random, err := ParseRandomness(refString)
	if err != nil {
		t.Fatalf("ParseRandomness failed: %v", err)
	}
	if random != refRandom {
		t.Errorf("randomness mismatch: got %+v, want %+v", random, refRandom)
	}

	if _, err := ParseTimestamp("not a ulid"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("ParseTimestamp on malformed input: error = %v, want %v", err, ErrInvalidFormat)
	}
	if _, err := ParseRandomness("01ARZ3NDEKTSV4RRFFQ69G5FA!"); !errors.Is(err, ErrInvalidCharacter) {
		t.Errorf("ParseRandomness on malformed input: error = %v, want %v", err, ErrInvalidCharacter)
	}
}

// TestComparison tests ULID comparison operations
func TestComparison(t *testing.T) {
	earlier, _ := New(1000000, Uint128{})
	later, _ := New(2000000, Uint128{})
	same1, _ := New(1000000, Uint128{Lo: 42})
	same2, _ := New(1000000, Uint128{Lo: 42})

	if !earlier.Less(later) {
		t.Error("earlier ULID should be less than later ULID")
	}
	if later.Less(earlier) {
		t.Error("later ULID should not be less than earlier ULID")
	}

	if !same1.Equal(same2) {
		t.Error("identical ULIDs should be equal")
	}
	if earlier.Equal(later) {
		t.Error("different ULIDs should not be equal")
	}

	if earlier.Compare(later) != -1 {
		t.Error("earlier.Compare(later) should return -1")
	}
	if later.Compare(earlier) != 1 {
		t.Error("later.Compare(earlier) should return 1")
	}
	if same1.Compare(same2) != 0 {
		t.Error("same1.Compare(same2) should return 0")
	}

	// Same timestamp: the random component decides
	lowRand, _ := New(1000000, Uint128{Lo: 1})
	highRand, _ := New(1000000, Uint128{Hi: 1})
	if !lowRand.Less(highRand) {
		t.Error("smaller random component should sort first within a millisecond")
	}
}

// TestSortOrderMatchesStrings tests that sorting ULIDs and sorting their
// strings produce the same order.
func TestSortOrderMatchesStrings(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	ids := make([]ULID, 200)
	for i := range ids {
		var raw [BinarySize]byte
		rng.Read(raw[:])
		ids[i] = FromBytes(raw)
	}

	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	sort.Strings(strs)

	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })

	for i := range ids {
		if ids[i].String() != strs[i] {
			t.Fatalf("sort mismatch at index %d: ulid=%s, string=%s", i, ids[i], strs[i])
		}
	}
}

// TestZeroValue tests zero value handling
func TestZeroValue(t *testing.T) {
	var zero ULID
	if !zero.IsZero() {
		t.Error("zero value should be detected as zero")
	}
	if !zero.Equal(Zero) {
		t.Error("zero value should equal Zero constant")
	}

	nonZero := MustGenerate()
	if nonZero.IsZero() {
		t.Error("generated ULID should not be zero")
	}
}

// TestTimeOperations tests time-related methods
func TestTimeOperations(t *testing.T) {
	id := NewID()

	createdAt := id.Time()
	if createdAt.IsZero() {
		t.Error("Time() returned zero time")
	}

	age := id.Age()
	if age < 0 {
		t.Error("Age() returned negative duration")
	}

	if id.IsOlderThan(time.Hour) {
		t.Error("newly created ID should not be older than 1 hour")
	}
	if !id.IsNewerThan(time.Hour) {
		t.Error("newly created ID should be newer than 1 hour ago")
	}

	oldID, _ := New(1000, Uint128{Lo: 12345})
	if !oldID.IsOlderThan(time.Millisecond) {
		t.Error("old ID should be older than 1ms")
	}

	// Time round-trips through the millisecond timestamp
	u, _ := New(refTimestamp, Uint128{})
	if got := uint64(u.Time().UnixMilli()); got != refTimestamp {
		t.Errorf("Time() round-trip mismatch: got %d, want %d", got, refTimestamp)
	}
}

// TestJSONSupport tests JSON marshaling/unmarshaling
func TestJSONSupport(t *testing.T) {
	id := NewID()

	jsonBytes, err := id.MarshalJSON()
	if err != nil {
		t.Errorf("MarshalJSON failed: %v", err)
	}

	var id2 ULID
	if err := id2.UnmarshalJSON(jsonBytes); err != nil {
		t.Errorf("UnmarshalJSON failed: %v", err)
	}

	if !id.Equal(id2) {
		t.Error("JSON round-trip failed")
	}

	type TestStruct struct {
		ID   ULID   `json:"id"`
		Name string `json:"name"`
	}

	original := TestStruct{ID: id, Name: "test"}
	data, err := json.Marshal(original)
	if err != nil {
		t.Errorf("failed to marshal struct: %v", err)
	}

	var decoded TestStruct
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Errorf("failed to unmarshal struct: %v", err)
	}

	if !original.ID.Equal(decoded.ID) || original.Name != decoded.Name {
		t.Error("struct JSON round-trip failed")
	}

	var id3 ULID
	if err := id3.UnmarshalJSON([]byte(`"not a ulid"`)); err == nil {
		t.Error("UnmarshalJSON should fail on malformed ULID text")
	}
}

// TestSQLSupport tests database/sql integration
func TestSQLSupport(t *testing.T) {
	id := NewID()

	value, err := id.Value()
	if err != nil {
		t.Errorf("Value() failed: %v", err)
	}

	str, ok := value.(string)
	if !ok {
		t.Error("Value() should return a string")
	}

	var id2 ULID
	if err := id2.Scan(str); err != nil {
		t.Errorf("Scan() failed: %v", err)
	}
	if !id.Equal(id2) {
		t.Error("SQL round-trip failed")
	}

	var id3 ULID
	if err := id3.Scan([]byte(str)); err != nil {
		t.Errorf("Scan([]byte) failed: %v", err)
	}
	if !id.Equal(id3) {
		t.Error("SQL []byte round-trip failed")
	}

	var id4 ULID
	if err := id4.Scan(nil); err != nil {
		t.Errorf("Scan(nil) failed: %v", err)
	}
	if !id4.IsZero() {
		t.Error("Scan(nil) should result in zero value")
	}

	var id5 ULID
	if err := id5.Scan(123); err == nil {
		t.Error("Scan(int) should fail")
	}
}
