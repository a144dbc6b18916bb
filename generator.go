package ulid

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// clockStep classifies one generation call against the generator's last
// emitted timestamp. Keeping the decision explicit makes the monotonic
// invariant testable in isolation from entropy sourcing.
type clockStep int

const (
	clockAdvance clockStep = iota // timestamp moved forward: draw fresh randomness
	clockCollide                  // same millisecond: increment randomness
	clockRegress                  // clock moved backwards: treated as a collision
)

// Generator produces ULIDs with guaranteed uniqueness and strict monotonic
// ordering. All state mutations happen under a single mutex, so one
// Generator may be shared by any number of goroutines.
//
// Monotonicity holds per instance only. Independent per-goroutine
// generators avoid lock contention but give up cross-goroutine ordering;
// the default shared instance is the right choice unless generation shows
// up in a profile.
type Generator struct {
	mu            sync.Mutex
	lastTimestamp uint64
	lastRandom    [randomSize]byte
	primed        bool
	entropy       io.Reader
}

// NewGenerator creates a generator backed by the default entropy source.
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(DefaultEntropy())
}

// NewGeneratorWithEntropy creates a generator that draws its random
// component from r. The reader must be fast and non-blocking; it is called
// inside the generation critical section. Deterministic readers are useful
// in tests.
func NewGeneratorWithEntropy(r io.Reader) *Generator {
	return &Generator{entropy: r}
}

// Generate creates a new ULID using the current wall-clock time.
func (g *Generator) Generate() (ULID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.next(nowMillis())
}

// GenerateWithTimestamp creates a new ULID for the given millisecond
// timestamp. It flows through the same monotonic state as Generate: a
// timestamp at or before the last emitted one takes the collision branch,
// so the result's timestamp field reflects ms exactly only when ms advances
// past the generator's last emission (always true for a fresh generator).
func (g *Generator) GenerateWithTimestamp(ms uint64) (ULID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.next(ms)
}

// MustGenerate is like Generate but panics on error.
func (g *Generator) MustGenerate() ULID {
	u, err := g.Generate()
	if err != nil {
		panic(err)
	}
	return u
}

// next advances the monotonic state machine. Caller holds g.mu.
func (g *Generator) next(now uint64) (ULID, error) {
	if now > MaxTimestamp {
		return Zero, fmt.Errorf("%w: %d exceeds maximum %d", ErrTimestampOverflow, now, uint64(MaxTimestamp))
	}

	switch g.step(now) {
	case clockAdvance:
		if _, err := io.ReadFull(g.entropy, g.lastRandom[:]); err != nil {
			return Zero, fmt.Errorf("ulid: entropy read failed: %w", err)
		}
		g.lastTimestamp = now
		g.primed = true
	case clockCollide, clockRegress:
		// The emitted timestamp stays frozen at lastTimestamp. On
		// regression that means the field no longer reflects wall-clock
		// time for this call, which is the price of staying monotonic.
		if err := g.bump(); err != nil {
			return Zero, err
		}
	}

	return makeULID(g.lastTimestamp, g.lastRandom), nil
}

// step classifies now against the last emitted timestamp. The first call
// always advances, whatever the timestamp.
func (g *Generator) step(now uint64) clockStep {
	switch {
	case !g.primed, now > g.lastTimestamp:
		return clockAdvance
	case now == g.lastTimestamp:
		return clockCollide
	default:
		return clockRegress
	}
}

// bump increments the 80-bit random component by one. Wraparound would
// reissue an earlier value and break ordering, so exhaustion is an error
// and the state is left saturated.
func (g *Generator) bump() error {
	for i := randomSize - 1; i >= 0; i-- {
		g.lastRandom[i]++
		if g.lastRandom[i] != 0 {
			return nil
		}
	}
	for i := range g.lastRandom {
		g.lastRandom[i] = 0xFF
	}
	return ErrRandomnessExhausted
}

// GenerateBatch creates multiple ULIDs under a single lock acquisition.
func (g *Generator) GenerateBatch(count int) ([]ULID, error) {
	if count <= 0 {
		return nil, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	result := make([]ULID, 0, count)
	for i := 0; i < count; i++ {
		u, err := g.next(nowMillis())
		if err != nil {
			return result, err
		}
		result = append(result, u)
	}
	return result, nil
}

func makeULID(ts uint64, random [randomSize]byte) ULID {
	var u ULID
	u[0] = byte(ts >> 40)
	u[1] = byte(ts >> 32)
	u[2] = byte(ts >> 24)
	u[3] = byte(ts >> 16)
	u[4] = byte(ts >> 8)
	u[5] = byte(ts)
	copy(u[timestampSize:], random[:])
	return u
}

func nowMillis() uint64 {
	return uint64(time.Now().UnixMilli())
}

// Convenience functions

// Default generator instance
var defaultGenerator = NewGenerator()

// Generate creates a ULID using the default generator.
func Generate() (ULID, error) {
	return defaultGenerator.Generate()
}

// GenerateWithTimestamp creates a ULID for the given millisecond timestamp
// using the default generator.
func GenerateWithTimestamp(ms uint64) (ULID, error) {
	return defaultGenerator.GenerateWithTimestamp(ms)
}

// MustGenerate creates a ULID using the default generator, panicking on
// error.
func MustGenerate() ULID {
	return defaultGenerator.MustGenerate()
}

// NewID creates a new ULID.
func NewID() ULID {
	return MustGenerate()
}

// GenerateBatch creates multiple ULIDs using the default generator.
func GenerateBatch(count int) ([]ULID, error) {
	return defaultGenerator.GenerateBatch(count)
}

// MustGenerateBatch creates multiple ULIDs, panicking on error.
func MustGenerateBatch(count int) []ULID {
	ids, err := GenerateBatch(count)
	if err != nil {
		panic(err)
	}
	return ids
}

// NewBatch creates multiple ULIDs.
func NewBatch(count int) []ULID {
	return MustGenerateBatch(count)
}
