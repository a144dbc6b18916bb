package ulid

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"os"
	"runtime"
	"sync"
	"time"
)

// chaCha8 provides fast random number generation for the default entropy
// source. The random component of a ULID carries no cryptographic
// guarantee; this trades unpredictability contracts for speed.
type chaCha8 struct {
	state [16]uint32
	block [16]uint32
	pos   int
}

func newChaCha8() *chaCha8 {
	c := &chaCha8{}
	c.seed()
	return c
}

// seed initializes the generator with random data
func (c *chaCha8) seed() {
	var seedBytes [32]byte
	if _, err := rand.Read(seedBytes[:]); err != nil {
		// Fall back to time-based seeding
		now := time.Now().UnixNano()
		binary.LittleEndian.PutUint64(seedBytes[0:8], uint64(now))
		binary.LittleEndian.PutUint64(seedBytes[8:16], uint64(now>>32))
		binary.LittleEndian.PutUint64(seedBytes[16:24], uint64(os.Getpid()))
		binary.LittleEndian.PutUint64(seedBytes[24:32], uint64(runtime.NumGoroutine()))
	}

	// ChaCha8 constants
	c.state[0] = 0x61707865
	c.state[1] = 0x3320646e
	c.state[2] = 0x79622d32
	c.state[3] = 0x6b206574

	// Key (256 bits)
	for i := 0; i < 8; i++ {
		c.state[4+i] = binary.LittleEndian.Uint32(seedBytes[i*4 : (i+1)*4])
	}

	// Counter and nonce
	c.state[12] = 0
	c.state[13] = 0
	c.state[14] = 0
	c.state[15] = 0

	c.pos = 64 // Force block generation on first use
}

// quarterRound performs a ChaCha quarter round
func quarterRound(a, b, c, d *uint32) {
	*a += *b
	*d ^= *a
	*d = (*d << 16) | (*d >> 16)
	*c += *d
	*b ^= *c
	*b = (*b << 12) | (*b >> 20)
	*a += *b
	*d ^= *a
	*d = (*d << 8) | (*d >> 24)
	*c += *d
	*b ^= *c
	*b = (*b << 7) | (*b >> 25)
}

// generateBlock creates a new 64-byte block
func (c *chaCha8) generateBlock() {
	copy(c.block[:], c.state[:])

	// 8 rounds (ChaCha8)
	for i := 0; i < 4; i++ {
		// Column rounds
		quarterRound(&c.block[0], &c.block[4], &c.block[8], &c.block[12])
		quarterRound(&c.block[1], &c.block[5], &c.block[9], &c.block[13])
		quarterRound(&c.block[2], &c.block[6], &c.block[10], &c.block[14])
		quarterRound(&c.block[3], &c.block[7], &c.block[11], &c.block[15])

		// Diagonal rounds
		quarterRound(&c.block[0], &c.block[5], &c.block[10], &c.block[15])
		quarterRound(&c.block[1], &c.block[6], &c.block[11], &c.block[12])
		quarterRound(&c.block[2], &c.block[7], &c.block[8], &c.block[13])
		quarterRound(&c.block[3], &c.block[4], &c.block[9], &c.block[14])
	}

	// Add original state
	for i := 0; i < 16; i++ {
		c.block[i] += c.state[i]
	}

	// Increment counter
	c.state[12]++
	if c.state[12] == 0 {
		c.state[13]++
	}

	c.pos = 0
}

// Read fills the provided byte slice with random data. It never blocks and
// never fails.
func (c *chaCha8) Read(p []byte) (n int, err error) {
	n = len(p)
	for i := 0; i < len(p); i++ {
		if c.pos >= 64 {
			c.generateBlock()
		}
		p[i] = byte(c.block[c.pos/4] >> (8 * (c.pos % 4)))
		c.pos++
	}
	return n, nil
}

var chaCha8Pool = sync.Pool{
	New: func() interface{} {
		return newChaCha8()
	},
}

// pooledEntropy is the default entropy source: a pool of seeded ChaCha8
// generators, safe for concurrent use.
type pooledEntropy struct{}

func (pooledEntropy) Read(p []byte) (int, error) {
	c := chaCha8Pool.Get().(*chaCha8)
	n, err := c.Read(p)
	chaCha8Pool.Put(c)
	return n, err
}

// DefaultEntropy returns the entropy source used by generators constructed
// with NewGenerator.
func DefaultEntropy() io.Reader {
	return pooledEntropy{}
}
