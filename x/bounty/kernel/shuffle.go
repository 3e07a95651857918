package kernel

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20"
)

// seedNonce is fixed so the keystream depends on the public seed alone.
var seedNonce [chacha20.NonceSize]byte

// Rand is a deterministic generator over the ChaCha20 keystream keyed by a
// 32-byte seed.
type Rand struct {
	cipher *chacha20.Cipher
	buf    [8]byte
}

// NewRand returns a generator keyed by seed.
func NewRand(seed Hash) (*Rand, error) {
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], seedNonce[:])
	if err != nil {
		return nil, fmt.Errorf("init chacha20: %w", err)
	}
	return &Rand{cipher: c}, nil
}

// Uint64 returns the next 8 keystream bytes as a little-endian integer.
func (r *Rand) Uint64() uint64 {
	clear(r.buf[:])
	r.cipher.XORKeyStream(r.buf[:], r.buf[:])
	return binary.LittleEndian.Uint64(r.buf[:])
}

// Below returns a uniform value in [0, bound). bound must be positive.
// Draws in the biased tail of the u64 range are rejected.
func (r *Rand) Below(bound uint64) uint64 {
	if bound == 0 {
		panic("kernel: Below called with zero bound")
	}
	threshold := -bound % bound
	for {
		x := r.Uint64()
		if x >= threshold {
			return x % bound
		}
	}
}

// Permutation returns the seeded Fisher–Yates permutation of [0, n). Element i
// of the result is the original index placed at position i.
func Permutation(seed Hash, n int) ([]uint32, error) {
	if uint64(n) > MaxRows {
		return nil, ErrTooManyRows
	}

	rng, err := NewRand(seed)
	if err != nil {
		return nil, err
	}

	indices := make([]uint32, n)
	for i := range indices {
		indices[i] = uint32(i)
	}

	for i := n - 1; i > 0; i-- {
		j := rng.Below(uint64(i) + 1)
		indices[i], indices[j] = indices[j], indices[i]
	}

	return indices, nil
}

// Shuffle applies the seeded permutation to a copy of rows and returns the
// shuffled rows with the original index of each position.
func Shuffle(rows []Hash, seed Hash) ([]Hash, []uint32, error) {
	perm, err := Permutation(seed, len(rows))
	if err != nil {
		return nil, nil, err
	}

	shuffled := make([]Hash, len(rows))
	for pos, orig := range perm {
		shuffled[pos] = rows[orig]
	}

	return shuffled, perm, nil
}
