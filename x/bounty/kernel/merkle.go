// Package kernel implements the dataset-split program whose execution is proven
// off-chain. It verifies a private list of row hashes against a public Merkle
// commitment, shuffles the rows with a public seed and commits the roots of an
// 80/20 train/test split together with the train row indices.
//
// The package is pure: no I/O besides the explicit codecs, no clocks and no
// global state, so two honest executions on the same inputs always agree.
package kernel

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// HashSize is the byte width of row hashes, seeds and roots.
const HashSize = 32

// Hash is a 32-byte digest.
type Hash [HashSize]byte

// ZeroHash is the root of an empty leaf set.
var ZeroHash Hash

// String returns the lowercase hex encoding of h.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether h is the all-zero value.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// MarshalText encodes h as hex so JSON records stay readable.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText decodes a hex encoded hash.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseHash decodes a 64 character hex string into a Hash.
func ParseHash(s string) (Hash, error) {
	var h Hash
	bz, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("decode hash: %w", err)
	}
	if len(bz) != HashSize {
		return h, fmt.Errorf("hash must be %d bytes, got %d", HashSize, len(bz))
	}
	copy(h[:], bz)
	return h, nil
}

// HashPair returns SHA-256(left || right).
func HashPair(left, right Hash) Hash {
	hasher := sha256.New()
	hasher.Write(left[:])
	hasher.Write(right[:])

	var out Hash
	copy(out[:], hasher.Sum(nil))
	return out
}

// MerkleRoot folds leaves pairwise up to a single root. A level with an odd
// number of nodes pairs its last node with itself. The root of no leaves is
// ZeroHash and the root of one leaf is the leaf itself.
func MerkleRoot(leaves []Hash) Hash {
	if len(leaves) == 0 {
		return ZeroHash
	}

	level := make([]Hash, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		next := make([]Hash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			right := level[i]
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, HashPair(level[i], right))
		}
		level = next
	}

	return level[0]
}
