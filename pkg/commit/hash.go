package commit

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashSize is the size of a commit hash in bytes.
const HashSize = sha256.Size

// Hash identifies a Commit by the content it carries: parents, timestamp,
// message, and snapshot. Two commits built from identical inputs via
// New get the identical Hash (useful for tests asserting the
// end-to-end scenarios of spec §8 reproduce the same id). Grounded on
// pkg/gitlib.Hash's fixed-size-array-plus-hex-string shape, computed by
// content hashing rather than wrapping a libgit2 SHA-1 Oid.
type Hash [HashSize]byte

// ZeroHash is the hash of no commit.
func ZeroHash() Hash {
	return Hash{}
}

// String returns the lowercase hex representation of h.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether h is the zero hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}
