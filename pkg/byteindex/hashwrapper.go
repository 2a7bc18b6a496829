package byteindex

import (
	"errors"
	"hash/fnv"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/nanovc/nanovc/pkg/safeconv"
)

// errIncompressible is returned internally when LZ4 found no savings; it
// never escapes the package, compression simply falls back to plain storage.
var errIncompressible = errors.New("byteindex: block did not compress")

// wrapperKey is the "(length, structural-hash)" key of spec §4.1a. Two
// byte-equal inputs always hash to the same wrapperKey; two byte-unequal
// inputs may collide on it, so the bucket still stores the original bytes
// for a final value comparison.
type wrapperKey struct {
	length uint32
	hash   uint64
}

// entry is one bucket slot: the canonical bytes plus, when compression is
// enabled and the array was large enough to compress, the compressed form.
// decompressed always holds the slice AddOrLookup returns, so repeated
// lookups return the exact same reference (idempotence), never a freshly
// inflated copy.
type entry struct {
	decompressed []byte
	compressed   []byte // nil unless this entry is stored compressed.
}

// HashWrapperIndex is the hash-wrapper ByteArrayIndex: a single map keyed
// by a precomputed (length, hash) wrapper, with byte-value comparison at
// the bucket to resolve hash collisions. Grounded on the double-hashing
// idiom of pkg/alg/bloom and the bucketed fingerprint tables of
// pkg/alg/cuckoo (hash/fnv, explicit collision resolution).
//
// When CompressionThresholdBytes is positive, interned arrays at or above
// that size also get an LZ4-compressed copy stored beside the plain copy;
// lookups compare against, and AddOrLookup always returns, the plain
// (decompressed) bytes, so equality and reference semantics are
// unaffected. Compression is off by default.
type HashWrapperIndex struct {
	mu      sync.Mutex
	buckets map[wrapperKey][]*entry

	// CompressionThresholdBytes enables LZ4 compression of the stored
	// copy for arrays at or above this size. Zero disables compression.
	CompressionThresholdBytes int

	zeroLength []byte
	stats      Stats
}

// NewHashWrapperIndex creates an empty HashWrapperIndex.
func NewHashWrapperIndex() *HashWrapperIndex {
	return &HashWrapperIndex{
		buckets:    make(map[wrapperKey][]*entry),
		zeroLength: []byte{},
	}
}

// AddOrLookup implements ByteArrayIndex.
func (idx *HashWrapperIndex) AddOrLookup(b []byte) []byte {
	if b == nil {
		return nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if len(b) == 0 {
		idx.stats.LookupHits++

		return idx.zeroLength
	}

	key := wrapperKey{
		length: safeconv.MustIntToUint32(len(b)),
		hash:   structuralHash(b),
	}

	for _, e := range idx.buckets[key] {
		if bytesEqual(e.decompressed, b) {
			idx.stats.LookupHits++

			return e.decompressed
		}
	}

	e := idx.intern(b)
	idx.buckets[key] = append(idx.buckets[key], e)
	idx.stats.Entries++
	idx.stats.InternedBytes += int64(len(b))

	if e.compressed != nil {
		idx.stats.CompressedBytesSaved += int64(len(e.decompressed) - len(e.compressed))
	}

	return e.decompressed
}

// Clear implements ByteArrayIndex.
func (idx *HashWrapperIndex) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.buckets = make(map[wrapperKey][]*entry)
	idx.stats = Stats{}
}

// Stats implements ByteArrayIndex.
func (idx *HashWrapperIndex) Stats() Stats {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	return idx.stats
}

func (idx *HashWrapperIndex) intern(b []byte) *entry {
	owned := make([]byte, len(b))
	copy(owned, b)

	if idx.CompressionThresholdBytes <= 0 || len(owned) < idx.CompressionThresholdBytes {
		return &entry{decompressed: owned}
	}

	compressed, err := compressLZ4(owned)
	if err != nil || !roundTrips(owned, compressed) {
		// Compression is a memory optimization, never load-bearing;
		// fall back to storing the plain copy.
		return &entry{decompressed: owned}
	}

	return &entry{decompressed: owned, compressed: compressed}
}

// roundTrips verifies that decompressing compressed reproduces original
// exactly, so a corrupt or mis-sized compressed block is never trusted as
// the entry's compressed backing form.
func roundTrips(original, compressed []byte) bool {
	buf := make([]byte, len(original))

	n, err := lz4.UncompressBlock(compressed, buf)
	if err != nil || n != len(original) {
		return false
	}

	return bytesEqual(buf, original)
}

func compressLZ4(b []byte) ([]byte, error) {
	buf := make([]byte, lz4.CompressBlockBound(len(b)))

	n, err := lz4.CompressBlock(b, buf, nil)
	if err != nil {
		return nil, err
	}

	if n == 0 || n >= len(b) {
		// Incompressible input; compressing would waste memory, not save it.
		return nil, errIncompressible
	}

	return buf[:n], nil
}

func structuralHash(b []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(b)

	return h.Sum64()
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
