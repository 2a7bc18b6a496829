package byteindex

import (
	"sync"

	"github.com/nanovc/nanovc/pkg/safeconv"
)

// DefaultLRUMaxBytes is the default maximum memory size for an LRUIndex
// (256 MiB), matching the teacher's blob-cache default.
const DefaultLRUMaxBytes = 256 * 1024 * 1024

// bytesPerKB normalizes sizes for eviction-cost comparisons.
const bytesPerKB = 1024.0

// lruEvictionSampleSize bounds the eviction scan to a constant number of
// tail candidates instead of a full O(n) walk.
const lruEvictionSampleSize = 5

// lruNode is one interned array tracked in the doubly-linked LRU list.
type lruNode struct {
	key         wrapperKey
	data        []byte
	accessCount int64
	prev        *lruNode
	next        *lruNode
}

// evictionCost favors evicting large, infrequently accessed entries:
// accessCount normalized by size in KB, so a big rarely-touched blob scores
// lower than a small frequently-touched one.
func (n *lruNode) evictionCost() float64 {
	sizeKB := float64(len(n.data)) / bytesPerKB
	if sizeKB < 1 {
		sizeKB = 1
	}

	return float64(n.accessCount) / sizeKB
}

// LRUIndex is a memory-bounded ByteArrayIndex: it interns byte arrays like
// HashWrapperIndex, but evicts the least-valuable entries (by
// evictionCost) once the total interned size exceeds MaxBytes. Grounded on
// the teacher's pkg/cache/lru.go cross-commit blob cache: same
// doubly-linked LRU list, same sampled-tail size-aware eviction, adapted
// from a gitlib.Hash-keyed blob cache to a content-addressed
// ByteArrayIndex keyed by the same (length, structural-hash) wrapperKey
// hashwrapper.go uses.
//
// Unlike HashWrapperIndex, the "same input returns the same reference"
// guarantee only holds while the entry survives eviction: once evicted, a
// later AddOrLookup for byte-equal input interns a fresh copy. This
// bounded-memory trade-off is the point of choosing LRUIndex over
// HashWrapperIndex or ValueTreeIndex.
type LRUIndex struct {
	mu      sync.Mutex
	buckets map[wrapperKey][]*lruNode
	head    *lruNode
	tail    *lruNode

	// MaxBytes bounds the total size of interned arrays. Non-positive
	// falls back to DefaultLRUMaxBytes.
	MaxBytes int64

	currentSize int64
	stats       Stats
}

// NewLRUIndex creates an LRUIndex bounded at maxBytes (DefaultLRUMaxBytes
// if maxBytes <= 0).
func NewLRUIndex(maxBytes int64) *LRUIndex {
	if maxBytes <= 0 {
		maxBytes = DefaultLRUMaxBytes
	}

	return &LRUIndex{
		buckets:  make(map[wrapperKey][]*lruNode),
		MaxBytes: maxBytes,
	}
}

// AddOrLookup implements ByteArrayIndex.
func (idx *LRUIndex) AddOrLookup(b []byte) []byte {
	if b == nil {
		return nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if len(b) == 0 {
		idx.stats.LookupHits++

		return []byte{}
	}

	key := wrapperKey{length: safeconv.MustIntToUint32(len(b)), hash: structuralHash(b)}

	for _, n := range idx.buckets[key] {
		if bytesEqual(n.data, b) {
			idx.stats.LookupHits++
			n.accessCount++
			idx.moveToFront(n)

			return n.data
		}
	}

	owned := make([]byte, len(b))
	copy(owned, b)

	size := int64(len(owned))
	for idx.currentSize+size > idx.effectiveMax() && idx.tail != nil {
		idx.evictLowestCost()
	}

	node := &lruNode{key: key, data: owned, accessCount: 1}
	idx.buckets[key] = append(idx.buckets[key], node)
	idx.addToFront(node)
	idx.currentSize += size

	idx.stats.Entries++
	idx.stats.InternedBytes += size

	return owned
}

func (idx *LRUIndex) effectiveMax() int64 {
	if idx.MaxBytes <= 0 {
		return DefaultLRUMaxBytes
	}

	return idx.MaxBytes
}

// Clear implements ByteArrayIndex.
func (idx *LRUIndex) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.buckets = make(map[wrapperKey][]*lruNode)
	idx.head = nil
	idx.tail = nil
	idx.currentSize = 0
	idx.stats = Stats{}
}

// Stats implements ByteArrayIndex.
func (idx *LRUIndex) Stats() Stats {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	return idx.stats
}

func (idx *LRUIndex) moveToFront(n *lruNode) {
	if n == idx.head {
		return
	}

	idx.removeFromList(n)
	idx.addToFront(n)
}

func (idx *LRUIndex) addToFront(n *lruNode) {
	n.prev = nil
	n.next = idx.head

	if idx.head != nil {
		idx.head.prev = n
	}

	idx.head = n

	if idx.tail == nil {
		idx.tail = n
	}
}

func (idx *LRUIndex) removeFromList(n *lruNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		idx.head = n.next
	}

	if n.next != nil {
		n.next.prev = n.prev
	} else {
		idx.tail = n.prev
	}
}

func (idx *LRUIndex) evictLowestCost() {
	if idx.tail == nil {
		return
	}

	var candidates [lruEvictionSampleSize]*lruNode

	count := 0
	n := idx.tail

	for n != nil && count < lruEvictionSampleSize {
		candidates[count] = n
		count++
		n = n.prev
	}

	victim := candidates[0]
	lowestCost := victim.evictionCost()

	for i := 1; i < count; i++ {
		cost := candidates[i].evictionCost()
		if cost < lowestCost {
			lowestCost = cost
			victim = candidates[i]
		}
	}

	idx.removeFromList(victim)
	idx.removeFromBucket(victim)

	size := int64(len(victim.data))
	idx.currentSize -= size
	idx.stats.Entries--
	idx.stats.InternedBytes -= size
}

func (idx *LRUIndex) removeFromBucket(victim *lruNode) {
	bucket := idx.buckets[victim.key]

	for i, n := range bucket {
		if n == victim {
			idx.buckets[victim.key] = append(bucket[:i], bucket[i+1:]...)

			return
		}
	}
}
