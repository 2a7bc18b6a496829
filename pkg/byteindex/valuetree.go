package byteindex

import "sync"

// maxStride is the widest byte stride the trie consumes per step.
const maxStride = 4

// ValueTreeIndex is the value-tree ByteArrayIndex (spec §4.1b): outer
// bucketing by (XOR of all bytes, SUM of all bytes), then a 1-4 byte
// stride trie over the full byte sequence. Grounded on the bucket/
// fingerprint hashing idiom of pkg/alg/cuckoo and pkg/alg/bloom.
//
// Signed-shift stride encoding. Per the spec's Open Question #1, stride
// values are computed by sign-extending each byte to a 32-bit int before
// shifting it into position and OR-ing the results — literally, not
// "fixed" with an 0xFF mask. This means two different byte sequences can
// occasionally alias to the same stride value; that aliasing is resolved
// (never silently merged) by comparing full byte values at the terminal
// node, per spec §4.1's "hash collisions handled by value-comparison at
// leaves".
type ValueTreeIndex struct {
	mu      sync.Mutex
	buckets map[bucketKey]*trieNode
	zero    []byte
	stats   Stats
}

// NewValueTreeIndex creates an empty ValueTreeIndex.
func NewValueTreeIndex() *ValueTreeIndex {
	return &ValueTreeIndex{
		buckets: make(map[bucketKey]*trieNode),
		zero:    []byte{},
	}
}

// bucketKey is the (XOR, SUM) outer bucketing key. Both are plain int32
// accumulators that intentionally overflow, per spec §4.1b.
type bucketKey struct {
	xorOfBytes int32
	sumOfBytes int32
}

func computeBucketKey(b []byte) bucketKey {
	var key bucketKey

	for _, by := range b {
		key.xorOfBytes ^= int32(by)
		key.sumOfBytes += int32(by)
	}

	return key
}

// strideSlot is the first-seen distinct stride value at a trie node, for
// one stride length. Additional distinct values at the same length spill
// into the node's lazily allocated overflow map.
type strideSlot struct {
	value int32
	child *trieNode
}

// trieNode is one level of the value-tree. shortcuts[n] holds the first
// distinct stride of length n+1 seen at this node; overflow[n], allocated
// only once a second distinct stride of that length appears, holds the rest.
type trieNode struct {
	shortcuts [maxStride]*strideSlot
	overflow  [maxStride]map[int32]*trieNode

	// leaves holds the byte arrays that terminate exactly at this node,
	// i.e. whose last stride consumed the final remaining bytes. More
	// than one entry here means two distinct byte arrays aliased to the
	// same stride path (see Open Question #1); each is kept distinct.
	leaves [][]byte
}

func (n *trieNode) childFor(strideLen int, value int32) *trieNode {
	slotIdx := strideLen - 1

	slot := n.shortcuts[slotIdx]
	if slot == nil {
		child := &trieNode{}
		n.shortcuts[slotIdx] = &strideSlot{value: value, child: child}

		return child
	}

	if slot.value == value {
		return slot.child
	}

	if n.overflow[slotIdx] == nil {
		n.overflow[slotIdx] = make(map[int32]*trieNode)
	}

	if child, ok := n.overflow[slotIdx][value]; ok {
		return child
	}

	child := &trieNode{}
	n.overflow[slotIdx][value] = child

	return child
}

// AddOrLookup implements ByteArrayIndex.
func (idx *ValueTreeIndex) AddOrLookup(b []byte) []byte {
	if b == nil {
		return nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if len(b) == 0 {
		idx.stats.LookupHits++

		return idx.zero
	}

	key := computeBucketKey(b)

	root, ok := idx.buckets[key]
	if !ok {
		root = &trieNode{}
		idx.buckets[key] = root
	}

	node := walkToTerminal(root, b)

	for _, existing := range node.leaves {
		if bytesEqual(existing, b) {
			idx.stats.LookupHits++

			return existing
		}
	}

	owned := make([]byte, len(b))
	copy(owned, b)
	node.leaves = append(node.leaves, owned)
	idx.stats.Entries++
	idx.stats.InternedBytes += int64(len(b))

	return owned
}

// Clear implements ByteArrayIndex.
func (idx *ValueTreeIndex) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.buckets = make(map[bucketKey]*trieNode)
	idx.stats = Stats{}
}

// Stats implements ByteArrayIndex.
func (idx *ValueTreeIndex) Stats() Stats {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	return idx.stats
}

// walkToTerminal descends root one stride at a time, preferring the widest
// remaining stride (4 bytes, or exactly what remains if fewer than 4),
// until the whole of b has been consumed, returning the terminal node.
func walkToTerminal(root *trieNode, b []byte) *trieNode {
	node := root
	remaining := b

	for len(remaining) > 0 {
		strideLen := maxStride
		if len(remaining) < maxStride {
			strideLen = len(remaining)
		}

		value := strideValue(remaining[:strideLen])
		node = node.childFor(strideLen, value)
		remaining = remaining[strideLen:]
	}

	return node
}

// strideValue encodes up to 4 bytes into a signed 32-bit integer by
// sign-extending each byte to int32 and OR-ing it into position, exactly
// as spec's Open Question #1 describes (not masked with 0xFF).
func strideValue(b []byte) int32 {
	var value int32

	n := len(b)
	for i, by := range b {
		shift := uint(8 * (n - 1 - i)) //nolint:gosec // n<=4, shift<=24, always in range
		value |= int32(int8(by)) << shift
	}

	return value
}
