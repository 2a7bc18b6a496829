package byteindex

import "sync"

// PassThroughIndex is a no-op ByteArrayIndex: AddOrLookup copies and
// returns a fresh slice on every call, never deduplicating. It exists for
// hosts that want ContentArea/Commit's sharing contract without paying
// interning's bookkeeping cost, and as a baseline to validate the other
// implementations' behavior against (spec §4.1's "pass_through" kind).
type PassThroughIndex struct {
	mu    sync.Mutex
	stats Stats
}

// NewPassThroughIndex creates a PassThroughIndex.
func NewPassThroughIndex() *PassThroughIndex {
	return &PassThroughIndex{}
}

// AddOrLookup implements ByteArrayIndex. It never returns a reference
// handed to a previous caller; every non-nil input is freshly copied.
func (idx *PassThroughIndex) AddOrLookup(b []byte) []byte {
	if b == nil {
		return nil
	}

	owned := make([]byte, len(b))
	copy(owned, b)

	idx.mu.Lock()
	idx.stats.Entries++
	idx.stats.InternedBytes += int64(len(b))
	idx.mu.Unlock()

	return owned
}

// Clear implements ByteArrayIndex.
func (idx *PassThroughIndex) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.stats = Stats{}
}

// Stats implements ByteArrayIndex.
func (idx *PassThroughIndex) Stats() Stats {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	return idx.stats
}
