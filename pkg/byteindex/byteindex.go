// Package byteindex implements ByteArrayIndex, the content-addressed
// byte-array interner that every ContentArea and Commit shares to avoid
// storing the same bytes twice.
package byteindex

import "github.com/dustin/go-humanize"

// ByteArrayIndex interns byte arrays by value. AddOrLookup returns the
// previously interned instance if any prior call was made with a
// byte-equal array; otherwise it returns the input unchanged and indexes
// it. Implementations are not required to be safe for concurrent use; the
// caller serializes access (spec §5).
type ByteArrayIndex interface {
	// AddOrLookup interns b, returning the canonical reference for its
	// value. A nil input returns nil without indexing anything. A
	// zero-length, non-nil input is special-cased to share a single
	// zero-length instance.
	AddOrLookup(b []byte) []byte

	// Clear drops every indexed array, invalidating the "canonical
	// reference" guarantee for references handed out before the call.
	Clear()

	// Stats reports bookkeeping counters for diagnostics.
	Stats() Stats
}

// Stats reports the size of an index's interned set and a rough estimate
// of bytes saved by deduplication, rendered with go-humanize by hosts that
// want a human-readable diagnostic.
type Stats struct {
	// Entries is the number of distinct byte-equal arrays interned.
	Entries int

	// InternedBytes is the total byte length of the distinct arrays.
	InternedBytes int64

	// LookupHits is the number of AddOrLookup calls that matched an
	// already-interned array (and thus avoided a second allocation).
	LookupHits int64

	// CompressedBytesSaved is the number of bytes LZ4 compression avoided
	// storing in the auxiliary compressed backing store, for entries at
	// or above HashWrapperIndex.CompressionThresholdBytes. Zero when
	// compression is disabled or never helped.
	CompressedBytesSaved int64
}

// String renders s as a one-line human-readable diagnostic, e.g.
// "42 entries, 1.2 MB interned, 100 hits, 300 kB saved by compression".
func (s Stats) String() string {
	saved := ""
	if s.CompressedBytesSaved > 0 {
		saved = ", " + humanize.Bytes(uint64(s.CompressedBytesSaved)) + " saved by compression" //nolint:gosec // never negative.
	}

	return humanize.Comma(int64(s.Entries)) + " entries, " +
		humanize.Bytes(uint64(s.InternedBytes)) + " interned, " + //nolint:gosec // never negative.
		humanize.Comma(s.LookupHits) + " hits" + saved
}
