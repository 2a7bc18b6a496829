package byteindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanovc/nanovc/pkg/byteindex"
)

func TestHashWrapperIndex_ReturnsSameReferenceForByteEqualInput(t *testing.T) {
	t.Parallel()

	idx := byteindex.NewHashWrapperIndex()

	a := []byte("repeated payload")
	b := []byte("repeated payload")

	got1 := idx.AddOrLookup(a)
	got2 := idx.AddOrLookup(b)

	require.Equal(t, got1, got2)
	assert.Same(t, &got1[0], &got2[0], "a second AddOrLookup with byte-equal input must return the exact interned reference")
}

func TestHashWrapperIndex_LookupHitsIncrementOnRepeat(t *testing.T) {
	t.Parallel()

	idx := byteindex.NewHashWrapperIndex()

	idx.AddOrLookup([]byte("payload"))
	idx.AddOrLookup([]byte("payload"))
	idx.AddOrLookup([]byte("payload"))

	assert.Equal(t, int64(2), idx.Stats().LookupHits)
}

func TestHashWrapperIndex_CompressionRoundTrips(t *testing.T) {
	t.Parallel()

	idx := byteindex.NewHashWrapperIndex()
	idx.CompressionThresholdBytes = 16

	repetitive := make([]byte, 256)
	for i := range repetitive {
		repetitive[i] = byte(i % 4)
	}

	got := idx.AddOrLookup(repetitive)
	assert.Equal(t, repetitive, got, "AddOrLookup always returns the decompressed form regardless of internal storage")

	// Interning the same value again must still hit the same canonical
	// reference, proving compression never breaks idempotence.
	got2 := idx.AddOrLookup(repetitive)
	assert.Same(t, &got[0], &got2[0])
}

func TestHashWrapperIndex_CompressionDisabledByDefault(t *testing.T) {
	t.Parallel()

	idx := byteindex.NewHashWrapperIndex()

	repetitive := make([]byte, 256)
	idx.AddOrLookup(repetitive)

	assert.Equal(t, int64(0), idx.Stats().CompressedBytesSaved)
}
