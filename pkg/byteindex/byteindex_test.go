package byteindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanovc/nanovc/pkg/byteindex"
	"github.com/nanovc/nanovc/pkg/units"
)

// implementations under the shared §8 property suite.
func implementations() map[string]func() byteindex.ByteArrayIndex {
	return map[string]func() byteindex.ByteArrayIndex{
		"HashWrapperIndex": func() byteindex.ByteArrayIndex { return byteindex.NewHashWrapperIndex() },
		"ValueTreeIndex":   func() byteindex.ByteArrayIndex { return byteindex.NewValueTreeIndex() },
		"PassThroughIndex": func() byteindex.ByteArrayIndex { return byteindex.NewPassThroughIndex() },
		"LRUIndex":         func() byteindex.ByteArrayIndex { return byteindex.NewLRUIndex(0) },
	}
}

func TestAddOrLookup_NilInReturnsNil(t *testing.T) {
	t.Parallel()

	for name, newIdx := range implementations() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			idx := newIdx()
			assert.Nil(t, idx.AddOrLookup(nil))
		})
	}
}

func TestAddOrLookup_ZeroLengthSharesSingleton(t *testing.T) {
	t.Parallel()

	for name, newIdx := range implementations() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			idx := newIdx()

			first := idx.AddOrLookup([]byte{})
			second := idx.AddOrLookup([]byte{})

			require.NotNil(t, first)
			assert.Empty(t, first)
			assert.Empty(t, second)
		})
	}
}

func TestAddOrLookup_ValueEquality(t *testing.T) {
	t.Parallel()

	for name, newIdx := range implementations() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			idx := newIdx()

			a := []byte("hello, nanovc")
			b := []byte("hello, nanovc") // byte-equal, distinct backing array

			got1 := idx.AddOrLookup(a)
			got2 := idx.AddOrLookup(b)

			assert.Equal(t, got1, got2)
		})
	}
}

func TestAddOrLookup_DistinctValuesStayDistinct(t *testing.T) {
	t.Parallel()

	for name, newIdx := range implementations() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			idx := newIdx()

			got1 := idx.AddOrLookup([]byte("alpha"))
			got2 := idx.AddOrLookup([]byte("beta"))

			assert.NotEqual(t, got1, got2)
		})
	}
}

func TestAddOrLookup_SurvivesManyDistinctArrays(t *testing.T) {
	t.Parallel()

	for name, newIdx := range implementations() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			idx := newIdx()

			inputs := [][]byte{
				{},
				{0},
				{0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0, 0},
				{1, 2, 3, 4},
				{4, 3, 2, 1},
				[]byte("the quick brown fox jumps over the lazy dog"),
				{0xFF, 0x00, 0xFF, 0x00},
				{0x80, 0x80, 0x80, 0x80, 0x80},
			}

			for _, in := range inputs {
				got := idx.AddOrLookup(in)
				assert.Equal(t, in, got)
			}
		})
	}
}

func TestStats_EntriesTracksDistinctValues(t *testing.T) {
	t.Parallel()

	for name, newIdx := range implementations() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			idx := newIdx()

			idx.AddOrLookup([]byte("one"))
			idx.AddOrLookup([]byte("two"))
			idx.AddOrLookup([]byte("one")) // duplicate by value

			assert.Equal(t, 2, idx.Stats().Entries)
		})
	}
}

func TestClear_DropsInternedEntries(t *testing.T) {
	t.Parallel()

	for name, newIdx := range implementations() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			idx := newIdx()

			idx.AddOrLookup([]byte("one"))
			idx.Clear()

			assert.Equal(t, 0, idx.Stats().Entries)
		})
	}
}

func TestStats_StringFormatsHumanReadableSizes(t *testing.T) {
	t.Parallel()

	idx := byteindex.NewHashWrapperIndex()
	idx.AddOrLookup(make([]byte, 2*units.KiB))

	rendered := idx.Stats().String()
	assert.Contains(t, rendered, "entries")
	assert.Contains(t, rendered, "interned")
	assert.Contains(t, rendered, "hits")
}
