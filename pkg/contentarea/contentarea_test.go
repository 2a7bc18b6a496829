package contentarea_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanovc/nanovc/pkg/content"
	"github.com/nanovc/nanovc/pkg/contentarea"
	"github.com/nanovc/nanovc/pkg/repopath"
)

func orderings() []contentarea.Ordering {
	return []contentarea.Ordering{
		contentarea.Unordered,
		contentarea.Insertion,
		contentarea.Sorted,
	}
}

func TestPutGet_RoundTrips(t *testing.T) {
	t.Parallel()

	for _, ordering := range orderings() {
		t.Run(ordering.String(), func(t *testing.T) {
			t.Parallel()

			area := contentarea.New(ordering, nil)
			area.PutString("/a.txt", "hello")

			got, ok := area.Get("/a.txt")
			require.True(t, ok)
			assert.Equal(t, "hello", got.String())
		})
	}
}

func TestPut_CanonicalizesRelativePath(t *testing.T) {
	t.Parallel()

	for _, ordering := range orderings() {
		t.Run(ordering.String(), func(t *testing.T) {
			t.Parallel()

			area := contentarea.New(ordering, nil)
			area.PutString("a.txt", "hello")

			_, ok := area.Get("/a.txt")
			assert.True(t, ok, "relative path must canonicalize on put")
		})
	}
}

func TestRemove_IsIdempotent(t *testing.T) {
	t.Parallel()

	for _, ordering := range orderings() {
		t.Run(ordering.String(), func(t *testing.T) {
			t.Parallel()

			area := contentarea.New(ordering, nil)
			area.Remove("/missing")
			area.Remove("/missing")

			assert.Equal(t, 0, area.Size())
		})
	}
}

func TestPut_Replaces(t *testing.T) {
	t.Parallel()

	for _, ordering := range orderings() {
		t.Run(ordering.String(), func(t *testing.T) {
			t.Parallel()

			area := contentarea.New(ordering, nil)
			area.PutString("/a.txt", "v1")
			area.PutString("/a.txt", "v2")

			got, ok := area.Get("/a.txt")
			require.True(t, ok)
			assert.Equal(t, "v2", got.String())
			assert.Equal(t, 1, area.Size())
		})
	}
}

func TestSortedArea_IteratesAscending(t *testing.T) {
	t.Parallel()

	area := contentarea.New(contentarea.Sorted, nil)
	area.PutString("/c.txt", "c")
	area.PutString("/a.txt", "a")
	area.PutString("/b.txt", "b")

	var seen []string
	area.Iterate(func(path repopath.Path, _ content.Content) bool {
		seen = append(seen, path.String())

		return true
	})

	assert.Equal(t, []string{"/a.txt", "/b.txt", "/c.txt"}, seen)
}

func TestInsertionArea_IteratesInPutOrder(t *testing.T) {
	t.Parallel()

	area := contentarea.New(contentarea.Insertion, nil)
	area.PutString("/c.txt", "c")
	area.PutString("/a.txt", "a")
	area.PutString("/b.txt", "b")
	area.PutString("/a.txt", "a2") // re-put must not move position

	var seen []string
	area.Iterate(func(path repopath.Path, _ content.Content) bool {
		seen = append(seen, path.String())

		return true
	})

	assert.Equal(t, []string{"/c.txt", "/a.txt", "/b.txt"}, seen)
}

func TestSingleArea_PutReplacesPathAndContent(t *testing.T) {
	t.Parallel()

	area := contentarea.New(contentarea.Single, nil)
	area.PutString("/a.txt", "a")
	area.PutString("/b.txt", "b")

	assert.Equal(t, 1, area.Size())
	assert.False(t, area.HasContent("/a.txt"))

	got, ok := area.Get("/b.txt")
	require.True(t, ok)
	assert.Equal(t, "b", got.String())
}

func TestReplaceAllContent_ClearsThenInserts(t *testing.T) {
	t.Parallel()

	for _, ordering := range orderings() {
		t.Run(ordering.String(), func(t *testing.T) {
			t.Parallel()

			area := contentarea.New(ordering, nil)
			area.PutString("/stale.txt", "stale")

			area.ReplaceAllContent([]contentarea.Entry[content.Content]{})
			assert.Equal(t, 0, area.Size())
		})
	}
}

func TestAsListString_FormatsPathAndRepr(t *testing.T) {
	t.Parallel()

	area := contentarea.New(contentarea.Sorted, nil)
	area.PutString("/a.txt", "hi")
	area.PutBytes("/b.bin", []byte("raw"))

	assert.Equal(t, "/a.txt : 'hi'\n/b.bin : raw", area.AsListString())
}

func TestHasAnyContent(t *testing.T) {
	t.Parallel()

	for _, ordering := range orderings() {
		t.Run(ordering.String(), func(t *testing.T) {
			t.Parallel()

			area := contentarea.New(ordering, nil)
			assert.False(t, area.HasAnyContent())

			area.PutString("/a.txt", "a")
			assert.True(t, area.HasAnyContent())
		})
	}
}
