package compareengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nanovc/nanovc/pkg/compareengine"
	"github.com/nanovc/nanovc/pkg/contentarea"
)

// TestCompute_ReproducesS2 reproduces spec §8 scenario S2 literally.
func TestCompute_ReproducesS2(t *testing.T) {
	t.Parallel()

	area1 := contentarea.New(contentarea.Insertion, nil)
	area1.PutString("/", "Root")
	area1.PutString("/a", "A1")
	area1.PutString("/b", "B1")
	area1.PutString("/c", "c1")

	area2 := contentarea.New(contentarea.Insertion, nil)
	area2.PutString("/", "New Root")
	area2.PutString("/a", "A2")
	area2.PutString("/b", "B1")

	got := compareengine.Compute(area1, area2)

	assert.Equal(t, compareengine.Comparison{
		"/":  compareengine.Changed,
		"/a": compareengine.Changed,
		"/b": compareengine.Unchanged,
		"/c": compareengine.Deleted,
	}, got)
}

func TestCompute_CoversUnionOfPaths(t *testing.T) {
	t.Parallel()

	from := contentarea.New(contentarea.Insertion, nil)
	from.PutString("/only-from", "x")

	to := contentarea.New(contentarea.Insertion, nil)
	to.PutString("/only-to", "y")

	got := compareengine.Compute(from, to)

	assert.Equal(t, compareengine.Deleted, got["/only-from"])
	assert.Equal(t, compareengine.Added, got["/only-to"])
	assert.Len(t, got, 2)
}

func TestSortedListString_IsDeterministicRegardlessOfOrdering(t *testing.T) {
	t.Parallel()

	c := compareengine.Comparison{
		"/c": compareengine.Deleted,
		"/a": compareengine.Changed,
		"/b": compareengine.Unchanged,
	}

	assert.Equal(t, "/a : Changed\n/b : Unchanged\n/c : Deleted", c.SortedListString())
}
