package contentarea

import "github.com/nanovc/nanovc/pkg/repopath"

// Area is the ordering-agnostic engine behind ContentArea, generic over
// the content type C.
type Area[C any] interface {
	// Put inserts or replaces the content at path. Relative paths are
	// canonicalized first (spec §4.3 invariant b).
	Put(path repopath.Path, c C)

	// Get returns the content at path, or the zero value and false if absent.
	Get(path repopath.Path) (C, bool)

	// Remove deletes path; a no-op if path is absent (idempotent).
	Remove(path repopath.Path)

	// Clear empties the area.
	Clear()

	// Size returns the number of entries.
	Size() int

	// HasContent reports whether path is present.
	HasContent(path repopath.Path) bool

	// HasAnyContent reports whether the area holds any entry.
	HasAnyContent() bool

	// Iterate calls fn once per entry in the area's declared order,
	// stopping early if fn returns false.
	Iterate(fn func(path repopath.Path, c C) bool)

	// ReplaceAllContent atomically clears the area then inserts every
	// entry of entries, in order.
	ReplaceAllContent(entries []Entry[C])
}

// NewArea constructs the Area[C] implementation matching ordering.
func NewArea[C any](ordering Ordering) Area[C] {
	switch ordering {
	case Insertion:
		return newInsertionArea[C]()
	case Sorted:
		return newSortedArea[C]()
	case Single:
		return newSingleArea[C]()
	case Unordered:
		return newUnorderedArea[C]()
	default:
		return newUnorderedArea[C]()
	}
}
