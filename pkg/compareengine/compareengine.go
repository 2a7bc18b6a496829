// Package compareengine implements CompareEngine, producing a
// path→ComparisonState map between two ContentAreas at whole-blob
// granularity (spec §4.6). Grounded on pkg/gitlib/changes.go's
// delta-classification shape (TreeDiff's switch over git2go.Delta* into
// an Insert/Delete/Modify Change), adapted to byte-equality comparison
// over two in-memory areas instead of two libgit2 trees.
package compareengine

import (
	"sort"
	"strings"

	"github.com/nanovc/nanovc/pkg/content"
	"github.com/nanovc/nanovc/pkg/contentarea"
	"github.com/nanovc/nanovc/pkg/repopath"
)

// State is one path's classification in a Comparison (spec §3).
type State int

const (
	// Unchanged means the path has byte-identical content in both areas.
	Unchanged State = iota
	// Changed means the path is present in both areas with different content.
	Changed
	// Added means the path is present only in the "to" area.
	Added
	// Deleted means the path is present only in the "from" area.
	Deleted
)

// String names s, for diagnostics.
func (s State) String() string {
	switch s {
	case Unchanged:
		return "Unchanged"
	case Changed:
		return "Changed"
	case Added:
		return "Added"
	case Deleted:
		return "Deleted"
	default:
		return "Unknown"
	}
}

// Comparison is a flat path→State map covering the union of paths present
// in either input area.
type Comparison map[repopath.Path]State

// Compute classifies every path present in fromArea or toArea (spec
// §4.6): paths only in fromArea are Deleted; paths in both are Changed or
// Unchanged by byte-equality; paths only in toArea are Added. Stateless
// and safe for concurrent use on disjoint areas.
func Compute(fromArea, toArea *contentarea.ContentArea) Comparison {
	result := make(Comparison)

	fromArea.Iterate(func(path repopath.Path, fromContent content.Content) bool {
		toContent, ok := toArea.Get(path)
		switch {
		case !ok:
			result[path] = Deleted
		case fromContent.Equal(toContent):
			result[path] = Unchanged
		default:
			result[path] = Changed
		}

		return true
	})

	toArea.Iterate(func(path repopath.Path, _ content.Content) bool {
		if _, seen := result[path]; !seen {
			result[path] = Added
		}

		return true
	})

	return result
}

// SortedListString renders c deterministically regardless of the
// originating areas' iteration order: one "{path} : {State}" line per
// entry, ascending by path (spec §9 point 4 — "asListString sorted by
// path" applies equally to a hash-backed comparison's rendering).
func (c Comparison) SortedListString() string {
	paths := make([]string, 0, len(c))
	for p := range c {
		paths = append(paths, p.String())
	}

	sort.Strings(paths)

	lines := make([]string, len(paths))
	for i, p := range paths {
		lines[i] = p + " : " + c[repopath.Path(p)].String()
	}

	return strings.Join(lines, "\n")
}
