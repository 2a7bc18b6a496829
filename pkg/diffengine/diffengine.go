// Package diffengine implements DiffEngine (spec §4.7): like
// CompareEngine, but paths with byte-identical content in both areas are
// omitted entirely instead of recorded as Unchanged. Grounded on the same
// pkg/gitlib/changes.go delta-classification idiom as compareengine,
// adapted to two in-memory ContentAreas at whole-blob granularity.
package diffengine

import (
	"sort"
	"strings"

	"github.com/nanovc/nanovc/pkg/content"
	"github.com/nanovc/nanovc/pkg/contentarea"
	"github.com/nanovc/nanovc/pkg/repopath"
)

// ChangeKind is one path's classification in a Difference (spec §3).
type ChangeKind int

const (
	// Changed means the path is present in both areas with different content.
	Changed ChangeKind = iota
	// Added means the path is present only in the "to" area.
	Added
	// Deleted means the path is present only in the "from" area.
	Deleted
)

// String names k, for diagnostics.
func (k ChangeKind) String() string {
	switch k {
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

// Difference is a flat path→ChangeKind map covering only paths whose
// content differs between the two compared areas. Unlike Comparison, it
// never records an Unchanged entry.
type Difference map[repopath.Path]ChangeKind

// Compute classifies every path present in fromArea or toArea whose
// content actually differs (spec §4.7): paths only in fromArea are
// Deleted, paths in both areas with differing bytes are Changed, paths
// only in toArea are Added. Byte-identical paths are omitted from the
// result.
func Compute(fromArea, toArea *contentarea.ContentArea) Difference {
	result := make(Difference)

	fromArea.Iterate(func(path repopath.Path, fromContent content.Content) bool {
		toContent, ok := toArea.Get(path)
		switch {
		case !ok:
			result[path] = Deleted
		case !fromContent.Equal(toContent):
			result[path] = Changed
		}

		return true
	})

	toArea.Iterate(func(path repopath.Path, _ content.Content) bool {
		if _, fromHasIt := fromArea.Get(path); !fromHasIt {
			result[path] = Added
		}

		return true
	})

	return result
}

// SortedListString renders d deterministically: one "{path} : {ChangeKind}"
// line per entry, ascending by path.
func (d Difference) SortedListString() string {
	paths := make([]string, 0, len(d))
	for p := range d {
		paths = append(paths, p.String())
	}

	sort.Strings(paths)

	lines := make([]string, len(paths))
	for i, p := range paths {
		lines[i] = p + " : " + d[repopath.Path(p)].String()
	}

	return strings.Join(lines, "\n")
}
