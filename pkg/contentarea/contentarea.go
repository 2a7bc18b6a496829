// Package contentarea implements ContentArea, a Path→Content mapping with
// a declared iteration order (spec §4.3). The ordering-specific mechanics
// live in the generic Area[C] engine (area.go and its four
// implementations); ContentArea itself is Area[content.Content] plus the
// putBytes/putString convenience constructors and the asListString
// diagnostic oracle the rest of the system's tests rely on.
package contentarea

import (
	"strings"

	"github.com/nanovc/nanovc/pkg/content"
	"github.com/nanovc/nanovc/pkg/repopath"
)

// Entry is one (path, content) pair, used by ReplaceAllContent's input
// stream and by Area's iteration callback.
type Entry[C any] struct {
	Path    repopath.Path
	Content C
}

// ContentArea is the Content-specialized area every engine in this module
// operates on.
type ContentArea struct {
	Area[content.Content]
	factory content.Factory
}

// New creates a ContentArea with the given ordering, backed by factory for
// putBytes/putString construction. A nil factory defaults to
// content.DefaultFactory().
func New(ordering Ordering, factory content.Factory) *ContentArea {
	if factory == nil {
		factory = content.DefaultFactory()
	}

	return &ContentArea{Area: NewArea[content.Content](ordering), factory: factory}
}

// PutBytes inserts raw byte content at path via the area's factory.
func (a *ContentArea) PutBytes(path repopath.Path, b []byte) {
	a.Put(path, a.factory(b, content.KindBytes))
}

// PutString inserts string content (default charset) at path via the
// area's factory.
func (a *ContentArea) PutString(path repopath.Path, s string) {
	a.Put(path, a.factory([]byte(s), content.KindString))
}

// AsListString renders a deterministic diagnostic: one "{path} :
// {content-repr}" line per entry, in the area's iteration order, joined by
// "\n". Used as the ground-truth oracle in tests (spec §4.3).
func (a *ContentArea) AsListString() string {
	var b strings.Builder

	first := true

	a.Iterate(func(path repopath.Path, c content.Content) bool {
		if !first {
			b.WriteByte('\n')
		}

		first = false
		b.WriteString(path.String())
		b.WriteString(" : ")
		b.WriteString(c.Repr())

		return true
	})

	return b.String()
}
