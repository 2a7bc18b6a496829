package contentarea

import "github.com/nanovc/nanovc/pkg/repopath"

// unorderedArea is the Hash flavor: iteration order is Go's unspecified
// map order. Grounded on pkg/alg/mapx's Clone/SortedKeys map-handling idiom.
type unorderedArea[C any] struct {
	entries map[repopath.Path]C
}

func newUnorderedArea[C any]() *unorderedArea[C] {
	return &unorderedArea[C]{entries: make(map[repopath.Path]C)}
}

func (a *unorderedArea[C]) Put(path repopath.Path, c C) {
	a.entries[path.ToAbsolutePath()] = c
}

func (a *unorderedArea[C]) Get(path repopath.Path) (C, bool) {
	c, ok := a.entries[path.ToAbsolutePath()]

	return c, ok
}

func (a *unorderedArea[C]) Remove(path repopath.Path) {
	delete(a.entries, path.ToAbsolutePath())
}

func (a *unorderedArea[C]) Clear() {
	a.entries = make(map[repopath.Path]C)
}

func (a *unorderedArea[C]) Size() int {
	return len(a.entries)
}

func (a *unorderedArea[C]) HasContent(path repopath.Path) bool {
	_, ok := a.entries[path.ToAbsolutePath()]

	return ok
}

func (a *unorderedArea[C]) HasAnyContent() bool {
	return len(a.entries) > 0
}

func (a *unorderedArea[C]) Iterate(fn func(path repopath.Path, c C) bool) {
	for path, c := range a.entries {
		if !fn(path, c) {
			return
		}
	}
}

func (a *unorderedArea[C]) ReplaceAllContent(entries []Entry[C]) {
	a.Clear()

	for _, e := range entries {
		a.Put(e.Path, e.Content)
	}
}
