package contentarea

import (
	"slices"

	"github.com/nanovc/nanovc/pkg/repopath"
)

// sortedArea is the Tree flavor: iteration is always ascending path-string
// order, maintained via a sorted key slice alongside the value map
// (grounded on pkg/alg/mapx.SortedKeys' slices.Sort idiom, kept incremental
// here instead of re-sorting on every iteration).
type sortedArea[C any] struct {
	entries map[repopath.Path]C
	keys    []repopath.Path
}

func newSortedArea[C any]() *sortedArea[C] {
	return &sortedArea[C]{entries: make(map[repopath.Path]C)}
}

func (a *sortedArea[C]) Put(path repopath.Path, c C) {
	path = path.ToAbsolutePath()

	if _, exists := a.entries[path]; !exists {
		idx, _ := slices.BinarySearchFunc(a.keys, path, comparePath)
		a.keys = slices.Insert(a.keys, idx, path)
	}

	a.entries[path] = c
}

func (a *sortedArea[C]) Get(path repopath.Path) (C, bool) {
	c, ok := a.entries[path.ToAbsolutePath()]

	return c, ok
}

func (a *sortedArea[C]) Remove(path repopath.Path) {
	path = path.ToAbsolutePath()

	if _, exists := a.entries[path]; !exists {
		return
	}

	delete(a.entries, path)

	if idx, found := slices.BinarySearchFunc(a.keys, path, comparePath); found {
		a.keys = slices.Delete(a.keys, idx, idx+1)
	}
}

func (a *sortedArea[C]) Clear() {
	a.entries = make(map[repopath.Path]C)
	a.keys = nil
}

func (a *sortedArea[C]) Size() int {
	return len(a.entries)
}

func (a *sortedArea[C]) HasContent(path repopath.Path) bool {
	_, ok := a.entries[path.ToAbsolutePath()]

	return ok
}

func (a *sortedArea[C]) HasAnyContent() bool {
	return len(a.entries) > 0
}

func (a *sortedArea[C]) Iterate(fn func(path repopath.Path, c C) bool) {
	for _, path := range a.keys {
		if !fn(path, a.entries[path]) {
			return
		}
	}
}

func (a *sortedArea[C]) ReplaceAllContent(entries []Entry[C]) {
	a.Clear()

	for _, e := range entries {
		a.Put(e.Path, e.Content)
	}
}

func comparePath(a, b repopath.Path) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
