package contentarea

import "github.com/nanovc/nanovc/pkg/repopath"

// singleArea is the SingleContent flavor: holds exactly one (path,
// content) pair or none. Put replaces both the path and the content,
// per spec §4.3.
type singleArea[C any] struct {
	present bool
	path    repopath.Path
	content C
}

func newSingleArea[C any]() *singleArea[C] {
	return &singleArea[C]{}
}

func (a *singleArea[C]) Put(path repopath.Path, c C) {
	a.present = true
	a.path = path.ToAbsolutePath()
	a.content = c
}

func (a *singleArea[C]) Get(path repopath.Path) (C, bool) {
	if !a.present || a.path != path.ToAbsolutePath() {
		var zero C

		return zero, false
	}

	return a.content, true
}

func (a *singleArea[C]) Remove(path repopath.Path) {
	if a.present && a.path == path.ToAbsolutePath() {
		a.Clear()
	}
}

func (a *singleArea[C]) Clear() {
	var zero C

	a.present = false
	a.path = ""
	a.content = zero
}

func (a *singleArea[C]) Size() int {
	if a.present {
		return 1
	}

	return 0
}

func (a *singleArea[C]) HasContent(path repopath.Path) bool {
	return a.present && a.path == path.ToAbsolutePath()
}

func (a *singleArea[C]) HasAnyContent() bool {
	return a.present
}

func (a *singleArea[C]) Iterate(fn func(path repopath.Path, c C) bool) {
	if a.present {
		fn(a.path, a.content)
	}
}

func (a *singleArea[C]) ReplaceAllContent(entries []Entry[C]) {
	a.Clear()

	if len(entries) == 0 {
		return
	}

	last := entries[len(entries)-1]
	a.Put(last.Path, last.Content)
}
