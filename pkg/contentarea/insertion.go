package contentarea

import "github.com/nanovc/nanovc/pkg/repopath"

// insertionNode is an intrusive doubly-linked list node, grounded on
// pkg/alg/lru's entry[K,V] shape (map + prev/next pointers) minus the
// LRU reordering: insertionArea never moves a node once linked, so
// iteration always reflects first-insertion order even across replaces.
type insertionNode[C any] struct {
	path    repopath.Path
	content C
	prev    *insertionNode[C]
	next    *insertionNode[C]
}

// insertionArea is the Linked flavor: iterates in the order entries were
// first put; re-putting an existing path replaces its content without
// moving its position.
type insertionArea[C any] struct {
	nodes map[repopath.Path]*insertionNode[C]
	head  *insertionNode[C]
	tail  *insertionNode[C]
}

func newInsertionArea[C any]() *insertionArea[C] {
	return &insertionArea[C]{nodes: make(map[repopath.Path]*insertionNode[C])}
}

func (a *insertionArea[C]) Put(path repopath.Path, c C) {
	path = path.ToAbsolutePath()

	if n, exists := a.nodes[path]; exists {
		n.content = c

		return
	}

	n := &insertionNode[C]{path: path, content: c}
	a.nodes[path] = n

	if a.tail == nil {
		a.head, a.tail = n, n

		return
	}

	n.prev = a.tail
	a.tail.next = n
	a.tail = n
}

func (a *insertionArea[C]) Get(path repopath.Path) (C, bool) {
	n, ok := a.nodes[path.ToAbsolutePath()]
	if !ok {
		var zero C

		return zero, false
	}

	return n.content, true
}

func (a *insertionArea[C]) Remove(path repopath.Path) {
	path = path.ToAbsolutePath()

	n, ok := a.nodes[path]
	if !ok {
		return
	}

	delete(a.nodes, path)
	a.unlink(n)
}

func (a *insertionArea[C]) unlink(n *insertionNode[C]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		a.head = n.next
	}

	if n.next != nil {
		n.next.prev = n.prev
	} else {
		a.tail = n.prev
	}
}

func (a *insertionArea[C]) Clear() {
	a.nodes = make(map[repopath.Path]*insertionNode[C])
	a.head, a.tail = nil, nil
}

func (a *insertionArea[C]) Size() int {
	return len(a.nodes)
}

func (a *insertionArea[C]) HasContent(path repopath.Path) bool {
	_, ok := a.nodes[path.ToAbsolutePath()]

	return ok
}

func (a *insertionArea[C]) HasAnyContent() bool {
	return len(a.nodes) > 0
}

func (a *insertionArea[C]) Iterate(fn func(path repopath.Path, c C) bool) {
	for n := a.head; n != nil; n = n.next {
		if !fn(n.path, n.content) {
			return
		}
	}
}

func (a *insertionArea[C]) ReplaceAllContent(entries []Entry[C]) {
	a.Clear()

	for _, e := range entries {
		a.Put(e.Path, e.Content)
	}
}
