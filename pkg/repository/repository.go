// Package repository implements Repository, the owner of a commit graph's
// branch tips, tags, and dangling commits (spec §3, §4.4).
package repository

import (
	"errors"
	"sort"
	"sync"

	"github.com/nanovc/nanovc/pkg/commit"
	"github.com/nanovc/nanovc/pkg/toposort"
)

// ErrUnknownBranch is returned by operations that require an existing
// branch, per spec §4.5's failure model ("Merging with a nonexistent
// branch: fails with UnknownBranch").
var ErrUnknownBranch = errors.New("repository: unknown branch")

// ErrGraphNotConnected is returned by VerifyInvariants when a commit is
// unreachable from every branch tip, tag, and dangling commit — a
// violation of spec §3 invariant 1.
var ErrGraphNotConnected = errors.New("repository: commit graph has an orphan sub-DAG")

// Repository owns three maps and a set (spec §3): branchTips (name unique),
// tags (name unique, independent of branches), and danglingCommits (tips of
// chains not pointed at by any branch or tag). Not safe for concurrent
// mutation from multiple goroutines without external serialization (spec
// §5's "single-threaded cooperative" scheduling model) — the mutex here
// only protects against accidental concurrent misuse, not a designed-in
// concurrency contract.
type Repository struct {
	mu sync.Mutex

	commits     map[commit.Hash]*commit.Commit
	childCounts map[commit.Hash]int
	dangling    map[commit.Hash]*commit.Commit
	branchTips  map[string]*commit.Commit
	tags        map[string]*commit.Commit

	// graph mirrors the commit DAG (parent→child edges) purely for
	// VerifyInvariants' connectivity check; it is not consulted by any
	// hot-path operation.
	graph *toposort.Graph
}

// New creates an empty Repository.
func New() *Repository {
	return &Repository{
		commits:     make(map[commit.Hash]*commit.Commit),
		childCounts: make(map[commit.Hash]int),
		dangling:    make(map[commit.Hash]*commit.Commit),
		branchTips:  make(map[string]*commit.Commit),
		tags:        make(map[string]*commit.Commit),
		graph:       toposort.NewGraph(),
	}
}

// RecordCommit registers a newly created commit: every parent loses its
// dangling status (it now has a child) and the new commit becomes
// dangling until a branch or tag claims it (spec §4.5 step 3).
func (r *Repository) RecordCommit(c *commit.Commit) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.commits[c.ID()] = c
	r.graph.AddNode(c.ID().String())

	for _, parent := range c.Parents().All() {
		r.childCounts[parent.ID()]++
		delete(r.dangling, parent.ID())
		r.graph.AddEdge(parent.ID().String(), c.ID().String())
	}

	if !r.isClaimed(c.ID()) {
		r.dangling[c.ID()] = c
	}
}

// isClaimed reports whether some branch or tag currently points at hash.
// Caller must hold r.mu.
func (r *Repository) isClaimed(hash commit.Hash) bool {
	for _, tip := range r.branchTips {
		if tip.ID() == hash {
			return true
		}
	}

	for _, tag := range r.tags {
		if tag.ID() == hash {
			return true
		}
	}

	return false
}

// Lookup returns the commit with the given hash, if known.
func (r *Repository) Lookup(hash commit.Hash) (*commit.Commit, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.commits[hash]

	return c, ok
}

// SetBranchTip points branch name at c, creating the branch if it did not
// already exist, and un-dangles c if it was dangling (spec §4.4/§4.5). A
// previous tip that is left with no children and no other branch or tag
// becomes dangling.
func (r *Repository) SetBranchTip(name string, c *commit.Commit) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, existed := r.branchTips[name]
	r.branchTips[name] = c
	delete(r.dangling, c.ID())

	if existed && r.childCounts[old.ID()] == 0 && !r.isClaimed(old.ID()) {
		r.dangling[old.ID()] = old
	}
}

// BranchTip returns branch name's tip commit, or false if the branch does
// not exist (spec §4.5's "Missing branch: operations return absent").
func (r *Repository) BranchTip(name string) (*commit.Commit, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.branchTips[name]

	return c, ok
}

// BranchNames returns every known branch name, sorted for determinism.
func (r *Repository) BranchNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return sortedKeys(r.branchTips)
}

// Tag points tag name at c, creating the tag if it did not already exist,
// and un-dangles c if it was dangling. A commit the tag previously pointed
// at that is left with no children and no other claim becomes dangling.
// Tags are an independent namespace from branches (spec §4.5).
func (r *Repository) Tag(name string, c *commit.Commit) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, existed := r.tags[name]
	r.tags[name] = c
	delete(r.dangling, c.ID())

	if existed && r.childCounts[old.ID()] == 0 && !r.isClaimed(old.ID()) {
		r.dangling[old.ID()] = old
	}
}

// TagCommit returns tag name's commit, or false if the tag does not exist.
func (r *Repository) TagCommit(name string) (*commit.Commit, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.tags[name]

	return c, ok
}

// RemoveTag deletes tag name. If that was the commit's only claim and it
// has no children, the commit becomes dangling again.
func (r *Repository) RemoveTag(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.tags[name]
	if !ok {
		return
	}

	delete(r.tags, name)

	if r.childCounts[c.ID()] == 0 && !r.isClaimed(c.ID()) {
		r.dangling[c.ID()] = c
	}
}

// TagNames returns every known tag name, sorted for determinism.
func (r *Repository) TagNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return sortedKeys(r.tags)
}

// AllCommits returns every commit registered with the repository, in no
// particular order (spec §4.9's AllRepoCommits node).
func (r *Repository) AllCommits() []*commit.Commit {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*commit.Commit, 0, len(r.commits))
	for _, c := range r.commits {
		out = append(out, c)
	}

	return out
}

// DanglingCommits returns every commit with no children and no branch or
// tag reference, in no particular order.
func (r *Repository) DanglingCommits() []*commit.Commit {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*commit.Commit, 0, len(r.dangling))
	for _, c := range r.dangling {
		out = append(out, c)
	}

	return out
}

// VerifyInvariants checks spec §3 invariants 1 and 2 against the current
// state. Invariant 1: the graph must be acyclic with every parent
// registered (toposort's traversal covers every added node), and every
// commit without children must be a branch tip, a tag, or dangling, so
// that walking parents from those reaches every commit. Invariant 2:
// every dangling commit must genuinely have no children and no
// branch/tag reference.
func (r *Repository) VerifyInvariants() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.graph.Toposort()
	if !ok || len(order) != len(r.commits) {
		return ErrGraphNotConnected
	}

	for hash := range r.commits {
		_, isDangling := r.dangling[hash]
		if r.childCounts[hash] == 0 && !isDangling && !r.isClaimed(hash) {
			return ErrGraphNotConnected
		}
	}

	for hash, c := range r.dangling {
		if r.childCounts[hash] != 0 || r.isClaimed(c.ID()) {
			return errors.New("repository: dangling set contains a claimed or non-tip commit")
		}
	}

	return nil
}

func sortedKeys(m map[string]*commit.Commit) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
