// Package commit implements Commit, the immutable record a CommitEngine
// produces from a ContentArea snapshot (spec §3, §4.4/§4.5).
package commit

import (
	"crypto/sha256"
	"sort"
	"strconv"
	"time"

	"github.com/nanovc/nanovc/pkg/content"
	"github.com/nanovc/nanovc/pkg/repopath"
)

// SnapshotEntry is one path's materialized content within a commit: the
// byte-array-index-interned bytes plus the content kind needed to
// reconstruct a typed Content on checkout (spec §4.4 step 1).
type SnapshotEntry struct {
	Bytes []byte
	Kind  content.Kind
}

// Parents is a commit's parent set: a distinguished first parent (nil for
// a root commit) plus zero or more additional parents, exactly as
// supplied by the caller (spec §3).
type Parents struct {
	First *Commit
	Other []*Commit
}

// Count returns the total number of parents.
func (p Parents) Count() int {
	n := 0
	if p.First != nil {
		n++
	}

	return n + len(p.Other)
}

// All returns every parent, first parent first, in order.
func (p Parents) All() []*Commit {
	all := make([]*Commit, 0, p.Count())
	if p.First != nil {
		all = append(all, p.First)
	}

	return append(all, p.Other...)
}

// Commit is an immutable snapshot of a ContentArea plus its provenance.
// Never mutated after construction; shared by every branch, tag, and
// child that points at it (spec §3's "Ownership" note).
type Commit struct {
	id        Hash
	timestamp time.Time
	message   string
	snapshot  map[repopath.Path]SnapshotEntry
	parents   Parents
}

// New builds a Commit from a snapshot already run through a ByteArrayIndex,
// a message, and the clock-supplied timestamp. Its Hash is a content
// address of every field, so builds with identical inputs are identical.
func New(snapshot map[repopath.Path]SnapshotEntry, message string, timestamp time.Time, parents Parents) *Commit {
	c := &Commit{
		timestamp: timestamp,
		message:   message,
		snapshot:  snapshot,
		parents:   parents,
	}
	c.id = computeHash(c)

	return c
}

// ID returns the commit's content-addressed hash.
func (c *Commit) ID() Hash { return c.id }

// Timestamp returns the clock-supplied commit time.
func (c *Commit) Timestamp() time.Time { return c.timestamp }

// Message returns the free-form commit message.
func (c *Commit) Message() string { return c.message }

// Parents returns the commit's parent set.
func (c *Commit) Parents() Parents { return c.parents }

// Snapshot returns the path→{bytes,kind} map materialized at commit time.
// The returned map must not be mutated by callers; Commit owns it.
func (c *Commit) Snapshot() map[repopath.Path]SnapshotEntry { return c.snapshot }

// IsRoot reports whether the commit has no parents.
func (c *Commit) IsRoot() bool { return c.parents.Count() == 0 }

// IsAfter reports whether c's timestamp is strictly later than other's,
// using clock for the comparison (spec §4.8's last-writer-wins policy).
func (c *Commit) IsAfter(other *Commit, clock Clock) bool {
	return clock.IsAfter(c.timestamp, other.timestamp)
}

func computeHash(c *Commit) Hash {
	h := sha256.New()

	paths := make([]string, 0, len(c.snapshot))
	for p := range c.snapshot {
		paths = append(paths, p.String())
	}

	sort.Strings(paths)

	for _, p := range paths {
		entry := c.snapshot[repopath.Path(p)]
		h.Write([]byte(p))
		h.Write([]byte{0})
		h.Write([]byte(strconv.Itoa(int(entry.Kind))))
		h.Write([]byte{0})
		h.Write(entry.Bytes)
		h.Write([]byte{0})
	}

	for _, parent := range c.parents.All() {
		h.Write(parent.id[:])
	}

	h.Write([]byte(c.timestamp.UTC().Format(time.RFC3339Nano)))
	h.Write([]byte{0})
	h.Write([]byte(c.message))

	var out Hash
	copy(out[:], h.Sum(nil))

	return out
}
