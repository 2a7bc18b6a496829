// Package commitengine implements the commit/checkout/branch/tag
// operations of spec §4.4/§4.5 as stateless functions: every collaborator
// (repo, index, clock, factories) is passed explicitly on every call, per
// spec §9's "stateless engines" design note, so a single engine can safely
// serve many repositories.
package commitengine

import (
	"github.com/nanovc/nanovc/pkg/byteindex"
	"github.com/nanovc/nanovc/pkg/commit"
	"github.com/nanovc/nanovc/pkg/content"
	"github.com/nanovc/nanovc/pkg/contentarea"
	"github.com/nanovc/nanovc/pkg/repopath"
	"github.com/nanovc/nanovc/pkg/repository"
)

// Commit snapshots area through index, stamps it with clock's current
// time, and records it against repo with the given parents (spec §4.5
// steps 1-3). It does not touch any branch or tag; use CommitToBranch for
// the common "advance a named branch" case.
func Commit(
	area *contentarea.ContentArea,
	message string,
	repo *repository.Repository,
	index byteindex.ByteArrayIndex,
	clock commit.Clock,
	parents commit.Parents,
) *commit.Commit {
	snapshot := make(map[repopath.Path]commit.SnapshotEntry, area.Size())

	area.Iterate(func(path repopath.Path, c content.Content) bool {
		interned := index.AddOrLookup(c.AsByteArray())
		snapshot[path] = commit.SnapshotEntry{Bytes: interned, Kind: c.Kind()}

		return true
	})

	newCommit := commit.New(snapshot, message, clock.Now(), parents)
	repo.RecordCommit(newCommit)

	return newCommit
}

// CommitToBranch commits area as the new tip of branchName: the branch's
// current tip (if any) becomes the sole first parent, extraParents are
// appended as additional parents, and branchName is advanced to the new
// commit (spec §4.5 step 4).
func CommitToBranch(
	area *contentarea.ContentArea,
	message string,
	branchName string,
	repo *repository.Repository,
	index byteindex.ByteArrayIndex,
	clock commit.Clock,
	extraParents ...*commit.Commit,
) *commit.Commit {
	parents := commit.Parents{Other: extraParents}
	if tip, ok := repo.BranchTip(branchName); ok {
		parents.First = tip
	}

	newCommit := Commit(area, message, repo, index, clock, parents)
	repo.SetBranchTip(branchName, newCommit)

	return newCommit
}

// Checkout reconstructs a fresh, independent ContentArea from c's
// snapshot: areaFactory supplies the empty area (its ordering is the
// caller's choice), contentFactory rebuilds each entry's typed Content
// from its interned bytes and recorded kind (spec §4.4 "checkout").
func Checkout(
	c *commit.Commit,
	areaFactory func() *contentarea.ContentArea,
	contentFactory content.Factory,
) *contentarea.ContentArea {
	area := areaFactory()

	for path, entry := range c.Snapshot() {
		area.Put(path, contentFactory(entry.Bytes, entry.Kind))
	}

	return area
}

// CreateBranchAtCommit points branchName at c, un-dangling c if needed.
func CreateBranchAtCommit(repo *repository.Repository, branchName string, c *commit.Commit) {
	repo.SetBranchTip(branchName, c)
}

// GetLatestCommitForBranch returns branchName's tip, or false if absent.
func GetLatestCommitForBranch(repo *repository.Repository, branchName string) (*commit.Commit, bool) {
	return repo.BranchTip(branchName)
}

// GetBranchNames returns every known branch name, sorted.
func GetBranchNames(repo *repository.Repository) []string {
	return repo.BranchNames()
}

// TagCommit points tagName at c, independent of the branch namespace.
func TagCommit(repo *repository.Repository, tagName string, c *commit.Commit) {
	repo.Tag(tagName, c)
}

// GetCommitForTag returns tagName's commit, or false if absent.
func GetCommitForTag(repo *repository.Repository, tagName string) (*commit.Commit, bool) {
	return repo.TagCommit(tagName)
}

// RemoveTag deletes tagName.
func RemoveTag(repo *repository.Repository, tagName string) {
	repo.RemoveTag(tagName)
}

// GetTagNames returns every known tag name, sorted.
func GetTagNames(repo *repository.Repository) []string {
	return repo.TagNames()
}
