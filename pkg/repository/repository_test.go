package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanovc/nanovc/pkg/commit"
	"github.com/nanovc/nanovc/pkg/content"
	"github.com/nanovc/nanovc/pkg/repopath"
	"github.com/nanovc/nanovc/pkg/repository"
)

func makeCommit(t *testing.T, msg string, ts int64, parents commit.Parents) *commit.Commit {
	t.Helper()

	snapshot := map[repopath.Path]commit.SnapshotEntry{
		repopath.At("/a.txt"): {Bytes: []byte(msg), Kind: content.KindString},
	}

	return commit.New(snapshot, msg, time.Unix(ts, 0), parents)
}

func TestRecordCommit_RootBecomesDangling(t *testing.T) {
	t.Parallel()

	repo := repository.New()
	root := makeCommit(t, "root", 0, commit.Parents{})

	repo.RecordCommit(root)

	dangling := repo.DanglingCommits()
	require.Len(t, dangling, 1)
	assert.Equal(t, root.ID(), dangling[0].ID())
}

func TestRecordCommit_ParentLosesDanglingStatus(t *testing.T) {
	t.Parallel()

	repo := repository.New()
	root := makeCommit(t, "root", 0, commit.Parents{})
	repo.RecordCommit(root)

	child := makeCommit(t, "child", 1, commit.Parents{First: root})
	repo.RecordCommit(child)

	dangling := repo.DanglingCommits()
	require.Len(t, dangling, 1)
	assert.Equal(t, child.ID(), dangling[0].ID())
}

func TestSetBranchTip_UndanglesCommit(t *testing.T) {
	t.Parallel()

	repo := repository.New()
	root := makeCommit(t, "root", 0, commit.Parents{})
	repo.RecordCommit(root)

	repo.SetBranchTip("master", root)

	assert.Empty(t, repo.DanglingCommits())

	tip, ok := repo.BranchTip("master")
	require.True(t, ok)
	assert.Equal(t, root.ID(), tip.ID())
}

func TestBranchTip_MissingBranchReturnsAbsent(t *testing.T) {
	t.Parallel()

	repo := repository.New()

	_, ok := repo.BranchTip("nonexistent")
	assert.False(t, ok)
}

func TestTag_IndependentNamespaceFromBranch(t *testing.T) {
	t.Parallel()

	repo := repository.New()
	root := makeCommit(t, "root", 0, commit.Parents{})
	repo.RecordCommit(root)

	repo.SetBranchTip("master", root)
	repo.Tag("v1", root)

	_, branchOK := repo.BranchTip("v1")
	assert.False(t, branchOK, "tag name must not leak into the branch namespace")

	tagged, tagOK := repo.TagCommit("v1")
	require.True(t, tagOK)
	assert.Equal(t, root.ID(), tagged.ID())
}

func TestRemoveTag_RedanglesUnclaimedTip(t *testing.T) {
	t.Parallel()

	repo := repository.New()
	root := makeCommit(t, "root", 0, commit.Parents{})
	repo.RecordCommit(root)
	repo.Tag("v1", root)

	assert.Empty(t, repo.DanglingCommits())

	repo.RemoveTag("v1")

	dangling := repo.DanglingCommits()
	require.Len(t, dangling, 1)
	assert.Equal(t, root.ID(), dangling[0].ID())
}

func TestBranchNamesAndTagNames_SortedAndDistinct(t *testing.T) {
	t.Parallel()

	repo := repository.New()
	root := makeCommit(t, "root", 0, commit.Parents{})
	repo.RecordCommit(root)

	repo.SetBranchTip("zeta", root)
	repo.SetBranchTip("alpha", root)
	repo.Tag("v2", root)
	repo.Tag("v1", root)

	assert.Equal(t, []string{"alpha", "zeta"}, repo.BranchNames())
	assert.Equal(t, []string{"v1", "v2"}, repo.TagNames())
}

func TestVerifyInvariants_PassesForConnectedHistory(t *testing.T) {
	t.Parallel()

	repo := repository.New()
	root := makeCommit(t, "root", 0, commit.Parents{})
	repo.RecordCommit(root)

	child := makeCommit(t, "child", 1, commit.Parents{First: root})
	repo.RecordCommit(child)
	repo.SetBranchTip("master", child)

	assert.NoError(t, repo.VerifyInvariants())
}

func TestLookup_FindsRecordedCommit(t *testing.T) {
	t.Parallel()

	repo := repository.New()
	root := makeCommit(t, "root", 0, commit.Parents{})
	repo.RecordCommit(root)

	got, ok := repo.Lookup(root.ID())
	require.True(t, ok)
	assert.Equal(t, root.ID(), got.ID())

	_, ok = repo.Lookup(commit.ZeroHash())
	assert.False(t, ok)
}
