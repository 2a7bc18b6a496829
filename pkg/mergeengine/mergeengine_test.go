package mergeengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanovc/nanovc/pkg/byteindex"
	"github.com/nanovc/nanovc/pkg/commit"
	"github.com/nanovc/nanovc/pkg/commitengine"
	"github.com/nanovc/nanovc/pkg/content"
	"github.com/nanovc/nanovc/pkg/contentarea"
	"github.com/nanovc/nanovc/pkg/mergeengine"
	"github.com/nanovc/nanovc/pkg/repository"
)

func newArea() *contentarea.ContentArea {
	return contentarea.New(contentarea.Insertion, nil)
}

// TestMergeBranches_ReproducesS4ThreeWayLastWins reproduces spec §8
// scenario S4 literally.
func TestMergeBranches_ReproducesS4ThreeWayLastWins(t *testing.T) {
	t.Parallel()

	repo := repository.New()
	index := byteindex.NewHashWrapperIndex()
	clock := &commit.SequentialClock{}
	factory := content.DefaultFactory()

	ancestorArea := newArea()
	ancestorArea.PutString("/", "Root")
	ancestorArea.PutString("/a", "A1")
	ancestorArea.PutString("/b", "B1")
	ancestorArea.PutString("/c", "c1")

	c1 := commitengine.CommitToBranch(ancestorArea, "c1", "master", repo, index, clock)
	commitengine.CreateBranchAtCommit(repo, "feature", c1)

	masterArea := commitengine.Checkout(c1, newArea, factory)
	masterArea.PutString("/a", "A3")
	masterCommit := commitengine.CommitToBranch(masterArea, "master update", "master", repo, index, clock)

	featureArea := commitengine.Checkout(c1, newArea, factory)
	featureArea.PutString("/", "New Root")
	featureArea.PutString("/a", "A2")
	featureArea.Remove("/c")
	featureCommit := commitengine.CommitToBranch(featureArea, "feature update", "feature", repo, index, clock)

	require.True(t, featureCommit.IsAfter(masterCommit, clock))

	merged, err := mergeengine.MergeBranches(
		repo, "master", "feature", "Merging Feature into Master",
		clock, index, factory, newArea, mergeengine.LastWins{Clock: clock},
	)
	require.NoError(t, err)

	assert.Equal(t, masterCommit.ID(), merged.Parents().First.ID())
	require.Len(t, merged.Parents().Other, 1)
	assert.Equal(t, featureCommit.ID(), merged.Parents().Other[0].ID())

	mergedArea := commitengine.Checkout(merged, newArea, factory)

	root, ok := mergedArea.Get("/")
	require.True(t, ok)
	assert.Equal(t, "New Root", root.String())

	a, ok := mergedArea.Get("/a")
	require.True(t, ok)
	assert.Equal(t, "A2", a.String())

	b, ok := mergedArea.Get("/b")
	require.True(t, ok)
	assert.Equal(t, "B1", b.String())

	_, hasC := mergedArea.Get("/c")
	assert.False(t, hasC, "/c was deleted on feature and unchanged on master, so it must be omitted")
}

// TestMergeBranches_ReproducesS5TwoWay reproduces spec §8 scenario S5
// literally.
func TestMergeBranches_ReproducesS5TwoWay(t *testing.T) {
	t.Parallel()

	repo := repository.New()
	index := byteindex.NewHashWrapperIndex()
	clock := &commit.SequentialClock{}
	factory := content.DefaultFactory()

	masterArea := newArea()
	masterArea.PutString("/", "master root")
	masterArea.PutString("/master-only", "m")
	cm := commitengine.CommitToBranch(masterArea, "cm", "master", repo, index, clock)

	disconnectedArea := newArea()
	disconnectedArea.PutString("/", "disconnected root")
	disconnectedArea.PutString("/only-disconnected", "x")
	cd := commitengine.CommitToBranch(disconnectedArea, "cd", "disconnected", repo, index, clock)

	require.True(t, cd.IsAfter(cm, clock))

	merged, err := mergeengine.MergeBranches(
		repo, "master", "disconnected", "Merging disconnected into master",
		clock, index, factory, newArea, mergeengine.LastWins{Clock: clock},
	)
	require.NoError(t, err)

	mergedArea := commitengine.Checkout(merged, newArea, factory)

	root, ok := mergedArea.Get("/")
	require.True(t, ok)
	assert.Equal(t, "disconnected root", root.String(), "later commit (disconnected) should win at /")

	onlyDisconnected, ok := mergedArea.Get("/only-disconnected")
	require.True(t, ok)
	assert.Equal(t, "x", onlyDisconnected.String())

	masterOnly, ok := mergedArea.Get("/master-only")
	require.True(t, ok)
	assert.Equal(t, "m", masterOnly.String())
}

func TestMergeBranches_UnknownBranchFails(t *testing.T) {
	t.Parallel()

	repo := repository.New()
	index := byteindex.NewHashWrapperIndex()
	clock := &commit.SequentialClock{}
	factory := content.DefaultFactory()

	area := newArea()
	area.PutString("/", "x")
	commitengine.CommitToBranch(area, "only commit", "master", repo, index, clock)

	_, err := mergeengine.MergeBranches(repo, "master", "does-not-exist", "merge", clock, index, factory, newArea, mergeengine.LastWins{Clock: clock})
	assert.ErrorIs(t, err, mergeengine.ErrUnknownBranch)
}

func TestCommonAncestor_FindsSharedRoot(t *testing.T) {
	t.Parallel()

	repo := repository.New()
	index := byteindex.NewHashWrapperIndex()
	clock := &commit.SequentialClock{}

	root := newArea()
	root.PutString("/", "root")
	c1 := commitengine.CommitToBranch(root, "root", "master", repo, index, clock)
	commitengine.CreateBranchAtCommit(repo, "feature", c1)

	ancestor, found := mergeengine.CommonAncestor(c1, c1)
	require.True(t, found)
	assert.Equal(t, c1.ID(), ancestor.ID())
}
