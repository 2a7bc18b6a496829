package searchexpr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanovc/nanovc/pkg/byteindex"
	"github.com/nanovc/nanovc/pkg/commit"
	"github.com/nanovc/nanovc/pkg/commitengine"
	"github.com/nanovc/nanovc/pkg/contentarea"
	"github.com/nanovc/nanovc/pkg/repository"
	"github.com/nanovc/nanovc/pkg/searchexpr"
)

func TestEqual_ComparesSameTypedValues(t *testing.T) {
	t.Parallel()

	ctx := &searchexpr.Context{Repo: repository.New()}

	expr := searchexpr.Equal[string]{
		L: searchexpr.Constant[string]{TypeName: "String", Value: "a"},
		R: searchexpr.Constant[string]{TypeName: "String", Value: "a"},
	}

	got, err := expr.EvalBool(ctx)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestNotEqual_DiffersOnMismatch(t *testing.T) {
	t.Parallel()

	ctx := &searchexpr.Context{Repo: repository.New()}

	expr := searchexpr.NotEqual[int]{
		L: searchexpr.Constant[int]{TypeName: "Int", Value: 1},
		R: searchexpr.Constant[int]{TypeName: "Int", Value: 2},
	}

	got, err := expr.EvalBool(ctx)
	require.NoError(t, err)
	assert.True(t, got)
}

type errExpr struct{ err error }

func (e errExpr) EvalBool(_ *searchexpr.Context) (bool, error) { return false, e.err }
func (e errExpr) String() string                               { return "err" }

var _ searchexpr.BoolExpr = errExpr{}

func TestAnd_ShortCircuitsOnFalseLeft(t *testing.T) {
	t.Parallel()

	ctx := &searchexpr.Context{Repo: repository.New()}

	falseLeft := searchexpr.Equal[bool]{
		L: searchexpr.Constant[bool]{TypeName: "Bool", Value: true},
		R: searchexpr.Constant[bool]{TypeName: "Bool", Value: false},
	}

	expr := searchexpr.And{L: falseLeft, R: errExpr{err: errors.New("must not be evaluated")}}

	got, err := expr.EvalBool(ctx)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestOr_ShortCircuitsOnTrueLeft(t *testing.T) {
	t.Parallel()

	ctx := &searchexpr.Context{Repo: repository.New()}

	trueExpr := searchexpr.Equal[string]{
		L: searchexpr.Constant[string]{TypeName: "String", Value: "x"},
		R: searchexpr.Constant[string]{TypeName: "String", Value: "x"},
	}

	expr := searchexpr.Or{L: trueExpr, R: errExpr{err: errors.New("must not be evaluated")}}

	got, err := expr.EvalBool(ctx)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestNot_Negates(t *testing.T) {
	t.Parallel()

	ctx := &searchexpr.Context{Repo: repository.New()}

	falseExpr := searchexpr.Equal[int]{
		L: searchexpr.Constant[int]{TypeName: "Int", Value: 1},
		R: searchexpr.Constant[int]{TypeName: "Int", Value: 2},
	}

	got, err := searchexpr.Not{Operand: falseExpr}.EvalBool(ctx)
	require.NoError(t, err)
	assert.True(t, got)
}

func buildTwoCommitRepo(t *testing.T) (*repository.Repository, *commit.Commit, *commit.Commit) {
	t.Helper()

	repo := repository.New()
	index := byteindex.NewHashWrapperIndex()
	clock := &commit.SequentialClock{}

	area := contentarea.New(contentarea.Insertion, nil)
	area.PutString("/", "v1")
	c1 := commitengine.CommitToBranch(area, "first", "master", repo, index, clock)

	area.PutString("/", "v2")
	c2 := commitengine.CommitToBranch(area, "second", "master", repo, index, clock)

	return repo, c1, c2
}

func TestAllRepoCommits_ReturnsEveryCommit(t *testing.T) {
	t.Parallel()

	repo, c1, c2 := buildTwoCommitRepo(t)
	ctx := &searchexpr.Context{Repo: repo}

	got, err := searchexpr.AllRepoCommits{}.EvalCommitList(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	ids := map[commit.Hash]bool{}
	for _, c := range got {
		ids[c.ID()] = true
	}

	assert.True(t, ids[c1.ID()])
	assert.True(t, ids[c2.ID()])
}

func TestBranchCommits_MissingBranchIsEmpty(t *testing.T) {
	t.Parallel()

	repo := repository.New()
	ctx := &searchexpr.Context{Repo: repo}

	got, err := searchexpr.BranchCommits{Name: "does-not-exist"}.EvalCommitList(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTipOf_PicksMostRecentByTimestamp(t *testing.T) {
	t.Parallel()

	repo, c1, c2 := buildTwoCommitRepo(t)
	ctx := &searchexpr.Context{Repo: repo}

	tip, err := searchexpr.TipOf{List: searchexpr.BranchCommits{Name: "master"}}.EvalCommit(ctx)
	require.NoError(t, err)
	require.NotNil(t, tip)
	assert.Equal(t, c2.ID(), tip.ID())
	assert.NotEqual(t, c1.ID(), tip.ID())
}

func TestDefinition_BuildsAndEvaluatesFromYAML(t *testing.T) {
	t.Parallel()

	doc := []byte(`
kind: and
left:
  kind: equalString
  left:
    kind: constantString
    value: master
  right:
    kind: constantString
    value: master
right:
  kind: not
  operand:
    kind: notEqualString
    left:
      kind: constantString
      value: a
    right:
      kind: constantString
      value: a
`)

	def, err := searchexpr.ParseDefinition(doc)
	require.NoError(t, err)

	expr, err := def.Build()
	require.NoError(t, err)

	ctx := &searchexpr.Context{Repo: repository.New()}

	got, err := expr.EvalBool(ctx)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestDefinition_RejectsUnknownKind(t *testing.T) {
	t.Parallel()

	def, err := searchexpr.ParseDefinition([]byte("kind: bogus\n"))
	require.NoError(t, err)

	_, err = def.Build()
	assert.Error(t, err)
}
