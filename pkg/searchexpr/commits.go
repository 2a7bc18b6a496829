package searchexpr

import (
	"fmt"

	"github.com/nanovc/nanovc/pkg/commit"
)

// AllRepoCommits evaluates to every commit known to the repository (spec
// §4.9).
type AllRepoCommits struct{}

// EvalCommitList returns ctx.Repo.AllCommits() verbatim.
func (AllRepoCommits) EvalCommitList(ctx *Context) ([]*commit.Commit, error) {
	return ctx.Repo.AllCommits(), nil
}

// String renders the node for diagnostics.
func (AllRepoCommits) String() string { return "AllRepoCommits" }

// BranchCommits evaluates to every commit reachable from Name's tip,
// or an empty list if the branch is missing (spec §4.9).
type BranchCommits struct {
	Name string
}

// EvalCommitList walks Name's tip and its ancestors breadth-first.
func (b BranchCommits) EvalCommitList(ctx *Context) ([]*commit.Commit, error) {
	tip, ok := ctx.Repo.BranchTip(b.Name)
	if !ok {
		return nil, nil
	}

	return ancestorsOf(tip), nil
}

// String renders the node for diagnostics.
func (b BranchCommits) String() string { return fmt.Sprintf("BranchCommits(%q)", b.Name) }

// TipOf evaluates to the most recent commit in List by timestamp, with
// ties broken by first-seen order (spec §4.9).
type TipOf struct {
	List CommitListExpr
}

// EvalCommit evaluates List and folds it down to the latest commit.
func (t TipOf) EvalCommit(ctx *Context) (*commit.Commit, error) {
	commits, err := t.List.EvalCommitList(ctx)
	if err != nil {
		return nil, err
	}

	var tip *commit.Commit

	for _, c := range commits {
		if tip == nil || c.Timestamp().After(tip.Timestamp()) {
			tip = c
		}
	}

	return tip, nil
}

// String renders the node for diagnostics.
func (t TipOf) String() string { return fmt.Sprintf("TipOf(%s)", t.List) }

// ancestorsOf collects tip and every commit reachable by walking parents
// breadth-first, mirroring pkg/mergeengine's common-ancestor traversal.
func ancestorsOf(tip *commit.Commit) []*commit.Commit {
	visited := make(map[commit.Hash]bool)
	queue := []*commit.Commit{tip}
	out := make([]*commit.Commit, 0)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current.ID()] {
			continue
		}

		visited[current.ID()] = true
		out = append(out, current)
		queue = append(queue, current.Parents().All()...)
	}

	return out
}
