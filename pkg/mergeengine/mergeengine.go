// Package mergeengine implements MergeEngine (spec §4.8): three-way and
// two-way area merges with a pluggable ConflictPolicy, plus the
// common-ancestor discovery and branch-level orchestration that
// mergeIntoBranchFromAnotherBranch needs. Grounded on pkg/gitlib/revwalk.go's
// BFS-from-tip walk idiom, reused here for common-ancestor discovery
// instead of libgit2 revision walking.
package mergeengine

import (
	"github.com/nanovc/nanovc/pkg/byteindex"
	"github.com/nanovc/nanovc/pkg/commit"
	"github.com/nanovc/nanovc/pkg/commitengine"
	"github.com/nanovc/nanovc/pkg/compareengine"
	"github.com/nanovc/nanovc/pkg/content"
	"github.com/nanovc/nanovc/pkg/contentarea"
	"github.com/nanovc/nanovc/pkg/diffengine"
	"github.com/nanovc/nanovc/pkg/repopath"
	"github.com/nanovc/nanovc/pkg/repository"
)

// ErrUnknownBranch is returned when either branch named in MergeBranches
// does not exist.
var ErrUnknownBranch = repository.ErrUnknownBranch

// write interns c's bytes through index and writes the rebuilt content to
// out at path, preserving c's Kind.
func write(out *contentarea.ContentArea, path repopath.Path, c content.Content, contentFactory content.Factory, index byteindex.ByteArrayIndex) {
	interned := index.AddOrLookup(c.AsByteArray())
	out.Put(path, contentFactory(interned, c.Kind()))
}

func copyFromArea(area *contentarea.ContentArea, path repopath.Path, out *contentarea.ContentArea, contentFactory content.Factory, index byteindex.ByteArrayIndex) {
	c, ok := area.Get(path)
	if !ok {
		return
	}

	write(out, path, c, contentFactory, index)
}

// MergeThreeWay implements mergeIntoAreaWithThreeWayDiff (spec §4.8's
// table): for every path present in compare(destArea, sourceArea) —
// computed with destArea as the "from" side, so Added means source-only
// and Deleted means dest-only — it classifies the path against
// diff(ancestor→source) and diff(ancestor→dest) and either copies a side
// outright, omits the path, or defers to policy.
func MergeThreeWay(
	ancestorArea, sourceArea, destArea *contentarea.ContentArea,
	sourceCommit, destCommit *commit.Commit,
	out *contentarea.ContentArea,
	contentFactory content.Factory,
	index byteindex.ByteArrayIndex,
	policy ConflictPolicy,
) {
	compareSrcDst := compareengine.Compute(destArea, sourceArea)
	diffAncSrc := diffengine.Compute(ancestorArea, sourceArea)
	diffAncDest := diffengine.Compute(ancestorArea, destArea)

	for path, state := range compareSrcDst {
		switch state {
		case compareengine.Added, compareengine.Unchanged:
			copyFromArea(sourceArea, path, out, contentFactory, index)

		case compareengine.Deleted:
			// omit

		case compareengine.Changed:
			resolveThreeWayChanged(path, sourceCommit, destCommit, sourceArea, destArea, diffAncSrc, diffAncDest, out, contentFactory, index, policy)
		}
	}
}

func resolveThreeWayChanged(
	path repopath.Path,
	sourceCommit, destCommit *commit.Commit,
	sourceArea, destArea *contentarea.ContentArea,
	diffAncSrc, diffAncDest diffengine.Difference,
	out *contentarea.ContentArea,
	contentFactory content.Factory,
	index byteindex.ByteArrayIndex,
	policy ConflictPolicy,
) {
	ancSrc, hasAncSrc := diffAncSrc[path]
	ancDest, hasAncDest := diffAncDest[path]

	switch {
	case !hasAncSrc && !hasAncDest:
		// Unchanged since the ancestor on both sides would mean
		// compare(dest,source) classified the path Unchanged, not Changed —
		// genuinely impossible for a well-formed input. Omit defensively.

	case !hasAncSrc && hasAncDest:
		if ancDest == diffengine.Deleted {
			return
		}

		copyFromArea(destArea, path, out, contentFactory, index)

	case hasAncSrc && !hasAncDest:
		if ancSrc == diffengine.Deleted {
			return
		}

		copyFromArea(sourceArea, path, out, contentFactory, index)

	default: // hasAncSrc && hasAncDest
		switch {
		case ancSrc == diffengine.Deleted && ancDest == diffengine.Deleted:
			// omit

		case ancSrc == diffengine.Deleted:
			destContent, ok := destArea.Get(path)
			if !ok {
				return
			}

			if resolved, keep := policy.ResolveSourceDeletedDestChanged(sourceCommit, destCommit, destContent); keep {
				write(out, path, resolved, contentFactory, index)
			}

		case ancDest == diffengine.Deleted:
			sourceContent, ok := sourceArea.Get(path)
			if !ok {
				return
			}

			if resolved, keep := policy.ResolveSourceChangedDestDeleted(sourceCommit, destCommit, sourceContent); keep {
				write(out, path, resolved, contentFactory, index)
			}

		default:
			sourceContent, srcOk := sourceArea.Get(path)
			destContent, destOk := destArea.Get(path)

			if !srcOk || !destOk {
				return
			}

			if resolved, keep := policy.ResolveBothChanged(sourceCommit, destCommit, sourceContent, destContent); keep {
				write(out, path, resolved, contentFactory, index)
			}
		}
	}
}

// MergeTwoWay implements mergeIntoAreaWithTwoWayDiff (spec §4.8): used
// when no common ancestor exists. compare(destArea, sourceArea) again
// treats destArea as "from", so Added means source-only (source wins),
// Deleted means dest-only (dest wins), and Unchanged also keeps dest.
func MergeTwoWay(
	sourceArea, destArea *contentarea.ContentArea,
	sourceCommit, destCommit *commit.Commit,
	out *contentarea.ContentArea,
	contentFactory content.Factory,
	index byteindex.ByteArrayIndex,
	policy ConflictPolicy,
) {
	compare := compareengine.Compute(destArea, sourceArea)

	for path, state := range compare {
		switch state {
		case compareengine.Added:
			copyFromArea(sourceArea, path, out, contentFactory, index)

		case compareengine.Deleted, compareengine.Unchanged:
			copyFromArea(destArea, path, out, contentFactory, index)

		case compareengine.Changed:
			sourceContent, srcOk := sourceArea.Get(path)
			destContent, destOk := destArea.Get(path)

			if !srcOk || !destOk {
				continue
			}

			if resolved, keep := policy.ResolveTwoWayChanged(sourceCommit, destCommit, sourceContent, destContent); keep {
				write(out, path, resolved, contentFactory, index)
			}
		}
	}
}

// OverlayFromCommonAncestor implements the alternative "DiffFromCommonAncestor"
// policy (spec §4.8): no conflict arbitration. destArea is overlaid in
// full, then every path that changed from ancestor to source is applied
// on top unconditionally (Added/Changed overwrite, Deleted removes).
func OverlayFromCommonAncestor(
	ancestorArea, sourceArea, destArea *contentarea.ContentArea,
	out *contentarea.ContentArea,
	contentFactory content.Factory,
	index byteindex.ByteArrayIndex,
) {
	destArea.Iterate(func(path repopath.Path, c content.Content) bool {
		write(out, path, c, contentFactory, index)

		return true
	})

	diffAncSrc := diffengine.Compute(ancestorArea, sourceArea)

	for path, kind := range diffAncSrc {
		switch kind {
		case diffengine.Added, diffengine.Changed:
			copyFromArea(sourceArea, path, out, contentFactory, index)

		case diffengine.Deleted:
			out.Remove(path)
		}
	}
}

// OverlayTwoWay implements the two-way overlay variant of the alternative
// policy (spec §4.8): dest applied first, then source unconditionally on
// top.
func OverlayTwoWay(sourceArea, destArea, out *contentarea.ContentArea, contentFactory content.Factory, index byteindex.ByteArrayIndex) {
	destArea.Iterate(func(path repopath.Path, c content.Content) bool {
		write(out, path, c, contentFactory, index)

		return true
	})

	sourceArea.Iterate(func(path repopath.Path, c content.Content) bool {
		write(out, path, c, contentFactory, index)

		return true
	})
}

// CommonAncestor finds a commit reachable from both a and b by walking
// parents breadth-first (spec §4.8): collect a's full ancestor set
// (including a itself), then walk b's ancestors in BFS order and return
// the first hit. Tie-break is implicit in BFS visitation order.
func CommonAncestor(a, b *commit.Commit) (*commit.Commit, bool) {
	ancestorsOfA := ancestorSet(a)

	visited := make(map[commit.Hash]bool)
	queue := []*commit.Commit{b}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current.ID()] {
			continue
		}

		visited[current.ID()] = true

		if _, ok := ancestorsOfA[current.ID()]; ok {
			return current, true
		}

		queue = append(queue, current.Parents().All()...)
	}

	return nil, false
}

func ancestorSet(c *commit.Commit) map[commit.Hash]*commit.Commit {
	set := make(map[commit.Hash]*commit.Commit)
	queue := []*commit.Commit{c}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if _, seen := set[current.ID()]; seen {
			continue
		}

		set[current.ID()] = current
		queue = append(queue, current.Parents().All()...)
	}

	return set
}

// MergeBranches implements mergeIntoBranchFromAnotherBranch (spec §4.8):
// looks up both branch tips, finds a common ancestor if one exists to pick
// the three-way or two-way path, commits the merged area with
// firstParent=destTip and otherParents=[sourceTip], and advances destName.
func MergeBranches(
	repo *repository.Repository,
	destName, sourceName, message string,
	clock commit.Clock,
	index byteindex.ByteArrayIndex,
	contentFactory content.Factory,
	areaFactory func() *contentarea.ContentArea,
	policy ConflictPolicy,
) (*commit.Commit, error) {
	destTip, ok := repo.BranchTip(destName)
	if !ok {
		return nil, ErrUnknownBranch
	}

	sourceTip, ok := repo.BranchTip(sourceName)
	if !ok {
		return nil, ErrUnknownBranch
	}

	sourceArea := commitengine.Checkout(sourceTip, areaFactory, contentFactory)
	destArea := commitengine.Checkout(destTip, areaFactory, contentFactory)

	out := areaFactory()

	if ancestor, found := CommonAncestor(destTip, sourceTip); found {
		ancestorArea := commitengine.Checkout(ancestor, areaFactory, contentFactory)
		MergeThreeWay(ancestorArea, sourceArea, destArea, sourceTip, destTip, out, contentFactory, index, policy)
	} else {
		MergeTwoWay(sourceArea, destArea, sourceTip, destTip, out, contentFactory, index, policy)
	}

	merged := commitengine.Commit(out, message, repo, index, clock, commit.Parents{First: destTip, Other: []*commit.Commit{sourceTip}})
	repo.SetBranchTip(destName, merged)

	return merged, nil
}
