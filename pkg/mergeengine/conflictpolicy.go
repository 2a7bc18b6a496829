package mergeengine

import (
	"github.com/nanovc/nanovc/pkg/commit"
	"github.com/nanovc/nanovc/pkg/content"
)

// ConflictPolicy decides the winning content for a path that changed on
// both sides of a merge (spec §4.8's "pluggable conflict resolvers"). Each
// method returns the resolved content and whether it should be kept at
// all; returning false means the path is omitted from the merged area.
type ConflictPolicy interface {
	// ResolveBothChanged picks between source and dest content that both
	// changed relative to the common ancestor.
	ResolveBothChanged(sourceCommit, destCommit *commit.Commit, sourceContent, destContent content.Content) (content.Content, bool)

	// ResolveSourceChangedDestDeleted decides whether a source-side edit
	// survives a destination-side deletion.
	ResolveSourceChangedDestDeleted(sourceCommit, destCommit *commit.Commit, sourceContent content.Content) (content.Content, bool)

	// ResolveSourceDeletedDestChanged decides whether a destination-side
	// edit survives a source-side deletion.
	ResolveSourceDeletedDestChanged(sourceCommit, destCommit *commit.Commit, destContent content.Content) (content.Content, bool)

	// ResolveTwoWayChanged picks between source and dest content when no
	// common ancestor exists to classify the change as an edit or delete.
	ResolveTwoWayChanged(sourceCommit, destCommit *commit.Commit, sourceContent, destContent content.Content) (content.Content, bool)
}

// LastWins is the default ConflictPolicy (spec §4.8): it compares commit
// timestamps via Clock.IsAfter and picks the strictly later side, with
// destination winning every tie.
type LastWins struct {
	Clock commit.Clock
}

// ResolveBothChanged picks whichever commit is strictly after the other;
// a tie goes to the destination.
func (p LastWins) ResolveBothChanged(sourceCommit, destCommit *commit.Commit, sourceContent, destContent content.Content) (content.Content, bool) {
	if sourceCommit.IsAfter(destCommit, p.Clock) {
		return sourceContent, true
	}

	return destContent, true
}

// ResolveSourceChangedDestDeleted keeps the source edit only if source is
// strictly after dest; otherwise the deletion wins and the path is omitted.
func (p LastWins) ResolveSourceChangedDestDeleted(sourceCommit, destCommit *commit.Commit, sourceContent content.Content) (content.Content, bool) {
	if sourceCommit.IsAfter(destCommit, p.Clock) {
		return sourceContent, true
	}

	return content.Content{}, false
}

// ResolveSourceDeletedDestChanged keeps the destination edit unless source
// is strictly after dest, per spec's "after-or-equal" wording.
func (p LastWins) ResolveSourceDeletedDestChanged(sourceCommit, destCommit *commit.Commit, destContent content.Content) (content.Content, bool) {
	if !sourceCommit.IsAfter(destCommit, p.Clock) {
		return destContent, true
	}

	return content.Content{}, false
}

// ResolveTwoWayChanged picks whichever commit is strictly after the other;
// a tie goes to the destination, mirroring ResolveBothChanged.
func (p LastWins) ResolveTwoWayChanged(sourceCommit, destCommit *commit.Commit, sourceContent, destContent content.Content) (content.Content, bool) {
	if sourceCommit.IsAfter(destCommit, p.Clock) {
		return sourceContent, true
	}

	return destContent, true
}
