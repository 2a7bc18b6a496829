package render

import (
	"path"

	"github.com/src-d/enry/v2"

	"github.com/nanovc/nanovc/pkg/content"
)

// DetectLanguage names the programming language at repoPath by running
// c's bytes through enry's classifier, grounded on the teacher's
// pkg/analyzers/plumbing/languages.go detectLanguage fallback path
// (enry.GetLanguage(path.Base(name), blob.Data)). Returns "" when enry
// has no guess.
func DetectLanguage(repoPath string, c content.Content) string {
	return enry.GetLanguage(path.Base(repoPath), c.AsByteArray())
}
