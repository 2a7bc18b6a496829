// Package render is an optional, one-way presentation layer over
// pkg/compareengine, pkg/diffengine, and pkg/contentarea: it never feeds
// back into core kernel types, and core never imports it. Grounded on the
// teacher's internal/analyzers/common/formatter.go go-pretty table
// builder, cmd/uast/validate.go's fatih/color usage, and
// pkg/analyzers/plumbing/{file_diff.go,languages.go}'s go-diff/enry usage.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/nanovc/nanovc/pkg/compareengine"
	"github.com/nanovc/nanovc/pkg/content"
	"github.com/nanovc/nanovc/pkg/diffengine"
	"github.com/nanovc/nanovc/pkg/mathutil"
	"github.com/nanovc/nanovc/pkg/repopath"
)

var (
	colorAdded     = color.New(color.FgGreen)
	colorDeleted   = color.New(color.FgRed)
	colorChanged   = color.New(color.FgYellow)
	colorUnchanged = color.New(color.FgWhite)
)

// Comparison renders c as a go-pretty table with one colored row per path,
// sorted ascending (mirroring compareengine.Comparison.SortedListString's
// determinism, but as a table instead of a plain line list).
func Comparison(c compareengine.Comparison) string {
	paths := sortedComparisonPaths(c)

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Path", "State"})

	for _, p := range paths {
		state := c[p]
		tbl.AppendRow(table.Row{p.String(), colorForState(state).Sprint(state.String())})
	}

	tbl.AppendFooter(table.Row{"Total", fmt.Sprintf("%d paths", len(paths))})

	return tbl.Render()
}

// Difference renders d the same way as Comparison, over diffengine's
// narrower ChangeKind.
func Difference(d diffengine.Difference) string {
	paths := sortedDifferencePaths(d)

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Path", "Change"})

	for _, p := range paths {
		kind := d[p]
		tbl.AppendRow(table.Row{p.String(), colorForChangeKind(kind).Sprint(kind.String())})
	}

	tbl.AppendFooter(table.Row{"Total", fmt.Sprintf("%d paths", len(paths))})

	return tbl.Render()
}

func colorForState(s compareengine.State) *color.Color {
	switch s {
	case compareengine.Added:
		return colorAdded
	case compareengine.Deleted:
		return colorDeleted
	case compareengine.Changed:
		return colorChanged
	default:
		return colorUnchanged
	}
}

func colorForChangeKind(k diffengine.ChangeKind) *color.Color {
	switch k {
	case diffengine.Added:
		return colorAdded
	case diffengine.Deleted:
		return colorDeleted
	default:
		return colorChanged
	}
}

func sortedComparisonPaths(c compareengine.Comparison) []repopath.Path {
	paths := make([]repopath.Path, 0, len(c))
	for p := range c {
		paths = append(paths, p)
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	return paths
}

func sortedDifferencePaths(d diffengine.Difference) []repopath.Path {
	paths := make([]repopath.Path, 0, len(d))
	for p := range d {
		paths = append(paths, p)
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	return paths
}

// joinLines joins lines with "\n". Nothing in this package calls it.
func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// Preview renders up to maxRunes runes of c's text form, appending an
// ellipsis when truncated. Negative or zero maxRunes returns "".
func Preview(c content.Content, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}

	runes := []rune(c.String())
	cut := mathutil.Min(len(runes), maxRunes)

	if cut == len(runes) {
		return string(runes)
	}

	return string(runes[:cut]) + "..."
}
