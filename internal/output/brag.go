package output

import (
	"fmt"
	"io"
	"strings"

	"gitbrag/internal/analyze"
)

// BragWriter renders the brag document: every classified commit grouped by
// repository and contribution type, with hash evidence.
type BragWriter struct{}

var bragSections = []struct {
	t     analyze.CommitType
	title string
}{
	{analyze.TypeFeature, "Features"},
	{analyze.TypeFix, "Fixes"},
	{analyze.TypeTechImprovement, "Technical Improvements"},
	{analyze.TypeDocs, "Documentation"},
	{analyze.TypeChore, "Chores"},
	{analyze.TypeOther, "Other"},
}

func (b *BragWriter) Write(w io.Writer, res *analyze.Result) error {
	ew := &errWriter{w: w}

	ew.printf("# Brag Document\n\n")
	ew.printf("Generated %s from %d commits across %d repositories.\n\n",
		res.GeneratedAt.Format("2006-01-02"), len(res.Commits), len(res.RepoSummaries))

	byRepo := groupByRepo(res.Commits)
	for _, summary := range res.RepoSummaries {
		commits := byRepo[summary.Repo]
		ew.printf("## %s\n\n", summary.Repo)
		if len(summary.Themes) > 0 {
			ew.printf("_%s_\n\n", strings.Join(summary.Themes, "; "))
		}
		for _, section := range bragSections {
			var lines []string
			for _, c := range commits {
				cl := analysisOf(c)
				if cl.Type == section.t {
					lines = append(lines, fmt.Sprintf("- %s (`%s`, %s)", cl.Summary, short(c.Hash), c.Date.Format("2006-01-02")))
				}
			}
			if len(lines) == 0 {
				continue
			}
			ew.printf("### %s\n\n", section.title)
			for _, l := range lines {
				ew.println(l)
			}
			ew.println("")
		}
	}
	return ew.err
}

func groupByRepo(commits []analyze.EnrichedCommit) map[string][]analyze.EnrichedCommit {
	byRepo := make(map[string][]analyze.EnrichedCommit)
	for _, c := range commits {
		byRepo[c.RepoName] = append(byRepo[c.RepoName], c)
	}
	return byRepo
}

// analysisOf returns the commit's classification; the pipeline guarantees
// Analysis is set, but the fallback keeps the renderer total anyway.
func analysisOf(c analyze.EnrichedCommit) analyze.Classification {
	if c.Analysis != nil {
		return *c.Analysis
	}
	return analyze.FallbackClassification(c.Commit)
}

func short(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

// errWriter accumulates the first write error so render loops stay flat.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) println(s string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, s)
}
