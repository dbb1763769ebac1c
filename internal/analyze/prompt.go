package analyze

import (
	"fmt"
	"strings"

	"gitbrag/internal/profile"
)

const classifyInstructions = `You are an assistant that classifies git commits for a contribution review.

For each commit below, decide its type and write a short summary of what the change accomplished.

Rules:
1. "type" must be exactly one of: feature, fix, tech-improvement, docs, chore, other.
2. "summary" is at most 25 words, plain language, focused on the outcome.
3. Judge from the diff when it is present; fall back to the message otherwise.
4. Do not invent details that are not visible in the message or diff.

Respond with ONLY a JSON array, one element per commit:
[{"hash": "<commit hash>", "type": "<type>", "summary": "<summary>"}]`

// buildClassifyPrompt enumerates a batch of commits for classification.
func buildClassifyPrompt(batch []EnrichedCommit) string {
	var b strings.Builder
	b.WriteString(classifyInstructions)
	fmt.Fprintf(&b, "\n\nCommits (%d):\n", len(batch))
	for _, c := range batch {
		fmt.Fprintf(&b, "\n--- COMMIT %s ---\n", c.Hash)
		fmt.Fprintf(&b, "repo: %s\n", c.RepoName)
		fmt.Fprintf(&b, "date: %s\n", c.Date.Format("2006-01-02"))
		fmt.Fprintf(&b, "type hint: %s\n", c.TypeHint)
		fmt.Fprintf(&b, "message: %s\n", c.Message)
		if c.DiffError != "" {
			b.WriteString("diff: unavailable\n")
		} else if c.DiffSnippet != "" {
			b.WriteString("diff:\n")
			b.WriteString(c.DiffSnippet)
			if !strings.HasSuffix(c.DiffSnippet, "\n") {
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

const repoSummaryInstructions = `You are an assistant that summarizes a developer's contributions to one repository for a review document.

Rules:
1. Use only the classified commits below. Do not fabricate unstated facts.
2. Mark anything you are unsure about explicitly as uncertain.
3. Keep every entry to one short sentence.

Respond with ONLY a JSON object of this shape:
{"themes": [], "highlights": [], "risks_or_debt": [], "evidence": [], "outline": []}`

// buildRepoSummaryPrompt assembles the per-repository summarization prompt
// from already-classified data only, never raw diffs.
func buildRepoSummaryPrompt(repoName string, commits []EnrichedCommit) string {
	var b strings.Builder
	b.WriteString(repoSummaryInstructions)
	fmt.Fprintf(&b, "\n\nRepository: %s\nClassified commits:\n", repoName)
	for _, c := range commits {
		cl := classificationOf(c)
		fmt.Fprintf(&b, "- [%s] %s (%s, %s)\n", cl.Type, cl.Summary, shortHash(c.Hash), c.Date.Format("2006-01-02"))
	}
	return b.String()
}

const overallInstructions = `You are an assistant that aggregates a developer's contributions across repositories for a review document.

Rules:
1. Use only the per-repository summaries and commit types below. Do not fabricate unstated facts.
2. Mark anything you are unsure about explicitly as uncertain.

Respond with ONLY a JSON object of this shape:
{"overall_themes": [], "overall_highlights": [], "by_project": {"<repo>": {"themes": [], "highlights": [], "risks_or_debt": []}}, "skills_surface": {"frontend": [], "backend": [], "devops": []}}`

// buildOverallPrompt assembles the cross-repository aggregation prompt.
func buildOverallPrompt(repos []RepoSummary, commits []EnrichedCommit) string {
	var b strings.Builder
	b.WriteString(overallInstructions)
	b.WriteString("\n\nPer-repository summaries:\n")
	for _, r := range repos {
		fmt.Fprintf(&b, "\nRepository %s:\n", r.Repo)
		writeList(&b, "themes", r.Themes)
		writeList(&b, "highlights", r.Highlights)
		writeList(&b, "risks_or_debt", r.RisksOrDebt)
	}
	counts := countTypes(commits)
	b.WriteString("\nCommit type counts: ")
	b.WriteString(formatTypeCounts(counts))
	b.WriteString("\n")
	return b.String()
}

// buildCVPrompt asks for a CV-style markdown body.
func buildCVPrompt(prof *profile.Profile, overall OverallSummary, repos []RepoSummary) string {
	var b strings.Builder
	b.WriteString("Write a concise CV \"selected contributions\" section in Markdown for the developer described below.\n")
	b.WriteString("Base it strictly on the summaries; do not fabricate employers, dates, or metrics. Plain Markdown text only, no JSON.\n\n")
	writeProfileSection(&b, prof)
	writeSummarySection(&b, overall, repos)
	return b.String()
}

// buildPerformancePrompt asks for a performance-review markdown body.
func buildPerformancePrompt(prof *profile.Profile, overall OverallSummary, repos []RepoSummary) string {
	var b strings.Builder
	b.WriteString("Write a performance review self-assessment in Markdown based strictly on the contribution summaries below.\n")
	b.WriteString("Cover impact, collaboration signals visible in the work, and growth areas. Mark uncertainty explicitly. Plain Markdown text only, no JSON.\n\n")
	writeProfileSection(&b, prof)
	writeSummarySection(&b, overall, repos)
	return b.String()
}

func writeProfileSection(b *strings.Builder, prof *profile.Profile) {
	if prof == nil {
		return
	}
	b.WriteString("Developer profile:\n")
	b.WriteString(prof.PromptSection())
	b.WriteString("\n")
}

func writeSummarySection(b *strings.Builder, overall OverallSummary, repos []RepoSummary) {
	writeList(b, "Overall themes", overall.OverallThemes)
	writeList(b, "Overall highlights", overall.OverallHighlights)
	for _, r := range repos {
		fmt.Fprintf(b, "\nRepository %s:\n", r.Repo)
		writeList(b, "themes", r.Themes)
		writeList(b, "highlights", r.Highlights)
		writeList(b, "risks_or_debt", r.RisksOrDebt)
	}
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", label)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}

// classificationOf returns the commit's analysis, or the deterministic
// fallback when classification has not run.
func classificationOf(c EnrichedCommit) Classification {
	if c.Analysis != nil {
		return *c.Analysis
	}
	return FallbackClassification(c.Commit)
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

func countTypes(commits []EnrichedCommit) map[CommitType]int {
	counts := make(map[CommitType]int)
	for _, c := range commits {
		counts[classificationOf(c).Type]++
	}
	return counts
}

func formatTypeCounts(counts map[CommitType]int) string {
	var parts []string
	for _, t := range []CommitType{TypeFeature, TypeFix, TypeTechImprovement, TypeDocs, TypeChore, TypeOther} {
		if n := counts[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", t, n))
		}
	}
	return strings.Join(parts, ", ")
}
