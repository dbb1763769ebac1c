package analyze

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"gitbrag/internal/profile"
)

// The offline aggregator computes every artifact purely from already-known
// classification data: type counts, leading highlights, and technology tags
// inferred from file extensions. It must yield usable, schema-valid output
// with zero LLM availability.

const offlineHighlightLimit = 5

type techTag struct {
	tag  string
	area string // frontend, backend, devops
}

var extTags = map[string]techTag{
	".js":     {"JavaScript", "frontend"},
	".jsx":    {"React", "frontend"},
	".ts":     {"TypeScript", "frontend"},
	".tsx":    {"React", "frontend"},
	".vue":    {"Vue", "frontend"},
	".svelte": {"Svelte", "frontend"},
	".css":    {"CSS", "frontend"},
	".scss":   {"CSS", "frontend"},
	".html":   {"HTML", "frontend"},
	".go":     {"Go", "backend"},
	".py":     {"Python", "backend"},
	".rb":     {"Ruby", "backend"},
	".java":   {"Java", "backend"},
	".kt":     {"Kotlin", "backend"},
	".rs":     {"Rust", "backend"},
	".cs":     {"C#", "backend"},
	".php":    {"PHP", "backend"},
	".sql":    {"SQL", "backend"},
	".tf":     {"Terraform", "devops"},
	".yml":    {"CI config", "devops"},
	".yaml":   {"CI config", "devops"},
	".sh":     {"Shell", "devops"},
}

var typeLabels = map[CommitType]string{
	TypeFeature:         "feature work",
	TypeFix:             "bug fixing",
	TypeTechImprovement: "technical improvements",
	TypeDocs:            "documentation",
	TypeChore:           "maintenance chores",
	TypeOther:           "other changes",
}

func offlineRepoSummary(repoName string, commits []EnrichedCommit) RepoSummary {
	s := RepoSummary{Repo: repoName}

	counts := countTypes(commits)
	for _, t := range typeOrder() {
		if n := counts[t]; n > 0 {
			s.Themes = append(s.Themes, fmt.Sprintf("%s (%d commits)", typeLabels[t], n))
		}
	}

	s.Highlights = leadingHighlights(commits, offlineHighlightLimit)

	var diffErrors, truncated int
	for _, c := range commits {
		if c.DiffError != "" {
			diffErrors++
		}
		if c.Truncated {
			truncated++
		}
	}
	if diffErrors > 0 {
		s.RisksOrDebt = append(s.RisksOrDebt, fmt.Sprintf("%d commits had unreadable diffs; their classification relies on messages only", diffErrors))
	}
	if truncated > 0 {
		s.RisksOrDebt = append(s.RisksOrDebt, fmt.Sprintf("%d commits exceeded the diff budget and were truncated", truncated))
	}

	for i, c := range commits {
		if i >= offlineHighlightLimit {
			break
		}
		s.Evidence = append(s.Evidence, fmt.Sprintf("%s %s", shortHash(c.Hash), c.Message))
	}

	for _, t := range typeOrder() {
		if n := counts[t]; n > 0 {
			s.Outline = append(s.Outline, fmt.Sprintf("%s: %d commits", typeLabels[t], n))
		}
	}

	s.normalize()
	return s
}

func offlineOverall(repos []RepoSummary, commits []EnrichedCommit) OverallSummary {
	var overall OverallSummary

	counts := countTypes(commits)
	for _, t := range typeOrder() {
		if n := counts[t]; n > 0 {
			overall.OverallThemes = append(overall.OverallThemes, fmt.Sprintf("%s across %d repositories (%d commits)", typeLabels[t], len(repos), n))
		}
	}

	overall.ByProject = make(map[string]ProjectSummary, len(repos))
	for _, r := range repos {
		overall.OverallHighlights = append(overall.OverallHighlights, prefixed(r.Repo, r.Highlights, 2)...)
		overall.ByProject[r.Repo] = ProjectSummary{
			Themes:      r.Themes,
			Highlights:  r.Highlights,
			RisksOrDebt: r.RisksOrDebt,
		}
	}

	overall.SkillsSurface = inferSkills(commits)
	overall.normalize()
	return overall
}

func offlineCV(prof *profile.Profile, overall OverallSummary, repos []RepoSummary) string {
	var b strings.Builder
	b.WriteString("# Selected Contributions\n\n")
	if prof != nil && prof.Name != "" {
		fmt.Fprintf(&b, "%s", prof.Name)
		if prof.Title != "" {
			fmt.Fprintf(&b, " — %s", prof.Title)
		}
		b.WriteString("\n\n")
	}
	for _, r := range repos {
		fmt.Fprintf(&b, "## %s\n\n", r.Repo)
		for _, h := range r.Highlights {
			fmt.Fprintf(&b, "- %s\n", h)
		}
		b.WriteString("\n")
	}
	writeSkillsMarkdown(&b, overall.SkillsSurface)
	return b.String()
}

func offlinePerformance(prof *profile.Profile, overall OverallSummary, repos []RepoSummary) string {
	var b strings.Builder
	b.WriteString("# Performance Summary\n\n")
	if prof != nil && prof.Name != "" {
		fmt.Fprintf(&b, "Author: %s\n\n", prof.Name)
	}
	b.WriteString("## Impact\n\n")
	for _, t := range overall.OverallThemes {
		fmt.Fprintf(&b, "- %s\n", t)
	}
	b.WriteString("\n## Delivery\n\n")
	for _, h := range overall.OverallHighlights {
		fmt.Fprintf(&b, "- %s\n", h)
	}
	b.WriteString("\n## Risks and Debt\n\n")
	wrote := false
	for _, r := range repos {
		for _, risk := range r.RisksOrDebt {
			fmt.Fprintf(&b, "- %s: %s\n", r.Repo, risk)
			wrote = true
		}
	}
	if !wrote {
		b.WriteString("- none surfaced by the offline aggregation\n")
	}
	return b.String()
}

// leadingHighlights picks up to limit classification summaries, features and
// fixes first, preserving commit order within each type.
func leadingHighlights(commits []EnrichedCommit, limit int) []string {
	var highlights []string
	for _, t := range typeOrder() {
		for _, c := range commits {
			if len(highlights) >= limit {
				return highlights
			}
			if classificationOf(c).Type == t {
				highlights = append(highlights, classificationOf(c).Summary)
			}
		}
	}
	return highlights
}

// inferSkills maps file extensions of touched paths onto the skills surface.
func inferSkills(commits []EnrichedCommit) SkillsSurface {
	areas := map[string]map[string]bool{
		"frontend": {},
		"backend":  {},
		"devops":   {},
	}
	for _, c := range commits {
		for _, f := range c.Files {
			if filepath.Base(f) == "Dockerfile" {
				areas["devops"]["Docker"] = true
				continue
			}
			if tag, ok := extTags[strings.ToLower(filepath.Ext(f))]; ok {
				areas[tag.area][tag.tag] = true
			}
		}
	}
	return SkillsSurface{
		Frontend: sortedKeys(areas["frontend"]),
		Backend:  sortedKeys(areas["backend"]),
		Devops:   sortedKeys(areas["devops"]),
	}
}

func writeSkillsMarkdown(b *strings.Builder, skills SkillsSurface) {
	if len(skills.Frontend)+len(skills.Backend)+len(skills.Devops) == 0 {
		return
	}
	b.WriteString("## Technologies\n\n")
	if len(skills.Frontend) > 0 {
		fmt.Fprintf(b, "- Frontend: %s\n", strings.Join(skills.Frontend, ", "))
	}
	if len(skills.Backend) > 0 {
		fmt.Fprintf(b, "- Backend: %s\n", strings.Join(skills.Backend, ", "))
	}
	if len(skills.Devops) > 0 {
		fmt.Fprintf(b, "- DevOps: %s\n", strings.Join(skills.Devops, ", "))
	}
}

func typeOrder() []CommitType {
	return []CommitType{TypeFeature, TypeFix, TypeTechImprovement, TypeDocs, TypeChore, TypeOther}
}

func prefixed(repo string, items []string, limit int) []string {
	var out []string
	for i, it := range items {
		if i >= limit {
			break
		}
		out = append(out, fmt.Sprintf("%s: %s", repo, it))
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
