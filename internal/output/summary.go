package output

import (
	"io"
	"sort"
	"strings"

	"gitbrag/internal/analyze"
)

// SummaryWriter renders the overall summary artifact, including the error
// log appendix so degraded stages are visible in the run metadata.
type SummaryWriter struct{}

func (s *SummaryWriter) Write(w io.Writer, res *analyze.Result) error {
	ew := &errWriter{w: w}

	ew.printf("# Contribution Summary\n\n")
	if res.NoLLM {
		ew.printf("_Offline aggregation (no model calls)._\n\n")
	}

	writeMdList(ew, "Themes", res.Overall.OverallThemes)
	writeMdList(ew, "Highlights", res.Overall.OverallHighlights)

	if len(res.Overall.ByProject) > 0 {
		ew.printf("## Projects\n\n")
		for _, name := range sortedProjectNames(res.Overall.ByProject) {
			p := res.Overall.ByProject[name]
			ew.printf("### %s\n\n", name)
			writeLabeledList(ew, "Themes", p.Themes)
			writeLabeledList(ew, "Highlights", p.Highlights)
			writeLabeledList(ew, "Risks / Debt", p.RisksOrDebt)
		}
	}

	skills := res.Overall.SkillsSurface
	if len(skills.Frontend)+len(skills.Backend)+len(skills.Devops) > 0 {
		ew.printf("## Skills Surface\n\n")
		if len(skills.Frontend) > 0 {
			ew.printf("- Frontend: %s\n", strings.Join(skills.Frontend, ", "))
		}
		if len(skills.Backend) > 0 {
			ew.printf("- Backend: %s\n", strings.Join(skills.Backend, ", "))
		}
		if len(skills.Devops) > 0 {
			ew.printf("- DevOps: %s\n", strings.Join(skills.Devops, ", "))
		}
		ew.println("")
	}

	if len(res.Errors) > 0 {
		ew.printf("## Degraded Stages\n\n")
		for _, key := range sortedErrorKeys(res.Errors) {
			ew.printf("- `%s`: %s\n", key, res.Errors[key])
		}
	}
	return ew.err
}

func writeMdList(ew *errWriter, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	ew.printf("## %s\n\n", heading)
	for _, it := range items {
		ew.printf("- %s\n", it)
	}
	ew.println("")
}

func writeLabeledList(ew *errWriter, label string, items []string) {
	if len(items) == 0 {
		return
	}
	ew.printf("**%s:**\n\n", label)
	for _, it := range items {
		ew.printf("- %s\n", it)
	}
	ew.println("")
}

func sortedProjectNames(m map[string]analyze.ProjectSummary) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedErrorKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
