package analyze

import (
	"strings"
	"time"
)

// CommitType is the six-member classification enumeration.
type CommitType string

const (
	TypeFeature         CommitType = "feature"
	TypeFix             CommitType = "fix"
	TypeTechImprovement CommitType = "tech-improvement"
	TypeDocs            CommitType = "docs"
	TypeChore           CommitType = "chore"
	TypeOther           CommitType = "other"
)

// ValidType reports whether s is one of the six commit types.
func ValidType(s string) bool {
	switch CommitType(s) {
	case TypeFeature, TypeFix, TypeTechImprovement, TypeDocs, TypeChore, TypeOther:
		return true
	}
	return false
}

// Commit is a raw commit record from the repository scanner. Immutable once
// created.
type Commit struct {
	Hash        string     `json:"hash"`
	Message     string     `json:"message"`
	Date        time.Time  `json:"date"`
	AuthorName  string     `json:"authorName"`
	AuthorEmail string     `json:"authorEmail"`
	TypeHint    CommitType `json:"typeHint"`
}

// DeriveTypeHint classifies a commit message by its conventional prefix.
// The hint is derived once, deterministically, and drives every fallback
// classification.
func DeriveTypeHint(message string) CommitType {
	m := strings.ToLower(strings.TrimSpace(message))
	switch {
	case strings.HasPrefix(m, "feat"):
		return TypeFeature
	case strings.HasPrefix(m, "fix"):
		return TypeFix
	case strings.HasPrefix(m, "perf"), strings.HasPrefix(m, "refactor"):
		return TypeTechImprovement
	default:
		return TypeOther
	}
}

// TruncateReason says which budget clipped a diff snippet.
type TruncateReason string

const (
	// TruncatePerCommit means the per-commit byte cap was the binding
	// constraint.
	TruncatePerCommit TruncateReason = "per-commit"
	// TruncatePerRepo means the repository byte budget was the binding
	// constraint.
	TruncatePerRepo TruncateReason = "per-repo"
)

// EnrichedCommit is a commit plus its bounded diff context and, once the
// classifier has run, its analysis. Analysis is never nil by pipeline end.
type EnrichedCommit struct {
	Commit
	RepoName       string          `json:"repoName"`
	RepoPath       string          `json:"repoPath"`
	DiffSnippet    string          `json:"-"`
	DiffBytes      int             `json:"diffBytes"`
	Truncated      bool            `json:"truncated"`
	TruncateReason TruncateReason  `json:"truncateReason,omitempty"`
	Files          []string        `json:"files,omitempty"`
	DiffError      string          `json:"diffError,omitempty"`
	Analysis       *Classification `json:"analysis,omitempty"`
}

// Classification is the model's (or the fallback's) verdict on one commit.
type Classification struct {
	Type    CommitType `json:"type"`
	Summary string     `json:"summary"`
}

// FallbackClassification is the deterministic classification used whenever
// the model could not provide one. Re-running it always yields the same
// output.
func FallbackClassification(c Commit) Classification {
	return Classification{Type: c.TypeHint, Summary: c.Message}
}

// RepoSummary summarizes one repository's classified contributions.
type RepoSummary struct {
	Repo        string   `json:"repo"`
	Themes      []string `json:"themes"`
	Highlights  []string `json:"highlights"`
	RisksOrDebt []string `json:"risks_or_debt"`
	Evidence    []string `json:"evidence"`
	Outline     []string `json:"outline"`
}

// normalize replaces nil array fields with empty slices so the rendered
// artifacts never carry nulls.
func (s *RepoSummary) normalize() {
	if s.Themes == nil {
		s.Themes = []string{}
	}
	if s.Highlights == nil {
		s.Highlights = []string{}
	}
	if s.RisksOrDebt == nil {
		s.RisksOrDebt = []string{}
	}
	if s.Evidence == nil {
		s.Evidence = []string{}
	}
	if s.Outline == nil {
		s.Outline = []string{}
	}
}

// ProjectSummary is the per-repository slice of an OverallSummary.
type ProjectSummary struct {
	Themes      []string `json:"themes"`
	Highlights  []string `json:"highlights"`
	RisksOrDebt []string `json:"risks_or_debt"`
}

// SkillsSurface groups inferred technologies by area.
type SkillsSurface struct {
	Frontend []string `json:"frontend"`
	Backend  []string `json:"backend"`
	Devops   []string `json:"devops"`
}

// OverallSummary is the cross-repository aggregate.
type OverallSummary struct {
	OverallThemes     []string                  `json:"overall_themes"`
	OverallHighlights []string                  `json:"overall_highlights"`
	ByProject         map[string]ProjectSummary `json:"by_project"`
	SkillsSurface     SkillsSurface             `json:"skills_surface"`
}

func (s *OverallSummary) normalize() {
	if s.OverallThemes == nil {
		s.OverallThemes = []string{}
	}
	if s.OverallHighlights == nil {
		s.OverallHighlights = []string{}
	}
	if s.ByProject == nil {
		s.ByProject = map[string]ProjectSummary{}
	}
	for name, p := range s.ByProject {
		if p.Themes == nil {
			p.Themes = []string{}
		}
		if p.Highlights == nil {
			p.Highlights = []string{}
		}
		if p.RisksOrDebt == nil {
			p.RisksOrDebt = []string{}
		}
		s.ByProject[name] = p
	}
	if s.SkillsSurface.Frontend == nil {
		s.SkillsSurface.Frontend = []string{}
	}
	if s.SkillsSurface.Backend == nil {
		s.SkillsSurface.Backend = []string{}
	}
	if s.SkillsSurface.Devops == nil {
		s.SkillsSurface.Devops = []string{}
	}
}

// Result is the full pipeline output handed to the document renderer. CV and
// Performance are plain markdown-compatible text blocks; the pipeline does
// not know about file paths.
type Result struct {
	Commits       []EnrichedCommit  `json:"commits"`
	RepoSummaries []RepoSummary     `json:"repoSummaries"`
	Overall       OverallSummary    `json:"overall"`
	CV            string            `json:"cv,omitempty"`
	Performance   string            `json:"performance,omitempty"`
	Errors        map[string]string `json:"errors"`
	NoLLM         bool              `json:"noLlm"`
	GeneratedAt   time.Time         `json:"generatedAt"`
}
