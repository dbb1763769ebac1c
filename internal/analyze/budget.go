package analyze

import "strings"

const (
	// DefaultMaxDiffBytes bounds total snippet bytes per repository.
	DefaultMaxDiffBytes = 1_500_000
	// DefaultPerCommitBytes caps a single commit's snippet.
	DefaultPerCommitBytes = 12_000
	// truncationMarker ends every clipped snippet on its own line.
	truncationMarker = "... [diff truncated]"
)

// DiffSource fetches the full unified diff for one commit. A failure is a
// per-commit soft error, not fatal to the run.
type DiffSource func(repoPath, hash string) (string, error)

// DiffBudget walks one repository's commits in listing order and hands out
// snippet bytes until the repository budget runs dry. Earlier-listed commits
// keep their full context.
type DiffBudget struct {
	remaining      int
	perCommitBytes int
}

// NewDiffBudget creates a budget for one repository. Non-positive arguments
// fall back to the defaults.
func NewDiffBudget(maxDiffBytes, perCommitBytes int) *DiffBudget {
	if maxDiffBytes <= 0 {
		maxDiffBytes = DefaultMaxDiffBytes
	}
	if perCommitBytes <= 0 {
		perCommitBytes = DefaultPerCommitBytes
	}
	return &DiffBudget{remaining: maxDiffBytes, perCommitBytes: perCommitBytes}
}

// Exhausted reports whether the repository budget is spent. Callers should
// skip the diff fetch entirely once it returns true.
func (b *DiffBudget) Exhausted() bool { return b.remaining <= 0 }

// Snippet trims diff to the commit's effective budget: the smaller of the
// per-commit cap and the remaining repository budget. Truncation copies
// whole lines only, then appends the truncation marker. The budget is
// decremented by the bytes actually emitted, not the cap.
func (b *DiffBudget) Snippet(diff string) (snippet string, truncated bool, reason TruncateReason) {
	if b.remaining <= 0 {
		return "", true, TruncatePerRepo
	}
	limit := b.perCommitBytes
	reason = TruncatePerCommit
	if b.remaining < limit {
		limit = b.remaining
		reason = TruncatePerRepo
	}
	if len(diff) <= limit {
		b.remaining -= len(diff)
		return diff, false, ""
	}
	if limit <= len(truncationMarker)+1 {
		// Not enough room left for even the marker line.
		b.remaining = 0
		return "", true, reason
	}
	body := clipLines(diff, limit-len(truncationMarker)-1)
	snippet = body + truncationMarker + "\n"
	b.remaining -= len(snippet)
	return snippet, true, reason
}

// clipLines keeps whole lines of s up to max bytes. It never splits a line,
// so a clipped diff stays parseable as text.
func clipLines(s string, max int) string {
	if max <= 0 {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.SplitAfter(s, "\n") {
		if b.Len()+len(line) > max {
			break
		}
		b.WriteString(line)
	}
	return b.String()
}

// ExtractFiles parses the paths touched by a unified diff from its
// "diff --git a/... b/..." header lines, deduplicated in first-seen order.
func ExtractFiles(diff string) []string {
	var files []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(diff, "\n") {
		if !strings.HasPrefix(line, "diff --git ") {
			continue
		}
		fields := strings.Fields(line)
		for _, tok := range fields[2:] {
			path := strings.TrimPrefix(tok, "a/")
			path = strings.TrimPrefix(path, "b/")
			if path != "" && !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
		}
	}
	return files
}
