package analyze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippetFitsUnmodified(t *testing.T) {
	b := NewDiffBudget(1000, 500)
	diff := "diff --git a/x b/x\n+added\n"
	snippet, truncated, reason := b.Snippet(diff)
	assert.Equal(t, diff, snippet)
	assert.False(t, truncated)
	assert.Empty(t, string(reason))
}

func TestSnippetPerCommitTruncation(t *testing.T) {
	b := NewDiffBudget(10_000, 120)
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("+line of diff content\n")
	}
	snippet, truncated, reason := b.Snippet(sb.String())
	assert.True(t, truncated)
	assert.Equal(t, TruncatePerCommit, reason)
	assert.LessOrEqual(t, len(snippet), 120)
	assert.True(t, strings.HasSuffix(snippet, truncationMarker+"\n"))
	// Whole lines only before the marker.
	body := strings.TrimSuffix(snippet, truncationMarker+"\n")
	if body != "" {
		assert.True(t, strings.HasSuffix(body, "\n"))
		for _, line := range strings.Split(strings.TrimSuffix(body, "\n"), "\n") {
			assert.Equal(t, "+line of diff content", line)
		}
	}
}

func TestSnippetRepoBudgetExhaustion(t *testing.T) {
	b := NewDiffBudget(100, 12_000)
	big := strings.Repeat("+x\n", 70) // 210 bytes

	first, truncated, reason := b.Snippet(big)
	assert.True(t, truncated)
	assert.Equal(t, TruncatePerRepo, reason)
	assert.LessOrEqual(t, len(first), 100)

	second, truncated2, reason2 := b.Snippet(big)
	assert.True(t, truncated2)
	assert.Equal(t, TruncatePerRepo, reason2)
	assert.Empty(t, second)
	assert.LessOrEqual(t, len(first)+len(second), 100)
	assert.True(t, b.Exhausted())
}

func TestSnippetTotalNeverExceedsBudget(t *testing.T) {
	const budget = 1000
	b := NewDiffBudget(budget, 300)
	diffs := []string{
		strings.Repeat("+aaaa\n", 100),
		strings.Repeat("+bb\n", 10),
		strings.Repeat("+cccccccc\n", 200),
		strings.Repeat("+d\n", 500),
		"+tiny\n",
	}
	total := 0
	for _, d := range diffs {
		snippet, _, _ := b.Snippet(d)
		total += len(snippet)
	}
	assert.LessOrEqual(t, total, budget)
}

func TestSnippetAfterExhaustion(t *testing.T) {
	b := NewDiffBudget(10, 12_000)
	_, _, _ = b.Snippet(strings.Repeat("+line\n", 10))
	require.True(t, b.Exhausted())
	snippet, truncated, reason := b.Snippet("+more\n")
	assert.Empty(t, snippet)
	assert.True(t, truncated)
	assert.Equal(t, TruncatePerRepo, reason)
}

func TestClipLinesNeverSplitsALine(t *testing.T) {
	s := "first line\nsecond line\nthird line\n"
	clipped := clipLines(s, 15)
	assert.Equal(t, "first line\n", clipped)
	assert.Empty(t, clipLines(s, 0))
	assert.Equal(t, s, clipLines(s, len(s)))
}

func TestExtractFiles(t *testing.T) {
	diff := "diff --git a/cmd/main.go b/cmd/main.go\n" +
		"index 123..456 100644\n" +
		"--- a/cmd/main.go\n" +
		"+++ b/cmd/main.go\n" +
		"+package main\n" +
		"diff --git a/internal/web/app.tsx b/internal/web/app.tsx\n" +
		"+export const x = 1\n"
	files := ExtractFiles(diff)
	assert.Equal(t, []string{"cmd/main.go", "internal/web/app.tsx"}, files)
}

func TestExtractFilesEmptyDiff(t *testing.T) {
	assert.Empty(t, ExtractFiles(""))
	assert.Empty(t, ExtractFiles("+not a header\n"))
}
