package analyze

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitbrag/internal/providers"
)

// scriptedInvoker replays canned responses in order and records how many
// calls it received.
type scriptedInvoker struct {
	responses []string
	errs      []error
	calls     int
}

func (s *scriptedInvoker) Invoke(ctx context.Context, req providers.Request) (string, error) {
	i := s.calls
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	var resp string
	if i < len(s.responses) {
		resp = s.responses[i]
	}
	return resp, err
}

func (s *scriptedInvoker) Name() string { return "scripted" }

func batchOf(hashes ...string) []EnrichedCommit {
	var out []EnrichedCommit
	for _, h := range hashes {
		out = append(out, EnrichedCommit{
			Commit: Commit{Hash: h, Message: "fix: " + h, TypeHint: TypeFix},
		})
	}
	return out
}

func TestClassifyAllParsesProseWrappedArray(t *testing.T) {
	inv := &scriptedInvoker{responses: []string{
		`Sure! [{"hash":"abc123","type":"fix","summary":"Fixed a crash"}] Thanks.`,
	}}
	c := NewClassifier(inv)
	got, err := c.ClassifyAll(context.Background(), [][]EnrichedCommit{batchOf("abc123")})
	require.NoError(t, err)
	assert.Equal(t, Classification{Type: TypeFix, Summary: "Fixed a crash"}, got["abc123"])
	assert.Equal(t, 1, inv.calls)
}

func TestClassifyAllFallbackOnProviderError(t *testing.T) {
	inv := &scriptedInvoker{errs: []error{errors.New("boom")}}
	c := NewClassifier(inv)
	batch := batchOf("abc123", "def456")
	got, err := c.ClassifyAll(context.Background(), [][]EnrichedCommit{batch})
	require.Error(t, err)
	assert.Len(t, got, 2)
	for _, commit := range batch {
		assert.Equal(t, FallbackClassification(commit.Commit), got[commit.Hash])
	}
}

func TestClassifyAllFallbackOnMalformedResponse(t *testing.T) {
	inv := &scriptedInvoker{responses: []string{"I could not classify these commits."}}
	c := NewClassifier(inv)
	got, err := c.ClassifyAll(context.Background(), [][]EnrichedCommit{batchOf("abc123")})
	require.Error(t, err)
	assert.Equal(t, Classification{Type: TypeFix, Summary: "fix: abc123"}, got["abc123"])
}

func TestClassifyAllFillsOmittedCommits(t *testing.T) {
	inv := &scriptedInvoker{responses: []string{
		`[{"hash":"abc123","type":"feature","summary":"Added search"}]`,
	}}
	c := NewClassifier(inv)
	got, err := c.ClassifyAll(context.Background(), [][]EnrichedCommit{batchOf("abc123", "missing")})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, TypeFeature, got["abc123"].Type)
	assert.Equal(t, Classification{Type: TypeFix, Summary: "fix: missing"}, got["missing"])
}

func TestClassifyAllFailedBatchDoesNotAbortRest(t *testing.T) {
	inv := &scriptedInvoker{
		responses: []string{"", `[{"hash":"b1","type":"chore","summary":"Bumped deps"}]`},
		errs:      []error{errors.New("rate limited"), nil},
	}
	c := NewClassifier(inv)
	got, err := c.ClassifyAll(context.Background(), [][]EnrichedCommit{batchOf("a1"), batchOf("b1")})
	require.Error(t, err)
	assert.Equal(t, 2, inv.calls)
	assert.Equal(t, Classification{Type: TypeFix, Summary: "fix: a1"}, got["a1"])
	assert.Equal(t, Classification{Type: TypeChore, Summary: "Bumped deps"}, got["b1"])
}

func TestClassifyAllOfflineSkipsInvoker(t *testing.T) {
	c := NewClassifier(nil)
	got, err := c.ClassifyAll(context.Background(), [][]EnrichedCommit{batchOf("a1", "a2")})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestParseClassificationsCoercions(t *testing.T) {
	got, err := parseClassifications(`[
		{"hash":"h1","type":"bugfix","summary":"something"},
		{"hash":"h2","type":"docs","summary":"   "},
		{"hash":"","type":"fix","summary":"no hash"},
		{"hash":"h3","type":"feature","summary":"Real work"}
	]`)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, TypeOther, got["h1"].Type)
	assert.Equal(t, summaryPlaceholder, got["h2"].Summary)
	assert.Equal(t, TypeDocs, got["h2"].Type)
	assert.Equal(t, Classification{Type: TypeFeature, Summary: "Real work"}, got["h3"])
}
