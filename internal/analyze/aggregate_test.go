package analyze

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitbrag/internal/profile"
)

func classifiedCommit(hash, repo, msg string, typ CommitType, files ...string) EnrichedCommit {
	return EnrichedCommit{
		Commit:   Commit{Hash: hash, Message: msg, TypeHint: typ},
		RepoName: repo,
		Files:    files,
		Analysis: &Classification{Type: typ, Summary: msg},
	}
}

func sampleCommits() []EnrichedCommit {
	return []EnrichedCommit{
		classifiedCommit("aaa1111", "web", "feat: add dashboard", TypeFeature, "src/app.tsx"),
		classifiedCommit("bbb2222", "web", "fix: broken login redirect", TypeFix, "src/login.ts"),
		classifiedCommit("ccc3333", "web", "chore: bump deps", TypeChore, "package.json"),
	}
}

func TestRepoSummaryOffline(t *testing.T) {
	a := NewAggregator(nil, true)
	s, err := a.RepoSummary(context.Background(), "web", sampleCommits())
	require.NoError(t, err)
	assert.Equal(t, "web", s.Repo)
	assert.NotEmpty(t, s.Themes)
	assert.NotEmpty(t, s.Highlights)
	assert.NotEmpty(t, s.Evidence)
	assert.Contains(t, s.Highlights[0], "feat: add dashboard")
}

func TestRepoSummaryFromModel(t *testing.T) {
	inv := &scriptedInvoker{responses: []string{
		`Here is the summary: {"themes":["shipping features"],"highlights":["Built the dashboard"],"risks_or_debt":[],"evidence":["aaa1111 feat"],"outline":["features: 1"]}`,
	}}
	a := NewAggregator(inv, false)
	s, err := a.RepoSummary(context.Background(), "web", sampleCommits())
	require.NoError(t, err)
	assert.Equal(t, "web", s.Repo)
	assert.Equal(t, []string{"shipping features"}, s.Themes)
}

func TestRepoSummaryDegradesOnFailure(t *testing.T) {
	inv := &scriptedInvoker{errs: []error{errors.New("provider down")}}
	a := NewAggregator(inv, false)
	s, err := a.RepoSummary(context.Background(), "web", sampleCommits())
	require.Error(t, err)
	assert.Equal(t, "web", s.Repo)
	assert.NotEmpty(t, s.Themes)
}

func TestRepoSummaryDegradesOnEmptyResult(t *testing.T) {
	inv := &scriptedInvoker{responses: []string{`{"themes":[],"highlights":[],"outline":[]}`}}
	a := NewAggregator(inv, false)
	s, err := a.RepoSummary(context.Background(), "web", sampleCommits())
	require.Error(t, err)
	assert.NotEmpty(t, s.Themes)
}

func TestOverallKeepsInferredSkills(t *testing.T) {
	inv := &scriptedInvoker{responses: []string{
		`{"overall_themes":["frontend work"],"overall_highlights":["Dashboard"],"by_project":{},"skills_surface":{"frontend":["made-up"],"backend":[],"devops":[]}}`,
	}}
	a := NewAggregator(inv, false)
	s, err := a.Overall(context.Background(), nil, sampleCommits())
	require.NoError(t, err)
	// The skills surface is always recomputed from touched files.
	assert.Contains(t, s.SkillsSurface.Frontend, "React")
	assert.Contains(t, s.SkillsSurface.Frontend, "TypeScript")
	assert.NotContains(t, s.SkillsSurface.Frontend, "made-up")
}

func TestOverallOffline(t *testing.T) {
	a := NewAggregator(nil, true)
	repoSum := offlineRepoSummary("web", sampleCommits())
	s, err := a.Overall(context.Background(), []RepoSummary{repoSum}, sampleCommits())
	require.NoError(t, err)
	assert.NotEmpty(t, s.OverallThemes)
	assert.Contains(t, s.ByProject, "web")
}

func TestCVDisabledOffline(t *testing.T) {
	a := NewAggregator(nil, true)
	body, err := a.CV(context.Background(), nil, OverallSummary{}, nil)
	require.NoError(t, err)
	assert.Empty(t, body)

	body, err = a.Performance(context.Background(), nil, OverallSummary{}, nil)
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestCVDegradesToOfflineBody(t *testing.T) {
	inv := &scriptedInvoker{errs: []error{errors.New("timeout")}}
	a := NewAggregator(inv, false)
	prof := &profile.Profile{Name: "Ada Lovelace", Title: "Engineer"}
	repoSum := offlineRepoSummary("web", sampleCommits())
	body, err := a.CV(context.Background(), prof, OverallSummary{}, []RepoSummary{repoSum})
	require.Error(t, err)
	assert.Contains(t, body, "Selected Contributions")
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, "## web")
}

func TestPerformanceDegradesOnBlankResponse(t *testing.T) {
	inv := &scriptedInvoker{responses: []string{"   \n"}}
	a := NewAggregator(inv, false)
	body, err := a.Performance(context.Background(), nil, OverallSummary{}, nil)
	require.Error(t, err)
	assert.Contains(t, body, "Performance Summary")
}

func TestInferSkills(t *testing.T) {
	commits := []EnrichedCommit{
		{Files: []string{"web/app.tsx", "api/server.go", "deploy/Dockerfile", "ci/pipeline.yml"}},
	}
	skills := inferSkills(commits)
	assert.Equal(t, []string{"React"}, skills.Frontend)
	assert.Equal(t, []string{"Go"}, skills.Backend)
	assert.Equal(t, []string{"CI config", "Docker"}, skills.Devops)
}
