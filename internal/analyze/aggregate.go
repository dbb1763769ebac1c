package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gitbrag/internal/profile"
	"gitbrag/internal/providers"
)

// Aggregator produces the summary artifacts. Every stage makes at most one
// gateway call and degrades to a deterministic offline equivalent on any
// failure, so the run always yields usable output.
type Aggregator struct {
	llm   providers.Invoker
	noLLM bool
}

// NewAggregator creates an Aggregator. With noLLM set (or a nil invoker)
// every stage short-circuits to the offline path.
func NewAggregator(llm providers.Invoker, noLLM bool) *Aggregator {
	return &Aggregator{llm: llm, noLLM: noLLM || llm == nil}
}

// RepoSummary summarizes one repository. The returned summary is always
// usable; a non-nil error only feeds the run's error log.
func (a *Aggregator) RepoSummary(ctx context.Context, repoName string, commits []EnrichedCommit) (RepoSummary, error) {
	if a.noLLM {
		return offlineRepoSummary(repoName, commits), nil
	}
	resp, err := a.llm.Invoke(ctx, providers.Request{
		Prompt: buildRepoSummaryPrompt(repoName, commits),
		Format: providers.FormatJSON,
	})
	if err != nil {
		return offlineRepoSummary(repoName, commits), fmt.Errorf("repo summary: %w", err)
	}

	var s RepoSummary
	if err := parseJSONObject(resp, &s); err != nil {
		return offlineRepoSummary(repoName, commits), fmt.Errorf("repo summary: %w", err)
	}
	s.Repo = repoName
	s.normalize()
	if len(s.Themes)+len(s.Highlights)+len(s.Outline) == 0 {
		return offlineRepoSummary(repoName, commits), errors.New("repo summary: empty result")
	}
	return s, nil
}

// Overall aggregates across repositories.
func (a *Aggregator) Overall(ctx context.Context, repos []RepoSummary, commits []EnrichedCommit) (OverallSummary, error) {
	if a.noLLM {
		return offlineOverall(repos, commits), nil
	}
	resp, err := a.llm.Invoke(ctx, providers.Request{
		Prompt: buildOverallPrompt(repos, commits),
		Format: providers.FormatJSON,
	})
	if err != nil {
		return offlineOverall(repos, commits), fmt.Errorf("overall summary: %w", err)
	}

	var s OverallSummary
	if err := parseJSONObject(resp, &s); err != nil {
		return offlineOverall(repos, commits), fmt.Errorf("overall summary: %w", err)
	}
	// The model rarely infers skills well; keep the deterministic surface.
	s.SkillsSurface = inferSkills(commits)
	s.normalize()
	if len(s.OverallThemes)+len(s.OverallHighlights) == 0 {
		return offlineOverall(repos, commits), errors.New("overall summary: empty result")
	}
	return s, nil
}

// CV generates the CV body. Disabled (empty result, nil error) in noLlm mode
// since the narrative is meaningless without a model; an LLM failure instead
// degrades to the deterministic offline body.
func (a *Aggregator) CV(ctx context.Context, prof *profile.Profile, overall OverallSummary, repos []RepoSummary) (string, error) {
	if a.noLLM {
		return "", nil
	}
	resp, err := a.llm.Invoke(ctx, providers.Request{
		Prompt: buildCVPrompt(prof, overall, repos),
		Format: providers.FormatText,
	})
	if err != nil || strings.TrimSpace(resp) == "" {
		if err == nil {
			err = errors.New("empty result")
		}
		return offlineCV(prof, overall, repos), fmt.Errorf("cv: %w", err)
	}
	return resp, nil
}

// Performance generates the performance-report body with the same
// degradation rules as CV.
func (a *Aggregator) Performance(ctx context.Context, prof *profile.Profile, overall OverallSummary, repos []RepoSummary) (string, error) {
	if a.noLLM {
		return "", nil
	}
	resp, err := a.llm.Invoke(ctx, providers.Request{
		Prompt: buildPerformancePrompt(prof, overall, repos),
		Format: providers.FormatText,
	})
	if err != nil || strings.TrimSpace(resp) == "" {
		if err == nil {
			err = errors.New("empty result")
		}
		return offlinePerformance(prof, overall, repos), fmt.Errorf("performance report: %w", err)
	}
	return resp, nil
}

// parseJSONObject bracket-scans content for a JSON object and unmarshals it.
func parseJSONObject(content string, v any) error {
	text, ok := ExtractJSONObject(content)
	if !ok {
		return errors.New("no JSON object in response")
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("invalid JSON object: %w", err)
	}
	return nil
}
