package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gitbrag/internal/providers"
)

// summaryPlaceholder marks summaries the model failed to provide. Degraded
// output stays usable instead of surfacing an error.
const summaryPlaceholder = "unclear from diff"

// rawClassification mirrors one element of the model's JSON array.
type rawClassification struct {
	Hash    string `json:"hash"`
	Type    string `json:"type"`
	Summary string `json:"summary"`
}

// Classifier turns batches of commits into hash → classification maps. A nil
// llm (offline mode) skips the network entirely and produces fallback
// classifications.
type Classifier struct {
	llm providers.Invoker
}

// NewClassifier creates a Classifier over the given invoker, which may be
// nil for offline runs.
func NewClassifier(llm providers.Invoker) *Classifier {
	return &Classifier{llm: llm}
}

// ClassifyAll processes batches strictly sequentially. A failed batch falls
// back per-commit and never aborts the remaining batches; the first error is
// returned for the run's error log. Afterwards every commit across all
// batches has exactly one entry, model omissions included.
func (c *Classifier) ClassifyAll(ctx context.Context, batches [][]EnrichedCommit) (map[string]Classification, error) {
	out := make(map[string]Classification)
	var firstErr error
	for _, batch := range batches {
		got, err := c.classifyBatch(ctx, batch)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		for hash, cl := range got {
			out[hash] = cl
		}
	}
	// Commit-level fallback for anything the model omitted.
	for _, batch := range batches {
		for _, commit := range batch {
			if _, ok := out[commit.Hash]; !ok {
				out[commit.Hash] = FallbackClassification(commit.Commit)
			}
		}
	}
	return out, firstErr
}

// classifyBatch asks the model for one batch. Any provider or parse failure
// degrades the whole batch to fallback classifications.
func (c *Classifier) classifyBatch(ctx context.Context, batch []EnrichedCommit) (map[string]Classification, error) {
	if len(batch) == 0 {
		return map[string]Classification{}, nil
	}
	if c.llm == nil {
		return fallbackBatch(batch), nil
	}

	resp, err := c.llm.Invoke(ctx, providers.Request{
		Prompt: buildClassifyPrompt(batch),
		Format: providers.FormatJSON,
	})
	if err != nil {
		return fallbackBatch(batch), fmt.Errorf("classify: %w", err)
	}

	parsed, err := parseClassifications(resp)
	if err != nil {
		return fallbackBatch(batch), fmt.Errorf("classify: %w", err)
	}
	return parsed, nil
}

func fallbackBatch(batch []EnrichedCommit) map[string]Classification {
	out := make(map[string]Classification, len(batch))
	for _, c := range batch {
		out[c.Hash] = FallbackClassification(c.Commit)
	}
	return out
}

// parseClassifications extracts and validates the model's JSON array.
// Unknown types coerce to "other", blank summaries to the placeholder, and
// elements without a usable hash are skipped.
func parseClassifications(content string) (map[string]Classification, error) {
	text, ok := ExtractJSONArray(content)
	if !ok {
		return nil, errors.New("no JSON array in response")
	}
	var raw []rawClassification
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON array: %w", err)
	}

	out := make(map[string]Classification, len(raw))
	for _, r := range raw {
		hash := strings.TrimSpace(r.Hash)
		if hash == "" {
			continue
		}
		cl := Classification{
			Type:    CommitType(strings.TrimSpace(r.Type)),
			Summary: strings.TrimSpace(r.Summary),
		}
		if !ValidType(string(cl.Type)) {
			cl.Type = TypeOther
		}
		if cl.Summary == "" {
			cl.Summary = summaryPlaceholder
		}
		out[hash] = cl
	}
	return out, nil
}
