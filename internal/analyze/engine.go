package analyze

import (
	"context"
	"time"

	"gitbrag/internal/profile"
	"gitbrag/internal/providers"
)

// Repo pairs a repository descriptor with its already-filtered commit list,
// as handed over by the repository scanner.
type Repo struct {
	Name    string
	Path    string
	Commits []Commit
}

// Options configures a pipeline run.
type Options struct {
	MaxDiffBytes   int
	PerCommitBytes int
	BatchChars     int
	NoLLM          bool
	// Redact, when set, scrubs each raw diff before budgeting so secrets
	// never reach a prompt.
	Redact  func(string) string
	Profile *profile.Profile
}

// Run executes the full pipeline: diff budgeting, batching, classification,
// per-repo aggregation, then cross-repo aggregation. Everything is strictly
// sequential, preserving input order, with one in-flight request at a time.
// Stage failures degrade locally and land in Result.Errors; Run itself only
// fails on a canceled context.
func Run(ctx context.Context, repos []Repo, llm providers.Invoker, diffs DiffSource, opts Options) (*Result, error) {
	res := &Result{
		Errors:      make(map[string]string),
		NoLLM:       opts.NoLLM,
		GeneratedAt: time.Now(),
	}
	if opts.NoLLM {
		llm = nil
	}

	classifier := NewClassifier(llm)
	aggregator := NewAggregator(llm, opts.NoLLM)

	for _, repo := range repos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		enriched := enrichCommits(repo, diffs, opts)

		batches := SplitIntoBatches(enriched, opts.BatchChars)
		classified, err := classifier.ClassifyAll(ctx, batches)
		if err != nil {
			res.Errors[repo.Name+"/classify"] = err.Error()
		}
		for i := range enriched {
			cl := classified[enriched[i].Hash]
			enriched[i].Analysis = &cl
		}

		summary, err := aggregator.RepoSummary(ctx, repo.Name, enriched)
		if err != nil {
			res.Errors[repo.Name+"/summary"] = err.Error()
		}
		res.RepoSummaries = append(res.RepoSummaries, summary)
		res.Commits = append(res.Commits, enriched...)
	}

	overall, err := aggregator.Overall(ctx, res.RepoSummaries, res.Commits)
	if err != nil {
		res.Errors["overall"] = err.Error()
	}
	res.Overall = overall

	res.CV, err = aggregator.CV(ctx, opts.Profile, res.Overall, res.RepoSummaries)
	if err != nil {
		res.Errors["cv"] = err.Error()
	}
	res.Performance, err = aggregator.Performance(ctx, opts.Profile, res.Overall, res.RepoSummaries)
	if err != nil {
		res.Errors["performance"] = err.Error()
	}

	return res, nil
}

// enrichCommits attaches budgeted diff snippets to a repository's commits.
// Once the repository budget is exhausted no further diffs are fetched. A
// diff fetch failure is recorded on the commit and the walk continues.
func enrichCommits(repo Repo, diffs DiffSource, opts Options) []EnrichedCommit {
	budget := NewDiffBudget(opts.MaxDiffBytes, opts.PerCommitBytes)
	enriched := make([]EnrichedCommit, 0, len(repo.Commits))

	for _, c := range repo.Commits {
		ec := EnrichedCommit{Commit: c, RepoName: repo.Name, RepoPath: repo.Path}

		if budget.Exhausted() {
			ec.Truncated = true
			ec.TruncateReason = TruncatePerRepo
			enriched = append(enriched, ec)
			continue
		}
		if diffs == nil {
			enriched = append(enriched, ec)
			continue
		}

		diff, err := diffs(repo.Path, c.Hash)
		if err != nil {
			ec.DiffError = err.Error()
			enriched = append(enriched, ec)
			continue
		}
		if opts.Redact != nil {
			diff = opts.Redact(diff)
		}
		ec.Files = ExtractFiles(diff)
		ec.DiffSnippet, ec.Truncated, ec.TruncateReason = budget.Snippet(diff)
		ec.DiffBytes = len(ec.DiffSnippet)
		enriched = append(enriched, ec)
	}
	return enriched
}
