package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gitbrag/internal/analyze"
	"gitbrag/internal/config"
	"gitbrag/internal/gitsrc"
	"gitbrag/internal/output"
	"gitbrag/internal/profile"
	"gitbrag/internal/providers"
	"gitbrag/internal/redact"
	"github.com/spf13/cobra"
)

var (
	flagDir           string
	flagRepos         string
	flagAuthor        string
	flagSince         string
	flagUntil         string
	flagIncludeMerges bool
	flagMaxCommits    int
	flagProvider      string
	flagModel         string
	flagNoLLM         bool
	flagOutDir        string
	flagProfile       string
	flagMaxDiffBytes  int
	flagBatchChars    int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Analyze commits and generate review documents",
	Long:  "Scan for repositories, classify the matching commits, and write the brag, summary, CV, and performance documents to the output directory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		runGenerate(cfg)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&flagDir, "dir", "", "Root directory to scan for repositories")
	generateCmd.Flags().StringVar(&flagRepos, "repos", "", "Use these repository paths directly (comma-separated), skipping discovery")
	generateCmd.Flags().StringVar(&flagAuthor, "author", "", "Author name or email to filter commits (required)")
	generateCmd.Flags().StringVar(&flagSince, "since", "", "Only commits after this date (git approxidate)")
	generateCmd.Flags().StringVar(&flagUntil, "until", "", "Only commits before this date")
	generateCmd.Flags().BoolVar(&flagIncludeMerges, "include-merges", false, "Include merge commits")
	generateCmd.Flags().IntVar(&flagMaxCommits, "max-commits", 0, "Maximum commits per repository")
	generateCmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (gemini, openai, anthropic)")
	generateCmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	generateCmd.Flags().BoolVar(&flagNoLLM, "no-llm", false, "Skip all model calls and aggregate offline")
	generateCmd.Flags().StringVar(&flagOutDir, "out-dir", "", "Output directory for generated documents")
	generateCmd.Flags().StringVar(&flagProfile, "profile", "", "YAML profile file for CV and performance prompts")
	generateCmd.Flags().IntVar(&flagMaxDiffBytes, "max-diff-bytes", 0, "Per-repository diff byte budget")
	generateCmd.Flags().IntVar(&flagBatchChars, "batch-chars", 0, "Character budget per classification batch")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	setIf := func(key, val string) {
		if val != "" {
			m[key] = val
		}
	}
	setIf("scanRoot", flagDir)
	setIf("author", flagAuthor)
	setIf("since", flagSince)
	setIf("until", flagUntil)
	setIf("provider", flagProvider)
	setIf("model", flagModel)
	setIf("outDir", flagOutDir)
	setIf("profileFile", flagProfile)
	if flagIncludeMerges {
		m["includeMerges"] = "true"
	}
	if flagNoLLM {
		m["noLlm"] = "true"
	}
	if flagMaxCommits > 0 {
		m["maxCommits"] = fmt.Sprintf("%d", flagMaxCommits)
	}
	if flagMaxDiffBytes > 0 {
		m["maxDiffBytes"] = fmt.Sprintf("%d", flagMaxDiffBytes)
	}
	if flagBatchChars > 0 {
		m["batchChars"] = fmt.Sprintf("%d", flagBatchChars)
	}
	return m
}

func runGenerate(cfg config.Config) {
	// Setup errors are fatal before any pipeline work starts.
	if cfg.Author == "" {
		fmt.Fprintln(os.Stderr, "Error: an author filter is required (--author or GITBRAG_AUTHOR)")
		exitCode = ExitUsageError
		return
	}

	prof, err := profile.Load(cfg.ProfileFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	var llm providers.Invoker
	if !cfg.NoLLM {
		client, err := providers.NewClientFromEnv(cfg.Provider, cfg.Model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitAuthError
			return
		}
		llm = client
	}

	repos, err := collectRepos(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	if len(repos) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no git repositories found")
		exitCode = ExitUsageError
		return
	}

	pipelineRepos, total := loadCommits(repos, cfg)
	if total == 0 {
		fmt.Fprintln(os.Stderr, "Error: no commits matched the author/date filters")
		exitCode = ExitUsageError
		return
	}
	fmt.Fprintf(os.Stderr, "Analyzing %d commits across %d repositories\n", total, len(pipelineRepos))

	opts := analyze.Options{
		MaxDiffBytes:   cfg.MaxDiffBytes,
		PerCommitBytes: cfg.PerCommitBytes,
		BatchChars:     cfg.BatchChars,
		NoLLM:          cfg.NoLLM,
		Profile:        prof,
	}
	if cfg.RedactSecrets {
		opts.Redact = redact.Diff
	}

	res, err := analyze.Run(context.Background(), pipelineRepos, llm, gitsrc.CommitDiff, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	written, err := output.WriteAll(res, cfg.OutDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	for _, path := range written {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	}
	if len(res.Errors) > 0 {
		fmt.Fprintf(os.Stderr, "%d stages degraded to offline output; see the summary appendix\n", len(res.Errors))
	}
}

// collectRepos resolves the repository set from --repos or by discovery
// under the scan root.
func collectRepos(cfg config.Config) ([]gitsrc.Repo, error) {
	if flagRepos != "" {
		var repos []gitsrc.Repo
		for _, p := range splitComma(flagRepos) {
			repos = append(repos, gitsrc.Repo{Name: repoName(p), Path: p})
		}
		return repos, nil
	}
	return gitsrc.DiscoverRepos(cfg.ScanRoot, cfg.ScanDepth)
}

// loadCommits lists each repository's commits and converts them into
// pipeline inputs. Repositories with no matching commits are dropped.
func loadCommits(repos []gitsrc.Repo, cfg config.Config) ([]analyze.Repo, int) {
	var out []analyze.Repo
	total := 0
	for _, r := range repos {
		records, err := gitsrc.ListCommits(r.Path, gitsrc.LogOptions{
			Author:        cfg.Author,
			Since:         cfg.Since,
			Until:         cfg.Until,
			IncludeMerges: cfg.IncludeMerges,
			MaxCommits:    cfg.MaxCommits,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", r.Name, err)
			continue
		}
		if len(records) == 0 {
			continue
		}
		commits := make([]analyze.Commit, 0, len(records))
		for _, rec := range records {
			commits = append(commits, analyze.Commit{
				Hash:        rec.Hash,
				Message:     rec.Message,
				Date:        rec.Date,
				AuthorName:  rec.AuthorName,
				AuthorEmail: rec.AuthorEmail,
				TypeHint:    analyze.DeriveTypeHint(rec.Message),
			})
		}
		out = append(out, analyze.Repo{Name: r.Name, Path: r.Path, Commits: commits})
		total += len(commits)
	}
	return out, total
}

func repoName(path string) string {
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func splitComma(s string) []string {
	var result []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
