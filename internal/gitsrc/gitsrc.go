package gitsrc

import (
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Repo is a discovered repository descriptor.
type Repo struct {
	Name string
	Path string
}

// Commit is one raw commit record as parsed from git log.
type Commit struct {
	Hash        string
	Date        time.Time
	AuthorName  string
	AuthorEmail string
	Message     string
}

// LogOptions filter the commit listing.
type LogOptions struct {
	Author        string
	Since         string
	Until         string
	IncludeMerges bool
	MaxCommits    int
}

// DiscoverRepos walks root looking for .git directories, descending at most
// maxDepth levels below root. The root itself may be a repository. Results
// follow lexical walk order, so discovery is deterministic.
func DiscoverRepos(root string, maxDepth int) ([]Repo, error) {
	root = filepath.Clean(root)
	var repos []Repo
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		depth := 0
		if rel != "." {
			depth = strings.Count(rel, string(filepath.Separator)) + 1
		}
		if depth > maxDepth {
			return filepath.SkipDir
		}
		name := d.Name()
		if rel != "." && strings.HasPrefix(name, ".") && name != ".git" {
			return filepath.SkipDir
		}
		if name == "node_modules" || name == "vendor" {
			return filepath.SkipDir
		}
		if name == ".git" {
			repoPath := filepath.Dir(path)
			repos = append(repos, Repo{Name: filepath.Base(repoPath), Path: repoPath})
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return repos, nil
}

// Field and record separators for the git log format. Unit/record separator
// bytes cannot appear in commit subjects, unlike newlines.
const (
	logFormat = "%H%x1f%aI%x1f%an%x1f%ae%x1f%s%x1e"
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// ListCommits returns commits in git log order (most recent first), already
// filtered by author, date, and merge inclusion, capped at MaxCommits.
func ListCommits(repoPath string, opts LogOptions) ([]Commit, error) {
	args := []string{"log", "--pretty=format:" + logFormat}
	if !opts.IncludeMerges {
		args = append(args, "--no-merges")
	}
	if opts.Author != "" {
		args = append(args, "--author="+opts.Author)
	}
	if opts.Since != "" {
		args = append(args, "--since="+opts.Since)
	}
	if opts.Until != "" {
		args = append(args, "--until="+opts.Until)
	}
	if opts.MaxCommits > 0 {
		args = append(args, fmt.Sprintf("-n%d", opts.MaxCommits))
	}

	out, err := gitOutput(repoPath, args...)
	if err != nil {
		// A repository with no commits yet is not an error.
		if strings.Contains(err.Error(), "does not have any commits") {
			return nil, nil
		}
		return nil, fmt.Errorf("git log: %w", err)
	}
	return parseLog(out), nil
}

// parseLog splits git log output on the record and field separators.
// Malformed records are dropped rather than failing the listing.
func parseLog(out string) []Commit {
	var commits []Commit
	for _, record := range strings.Split(out, recordSep) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}
		fields := strings.Split(record, fieldSep)
		if len(fields) < 5 {
			continue
		}
		date, err := time.Parse(time.RFC3339, fields[1])
		if err != nil {
			continue
		}
		commits = append(commits, Commit{
			Hash:        fields[0],
			Date:        date,
			AuthorName:  fields[2],
			AuthorEmail: fields[3],
			Message:     fields[4],
		})
	}
	return commits
}

// CommitDiff returns the full unified diff for one commit. git show with an
// empty format handles initial commits, which have no parent to diff
// against.
func CommitDiff(repoPath, sha string) (string, error) {
	out, err := gitOutput(repoPath, "show", "--format=", "--patch", sha)
	if err != nil {
		return "", fmt.Errorf("git show %s: %w", sha, err)
	}
	return out, nil
}

func gitOutput(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
