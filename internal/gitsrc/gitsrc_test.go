package gitsrc

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkRepo(t *testing.T, root string, parts ...string) {
	t.Helper()
	dir := filepath.Join(append([]string{root}, parts...)...)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
}

func TestDiscoverRepos(t *testing.T) {
	root := t.TempDir()
	mkRepo(t, root, "alpha")
	mkRepo(t, root, "team", "beta")
	mkRepo(t, root, "too", "deep", "down", "gamma")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules", "pkg", ".git"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".hidden", "delta", ".git"), 0o755))

	repos, err := DiscoverRepos(root, 3)
	require.NoError(t, err)

	var names []string
	for _, r := range repos {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"alpha", "beta"}, names)
}

func TestDiscoverReposRootIsRepo(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))

	repos, err := DiscoverRepos(root, 1)
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, filepath.Base(root), repos[0].Name)
	assert.Equal(t, root, repos[0].Path)
}

func TestDiscoverReposNoneFound(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "plain", "dir"), 0o755))
	repos, err := DiscoverRepos(root, 3)
	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestParseLog(t *testing.T) {
	out := "abc123" + fieldSep + "2026-03-01T12:00:00+01:00" + fieldSep +
		"Ada Lovelace" + fieldSep + "ada@example.com" + fieldSep + "feat: add engine" + recordSep +
		"def456" + fieldSep + "2026-03-02T09:30:00Z" + fieldSep +
		"Ada Lovelace" + fieldSep + "ada@example.com" + fieldSep + "fix: null pointer in parser" + recordSep

	commits := parseLog(out)
	require.Len(t, commits, 2)
	assert.Equal(t, "abc123", commits[0].Hash)
	assert.Equal(t, "Ada Lovelace", commits[0].AuthorName)
	assert.Equal(t, "feat: add engine", commits[0].Message)
	assert.Equal(t, 2026, commits[0].Date.Year())
	assert.Equal(t, "fix: null pointer in parser", commits[1].Message)

	loc := commits[1].Date.UTC()
	assert.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), loc)
}

func TestParseLogDropsMalformedRecords(t *testing.T) {
	out := "tooshort" + fieldSep + "fields" + recordSep +
		"bad-date" + fieldSep + "not a date" + fieldSep + "a" + fieldSep + "b" + fieldSep + "c" + recordSep +
		"good" + fieldSep + "2026-01-01T00:00:00Z" + fieldSep + "a" + fieldSep + "b" + fieldSep + "msg" + recordSep

	commits := parseLog(out)
	require.Len(t, commits, 1)
	assert.Equal(t, "good", commits[0].Hash)
}

func TestParseLogEmpty(t *testing.T) {
	assert.Empty(t, parseLog(""))
	assert.Empty(t, parseLog("  \n "))
}
