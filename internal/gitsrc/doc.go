// Package gitsrc is the repository scanner: it discovers local git
// repositories, lists commits filtered by author and date via git log, and
// fetches per-commit unified diffs via git show. All git access shells out
// to the git binary.
package gitsrc
