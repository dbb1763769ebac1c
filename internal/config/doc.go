// Package config loads and merges gitbrag configuration from defaults, the
// JSON config file, GITBRAG_* environment variables, and CLI flag
// overrides, in that order of precedence.
package config
