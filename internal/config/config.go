package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"gitbrag/internal/analyze"
)

// Config represents the gitbrag configuration.
type Config struct {
	Provider       string `json:"provider"`
	Model          string `json:"model"`
	Author         string `json:"author,omitempty"`
	Since          string `json:"since,omitempty"`
	Until          string `json:"until,omitempty"`
	IncludeMerges  bool   `json:"includeMerges"`
	MaxCommits     int    `json:"maxCommits"`
	MaxDiffBytes   int    `json:"maxDiffBytes"`
	PerCommitBytes int    `json:"perCommitDiffBytes"`
	BatchChars     int    `json:"batchChars"`
	ScanRoot       string `json:"scanRoot,omitempty"`
	ScanDepth      int    `json:"scanDepth"`
	OutDir         string `json:"outDir"`
	NoLLM          bool   `json:"noLlm"`
	RedactSecrets  bool   `json:"redactSecrets"`
	ProfileFile    string `json:"profileFile,omitempty"`
}

// Default returns a Config with all defaults applied. The byte and char
// budgets are tuning constants, not semantics; override freely.
func Default() Config {
	return Config{
		Provider:       "gemini",
		Model:          "gemini-2.0-flash",
		MaxCommits:     300,
		MaxDiffBytes:   analyze.DefaultMaxDiffBytes,
		PerCommitBytes: analyze.DefaultPerCommitBytes,
		BatchChars:     analyze.DefaultBatchChars,
		ScanRoot:       ".",
		ScanDepth:      3,
		OutDir:         "brag-output",
		RedactSecrets:  true,
	}
}

// ConfigDir returns the platform-appropriate config directory for gitbrag.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitbrag"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "gitbrag"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "gitbrag"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "gitbrag"), nil
	default:
		return filepath.Join(home, ".config", "gitbrag"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil
// error if the file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides. The overrides map comes from CLI flags (only non-zero values
// should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Author != "" {
		dst.Author = src.Author
	}
	if src.Since != "" {
		dst.Since = src.Since
	}
	if src.Until != "" {
		dst.Until = src.Until
	}
	if src.MaxCommits > 0 {
		dst.MaxCommits = src.MaxCommits
	}
	if src.MaxDiffBytes > 0 {
		dst.MaxDiffBytes = src.MaxDiffBytes
	}
	if src.PerCommitBytes > 0 {
		dst.PerCommitBytes = src.PerCommitBytes
	}
	if src.BatchChars > 0 {
		dst.BatchChars = src.BatchChars
	}
	if src.ScanRoot != "" {
		dst.ScanRoot = src.ScanRoot
	}
	if src.ScanDepth > 0 {
		dst.ScanDepth = src.ScanDepth
	}
	if src.OutDir != "" {
		dst.OutDir = src.OutDir
	}
	if src.ProfileFile != "" {
		dst.ProfileFile = src.ProfileFile
	}
	// JSON zero value for bool can't be told apart from unset; trust the
	// file for the flags it can only turn on.
	dst.IncludeMerges = src.IncludeMerges || dst.IncludeMerges
	dst.NoLLM = src.NoLLM || dst.NoLLM
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("GITBRAG_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("GITBRAG_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("GITBRAG_AUTHOR"); v != "" {
		cfg.Author = v
	}
	if v := os.Getenv("GITBRAG_OUT_DIR"); v != "" {
		cfg.OutDir = v
	}
	if v := os.Getenv("GITBRAG_SCAN_ROOT"); v != "" {
		cfg.ScanRoot = v
	}
	if v := os.Getenv("GITBRAG_MAX_COMMITS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxCommits = n
		}
	}
	if v := os.Getenv("GITBRAG_NO_LLM"); v == "1" || v == "true" {
		cfg.NoLLM = true
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	setString := func(key string, dst *string) {
		if v, ok := overrides[key]; ok && v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v, ok := overrides[key]; ok && v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setString("provider", &cfg.Provider)
	setString("model", &cfg.Model)
	setString("author", &cfg.Author)
	setString("since", &cfg.Since)
	setString("until", &cfg.Until)
	setString("scanRoot", &cfg.ScanRoot)
	setString("outDir", &cfg.OutDir)
	setString("profileFile", &cfg.ProfileFile)
	setInt("maxCommits", &cfg.MaxCommits)
	setInt("maxDiffBytes", &cfg.MaxDiffBytes)
	setInt("perCommitDiffBytes", &cfg.PerCommitBytes)
	setInt("batchChars", &cfg.BatchChars)
	setInt("scanDepth", &cfg.ScanDepth)
	if v, ok := overrides["includeMerges"]; ok && v == "true" {
		cfg.IncludeMerges = true
	}
	if v, ok := overrides["noLlm"]; ok && v == "true" {
		cfg.NoLLM = true
	}
}

// SetField sets a single config field by key name. Returns an error if the
// key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "author":
		cfg.Author = value
	case "since":
		cfg.Since = value
	case "until":
		cfg.Until = value
	case "scanRoot":
		cfg.ScanRoot = value
	case "outDir":
		cfg.OutDir = value
	case "profileFile":
		cfg.ProfileFile = value
	case "maxCommits", "maxDiffBytes", "perCommitDiffBytes", "batchChars", "scanDepth":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, err)
		}
		switch key {
		case "maxCommits":
			cfg.MaxCommits = n
		case "maxDiffBytes":
			cfg.MaxDiffBytes = n
		case "perCommitDiffBytes":
			cfg.PerCommitBytes = n
		case "batchChars":
			cfg.BatchChars = n
		case "scanDepth":
			cfg.ScanDepth = n
		}
	case "includeMerges", "noLlm", "redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be a boolean: %w", key, err)
		}
		switch key {
		case "includeMerges":
			cfg.IncludeMerges = b
		case "noLlm":
			cfg.NoLLM = b
		case "redactSecrets":
			cfg.RedactSecrets = b
		}
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
