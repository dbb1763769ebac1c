package providers

import (
	"fmt"
	"os"
	"strings"
)

// KeyRing holds the ordered credentials for one provider plus the index of
// the active key. Rotation is the only mutation and happens between
// sequential call attempts, so no locking is needed.
type KeyRing struct {
	keys []string
	idx  int
}

// NewKeyRing builds a ring from raw credential strings. Entries are trimmed
// and deduplicated preserving first-seen order. Construction fails when no
// usable key remains.
func NewKeyRing(keys []string) (*KeyRing, error) {
	seen := make(map[string]bool)
	var clean []string
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		clean = append(clean, k)
	}
	if len(clean) == 0 {
		return nil, fmt.Errorf("no API keys provided")
	}
	return &KeyRing{keys: clean}, nil
}

// Current returns the active key.
func (r *KeyRing) Current() string { return r.keys[r.idx] }

// Rotate advances to the next key cyclically.
func (r *KeyRing) Rotate() { r.idx = (r.idx + 1) % len(r.keys) }

// Len returns the number of keys in the ring.
func (r *KeyRing) Len() int { return len(r.keys) }

// EnvVar returns the environment variable holding credentials for a provider.
func EnvVar(provider string) string {
	switch provider {
	case "gemini", "google":
		return "GEMINI_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

// RingFromEnv builds a KeyRing from the provider's environment variable. The
// value may hold several comma-separated keys to rotate across on rate
// limiting. Gemini falls back to GOOGLE_API_KEY.
func RingFromEnv(provider string) (*KeyRing, error) {
	name := EnvVar(provider)
	if name == "" {
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
	val := os.Getenv(name)
	if val == "" && (provider == "gemini" || provider == "google") {
		val = os.Getenv("GOOGLE_API_KEY")
	}
	if strings.TrimSpace(val) == "" {
		return nil, fmt.Errorf("%s environment variable is not set", name)
	}
	return NewKeyRing(strings.Split(val, ","))
}
