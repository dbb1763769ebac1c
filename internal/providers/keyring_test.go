package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyRingDedupAndTrim(t *testing.T) {
	ring, err := NewKeyRing([]string{" key1 ", "key2", "key1", "", "  "})
	require.NoError(t, err)
	assert.Equal(t, 2, ring.Len())
	assert.Equal(t, "key1", ring.Current())
}

func TestNewKeyRingEmpty(t *testing.T) {
	_, err := NewKeyRing(nil)
	require.Error(t, err)
	_, err = NewKeyRing([]string{"", "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no API keys")
}

func TestRotateIsCyclic(t *testing.T) {
	ring, err := NewKeyRing([]string{"a", "b", "c"})
	require.NoError(t, err)

	var order []string
	for i := 0; i < ring.Len(); i++ {
		order = append(order, ring.Current())
		ring.Rotate()
	}
	assert.Equal(t, []string{"a", "b", "c"}, order)
	// A full cycle returns to the first key.
	assert.Equal(t, "a", ring.Current())
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "GEMINI_API_KEY", EnvVar("gemini"))
	assert.Equal(t, "GEMINI_API_KEY", EnvVar("google"))
	assert.Equal(t, "OPENAI_API_KEY", EnvVar("openai"))
	assert.Equal(t, "ANTHROPIC_API_KEY", EnvVar("anthropic"))
	assert.Empty(t, EnvVar("unknown"))
}

func TestRingFromEnvCommaSeparated(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "k1, k2 ,k1")
	ring, err := RingFromEnv("openai")
	require.NoError(t, err)
	assert.Equal(t, 2, ring.Len())
	assert.Equal(t, "k1", ring.Current())
}

func TestRingFromEnvGoogleFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "gk")
	ring, err := RingFromEnv("gemini")
	require.NoError(t, err)
	assert.Equal(t, "gk", ring.Current())
}

func TestRingFromEnvMissing(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	_, err := RingFromEnv("anthropic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")

	_, err = RingFromEnv("nope")
	require.Error(t, err)
}
