// Package redact removes secrets from diff content before it is sent to any
// LLM provider.
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// JWTs, private keys, AWS credentials, bearer tokens, and provider-specific
// tokens (Anthropic, OpenAI, GitHub).
package redact
