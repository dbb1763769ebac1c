// Package providers implements the uniform call contract over the supported
// LLM REST APIs.
//
// Supported providers: Google (Gemini), OpenAI (GPT), and Anthropic
// (Claude). The variants differ only in request shape, auth header
// placement, and response unwrapping; all normalize to plain text output.
//
// Credentials live in a KeyRing, an ordered list of keys for one provider.
// Client wraps a Provider with the ring and rotates to the next key whenever
// a call fails with rate limiting (HTTP 429 or a vendor exhaustion phrase),
// retrying at most once per key. Non-rate-limit errors propagate
// immediately, so a call is bounded by len(keys) attempts.
//
// HTTP clients are injected via a client field so that tests can redirect
// calls to local httptest servers without making live API requests.
package providers
