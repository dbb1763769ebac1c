package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGemini_Invoke(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Error("Missing API key header")
		}
		if !strings.HasSuffix(r.URL.Path, "gemini-2.0-flash:generateContent") {
			t.Errorf("Path = %q, want model:generateContent suffix", r.URL.Path)
		}

		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Decoding request: %v", err)
		}
		if req.GenerationConfig == nil || req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Error("Expected JSON response MIME type for FormatJSON requests")
		}

		resp := geminiResponse{
			Candidates: []geminiCandidate{
				{Content: geminiContent{Parts: []geminiPart{{Text: "[{"}, {Text: "}]"}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	g := NewGemini("gemini-2.0-flash")
	g.client = &http.Client{
		Transport: &rewriteTransport{
			base:    server.Client().Transport,
			baseURL: server.URL,
		},
	}

	out, err := g.Invoke(context.Background(), "test-key", Request{
		Prompt: "classify",
		Format: FormatJSON,
	})
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if out != "[{}]" {
		t.Errorf("Output = %q, want %q", out, "[{}]")
	}
}

func TestGemini_RateLimitError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(429)
		w.Write([]byte(`{"error":{"status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	g := NewGemini("gemini-2.0-flash")
	g.client = &http.Client{
		Transport: &rewriteTransport{
			base:    server.Client().Transport,
			baseURL: server.URL,
		},
	}

	_, err := g.Invoke(context.Background(), "test-key", Request{Prompt: "x"})
	if err == nil {
		t.Fatal("Expected rate limit error")
	}
	if !IsRateLimit(err) {
		t.Errorf("Expected rate limit error, got: %v", err)
	}
}

func TestGemini_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiResponse{})
	}))
	defer server.Close()

	g := NewGemini("gemini-2.0-flash")
	g.client = &http.Client{
		Transport: &rewriteTransport{
			base:    server.Client().Transport,
			baseURL: server.URL,
		},
	}

	_, err := g.Invoke(context.Background(), "test-key", Request{Prompt: "x"})
	if err == nil {
		t.Fatal("Expected error for empty candidates")
	}
}
