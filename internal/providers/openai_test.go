package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAI_Invoke(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Error("Missing bearer token")
		}

		var req openaiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Decoding request: %v", err)
		}
		if req.Model != "gpt-4o-mini" {
			t.Errorf("Model = %q, want gpt-4o-mini", req.Model)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("Messages = %+v, want single user message", req.Messages)
		}

		resp := openaiResponse{
			Choices: []openaiChoice{
				{Message: openaiMessage{Role: "assistant", Content: "classified"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	o := NewOpenAI("gpt-4o-mini")
	o.client = &http.Client{
		Transport: &rewriteTransport{
			base:    server.Client().Transport,
			baseURL: server.URL,
		},
	}

	out, err := o.Invoke(context.Background(), "test-key", Request{Prompt: "classify"})
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if out != "classified" {
		t.Errorf("Output = %q, want %q", out, "classified")
	}
}

func TestOpenAI_BaseURLOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(openaiResponse{
			Choices: []openaiChoice{{Message: openaiMessage{Content: "ok"}}},
		})
	}))
	defer server.Close()

	t.Setenv("GITBRAG_OPENAI_BASE_URL", server.URL)
	o := NewOpenAI("gpt-4o-mini")
	if o.baseURL != server.URL {
		t.Errorf("baseURL = %q, want %q", o.baseURL, server.URL)
	}

	out, err := o.Invoke(context.Background(), "test-key", Request{Prompt: "x"})
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if out != "ok" {
		t.Errorf("Output = %q, want %q", out, "ok")
	}
}

func TestOpenAI_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(openaiResponse{})
	}))
	defer server.Close()

	o := NewOpenAI("gpt-4o-mini")
	o.client = &http.Client{
		Transport: &rewriteTransport{
			base:    server.Client().Transport,
			baseURL: server.URL,
		},
	}

	_, err := o.Invoke(context.Background(), "test-key", Request{Prompt: "x"})
	if err == nil {
		t.Fatal("Expected error for empty choices")
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New("mystery", "model"); err == nil {
		t.Fatal("Expected error for unknown provider")
	}
}
