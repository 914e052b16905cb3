package image

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samber/lo"
)

func TestSeedreamGeneratePayload(t *testing.T) {
	var got seedreamRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/images/generations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"url": "https://images.example.com/1.png", "revised_prompt": "a fluffier cat"}},
			"seed": 1234,
		})
	}))
	defer srv.Close()

	g := &SeedreamGenerator{Client: srv.Client(), BaseURL: srv.URL, Key: "test-key", Model: "doubao-seedream-3-0-t2i-250415"}
	res, err := g.Generate(context.Background(), Params{Prompt: "a cat", Width: 1024, Height: 1024, Strength: 0.8})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if got.Prompt != "a cat" || got.Width != 1024 || got.Height != 1024 {
		t.Errorf("unexpected request %+v", got)
	}
	if got.Scale != 8 {
		t.Errorf("strength 0.8 must map to native scale 8, got %v", got.Scale)
	}
	if got.Seed != -1 {
		t.Errorf("absent seed must be sent as -1, got %d", got.Seed)
	}
	if got.ResponseFormat != "url" {
		t.Errorf("unexpected response_format %q", got.ResponseFormat)
	}

	if res.URL != "https://images.example.com/1.png" {
		t.Errorf("unexpected url %q", res.URL)
	}
	if res.RevisedPrompt != "a fluffier cat" {
		t.Errorf("unexpected revised prompt %q", res.RevisedPrompt)
	}
	if lo.FromPtr(res.Seed) != 1234 {
		t.Errorf("unexpected seed %v", res.Seed)
	}
	if res.Model != "doubao-seedream-3-0-t2i-250415" {
		t.Errorf("unexpected model %q", res.Model)
	}
}

func TestSeedreamGenerateForwardsSeed(t *testing.T) {
	var got seedreamRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"url": "https://images.example.com/1.png"}},
		})
	}))
	defer srv.Close()

	g := &SeedreamGenerator{Client: srv.Client(), BaseURL: srv.URL, Key: "test-key", Model: "m"}
	res, err := g.Generate(context.Background(), Params{Prompt: "a cat", Width: 512, Height: 512, Strength: 0.5, Seed: lo.ToPtr(int64(77))})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got.Seed != 77 {
		t.Errorf("expected seed 77, got %d", got.Seed)
	}
	// Missing revised_prompt falls back to the submitted prompt.
	if res.RevisedPrompt != "a cat" {
		t.Errorf("unexpected revised prompt %q", res.RevisedPrompt)
	}
}

func TestSeedreamGenerateStatusErrors(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		transient bool
	}{
		{"server error", http.StatusInternalServerError, true},
		{"rejected request", http.StatusBadRequest, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tc.status)
			}))
			defer srv.Close()

			g := &SeedreamGenerator{Client: srv.Client(), BaseURL: srv.URL, Key: "test-key", Model: "m"}
			_, err := g.Generate(context.Background(), Params{Prompt: "a cat", Width: 512, Height: 512, Strength: 0.5})
			if err == nil {
				t.Fatal("expected error")
			}
			var pe *ProviderError
			if !errors.As(err, &pe) {
				t.Fatalf("expected ProviderError, got %T", err)
			}
			if pe.StatusCode != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, pe.StatusCode)
			}
			if Transient(err) != tc.transient {
				t.Errorf("Transient = %v, want %v", Transient(err), tc.transient)
			}
		})
	}
}

func TestSeedreamGenerateEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer srv.Close()

	g := &SeedreamGenerator{Client: srv.Client(), BaseURL: srv.URL, Key: "test-key", Model: "m"}
	_, err := g.Generate(context.Background(), Params{Prompt: "a cat", Width: 512, Height: 512, Strength: 0.5})
	if err == nil {
		t.Fatal("expected error for empty data")
	}
	if Transient(err) {
		t.Error("malformed response must not be retried")
	}
}
