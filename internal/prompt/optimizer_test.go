package prompt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func chatResponse(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	}
}

func TestOptimizeReturnsTrimmedPrompt(t *testing.T) {
	var gotBody struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(chatResponse("  an adorable chibi cat with a bow  "))
	}))
	defer srv.Close()

	o := NewDeepSeekOptimizerWithConfig(DeepSeekConfig{APIKey: "test", BaseURL: srv.URL, Model: "deepseek-chat"})
	got, err := o.Optimize(context.Background(), OptimizeParams{
		Theme:  "a cat wearing a bow",
		Styles: FormatStyles([]string{"q_version"}),
		Size:   FormatSize("square_medium"),
	})
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if got != "an adorable chibi cat with a bow" {
		t.Errorf("unexpected prompt %q", got)
	}

	if gotBody.Model != "deepseek-chat" {
		t.Errorf("unexpected model %q", gotBody.Model)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" || gotBody.Messages[1].Role != "user" {
		t.Fatalf("expected system+user message pair, got %+v", gotBody.Messages)
	}
	if !strings.Contains(gotBody.Messages[1].Content, "a cat wearing a bow") {
		t.Errorf("theme missing from user prompt: %q", gotBody.Messages[1].Content)
	}
	if !strings.Contains(gotBody.Messages[1].Content, "Q版漫画") {
		t.Errorf("style fragment missing from user prompt: %q", gotBody.Messages[1].Content)
	}
}

func TestRefineSendsOriginalPromptAndInstruction(t *testing.T) {
	var userContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		userContent = body.Messages[len(body.Messages)-1].Content
		_ = json.NewEncoder(w).Encode(chatResponse("a plumper chibi cat with a bow"))
	}))
	defer srv.Close()

	o := NewDeepSeekOptimizerWithConfig(DeepSeekConfig{APIKey: "test", BaseURL: srv.URL, Model: "deepseek-chat"})
	got, err := o.Refine(context.Background(), "a chibi cat with a bow", "make it plumper")
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	if got != "a plumper chibi cat with a bow" {
		t.Errorf("unexpected prompt %q", got)
	}
	if !strings.Contains(userContent, "a chibi cat with a bow") || !strings.Contains(userContent, "make it plumper") {
		t.Errorf("refine prompt incomplete: %q", userContent)
	}
}

func TestOptimizeUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	o := NewDeepSeekOptimizerWithConfig(DeepSeekConfig{APIKey: "test", BaseURL: srv.URL, Model: "deepseek-chat"})
	_, err := o.Optimize(context.Background(), OptimizeParams{Theme: "a cat"})
	if !errors.Is(err, ErrOptimizationFailed) {
		t.Errorf("expected ErrOptimizationFailed, got %v", err)
	}
}

func TestOptimizeEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	o := NewDeepSeekOptimizerWithConfig(DeepSeekConfig{APIKey: "test", BaseURL: srv.URL, Model: "deepseek-chat"})
	_, err := o.Optimize(context.Background(), OptimizeParams{Theme: "a cat"})
	if !errors.Is(err, ErrOptimizationFailed) {
		t.Errorf("expected ErrOptimizationFailed, got %v", err)
	}
}
