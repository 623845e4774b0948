package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/helixmed/helix-core/internal/service"
	"github.com/helixmed/helix-core/internal/storage"
	"github.com/helixmed/helix-core/internal/userdata"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "helix-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	promptPath := filepath.Join(tmpDir, "prompts", "clinical-summary.md")
	if err := os.MkdirAll(filepath.Dir(promptPath), 0755); err != nil {
		t.Fatalf("Failed to create prompts dir: %v", err)
	}
	prompt := `---
id: clinical-summary
title: Clinical Summary Draft
category: documentation
tags: [documentation]
inputs:
  - key: encounter_notes
    label: Encounter notes
    type: textarea
---

Summarize: {{encounter_notes}}
`
	if err := os.WriteFile(promptPath, []byte(prompt), 0644); err != nil {
		t.Fatalf("Failed to write prompt: %v", err)
	}

	courses := `
courses:
  - id: ai-basics
    title: AI Basics
    lessons:
      - id: what-is-ai
        title: What is AI?
`
	if err := os.WriteFile(filepath.Join(tmpDir, "courses.yaml"), []byte(courses), 0644); err != nil {
		t.Fatalf("Failed to write courses: %v", err)
	}
	lessonPath := filepath.Join(tmpDir, "lessons", "what-is-ai.md")
	if err := os.MkdirAll(filepath.Dir(lessonPath), 0755); err != nil {
		t.Fatalf("Failed to create lessons dir: %v", err)
	}
	if err := os.WriteFile(lessonPath, []byte("# What is AI\n"), 0644); err != nil {
		t.Fatalf("Failed to write lesson: %v", err)
	}

	lib, err := storage.NewLibrary(tmpDir, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create library: %v", err)
	}
	svc := service.New(lib, userdata.NewMemoryKV(), zap.NewNop())
	return NewServer(svc, 0, zap.NewNop())
}

func doRequest(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/prompts", s.withMiddleware(s.handlePrompts))
	mux.HandleFunc("/api/v1/prompts/", s.withMiddleware(s.handlePromptsWithID))
	mux.HandleFunc("/api/v1/search", s.withMiddleware(s.handleSearch))
	mux.HandleFunc("/api/v1/favorites", s.withMiddleware(s.handleFavorites))
	mux.HandleFunc("/api/v1/courses/", s.withMiddleware(s.handleCoursesWithPath))
	mux.HandleFunc("/api/v1/getting-started", s.withMiddleware(s.handleGettingStarted))
	mux.HandleFunc("/api/v1/health", s.withMiddleware(s.handleHealth))
	mux.ServeHTTP(rec, req)

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Response is not valid JSON: %v\n%s", err, rec.Body.String())
	}
	return rec, resp
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec, resp := doRequest(t, s, http.MethodGet, "/api/v1/health", "")
	if rec.Code != http.StatusOK || !resp.Success {
		t.Errorf("Expected 200 success, got %d %v", rec.Code, resp)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID header")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %s", ct)
	}
}

func TestListPromptsEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec, resp := doRequest(t, s, http.MethodGet, "/api/v1/prompts", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	data, ok := resp.Data.([]interface{})
	if !ok || len(data) != 1 {
		t.Errorf("Expected 1 prompt, got %v", resp.Data)
	}
}

func TestGetPromptNotFound(t *testing.T) {
	s := newTestServer(t)

	rec, resp := doRequest(t, s, http.MethodGet, "/api/v1/prompts/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
	if resp.Success {
		t.Error("Expected success=false for missing prompt")
	}
}

func TestRenderEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec, resp := doRequest(t, s, http.MethodPost,
		"/api/v1/prompts/clinical-summary/render",
		`{"values":{"encounter_notes":"chest pain"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %v", rec.Code, resp)
	}
	data := resp.Data.(map[string]interface{})
	if rendered, _ := data["rendered"].(string); !strings.Contains(rendered, "chest pain") {
		t.Errorf("Unexpected render output: %v", data)
	}

	// Missing inputs come back as a 400.
	rec, _ = doRequest(t, s, http.MethodPost,
		"/api/v1/prompts/clinical-summary/render", `{"values":{}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing input, got %d", rec.Code)
	}
}

func TestFavoritesEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec, resp := doRequest(t, s, http.MethodPost, "/api/v1/favorites",
		`{"promptId":"clinical-summary"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	data := resp.Data.(map[string]interface{})
	if favorited, _ := data["favorited"].(bool); !favorited {
		t.Error("Expected favorited=true after toggle")
	}

	_, resp = doRequest(t, s, http.MethodGet, "/api/v1/favorites", "")
	list, ok := resp.Data.([]interface{})
	if !ok || len(list) != 1 {
		t.Errorf("Expected 1 favorite, got %v", resp.Data)
	}
}

func TestCompleteLessonEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec, resp := doRequest(t, s, http.MethodPost,
		"/api/v1/courses/ai-basics/lessons/what-is-ai/complete", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %v", rec.Code, resp)
	}
	summary := resp.Data.(map[string]interface{})
	if pct, _ := summary["percentage"].(float64); pct != 100 {
		t.Errorf("Expected 100%%, got %v", summary)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	rec, _ := doRequest(t, s, http.MethodDelete, "/api/v1/prompts", "")
	if rec.Code == http.StatusOK {
		t.Errorf("Expected error status for DELETE, got %d", rec.Code)
	}
}
