package storage

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}

const samplePrompt = `---
id: clinical-summary
title: Clinical Summary Draft
description: Summarize a patient encounter
category: documentation
tags:
  - documentation
  - notes
inputs:
  - key: encounter_notes
    label: Encounter notes
    type: textarea
risk_level: medium
warning_message: Review output before adding to the record.
---

Summarize the following encounter notes:

{{encounter_notes}}
`

func TestLoadPrompt(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "helix-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	writeFile(t, filepath.Join(tmpDir, "prompts", "clinical-summary.md"), samplePrompt)

	lib, err := NewLibrary(tmpDir, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create library: %v", err)
	}

	prompt, err := lib.LoadPrompt(filepath.Join("prompts", "clinical-summary.md"))
	if err != nil {
		t.Fatalf("Failed to load prompt: %v", err)
	}

	if prompt.ID != "clinical-summary" {
		t.Errorf("Expected id clinical-summary, got %s", prompt.ID)
	}
	if prompt.Title != "Clinical Summary Draft" {
		t.Errorf("Expected title Clinical Summary Draft, got %s", prompt.Title)
	}
	if len(prompt.Inputs) != 1 || prompt.Inputs[0].Key != "encounter_notes" {
		t.Errorf("Expected one input encounter_notes, got %+v", prompt.Inputs)
	}
	if prompt.RiskLevel != "medium" {
		t.Errorf("Expected risk level medium, got %s", prompt.RiskLevel)
	}
	if prompt.Template == "" {
		t.Error("Expected non-empty template body")
	}
	if prompt.ContentHash == "" {
		t.Error("Expected content hash to be set")
	}
}

func TestLoadPromptMissingFrontmatter(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "helix-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	writeFile(t, filepath.Join(tmpDir, "prompts", "bad.md"), "just markdown, no frontmatter\n")

	lib, err := NewLibrary(tmpDir, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create library: %v", err)
	}

	if _, err := lib.LoadPrompt(filepath.Join("prompts", "bad.md")); err == nil {
		t.Error("Expected error for file without frontmatter")
	}
}

func TestListPromptsSkipsMalformed(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "helix-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	writeFile(t, filepath.Join(tmpDir, "prompts", "good.md"), samplePrompt)
	writeFile(t, filepath.Join(tmpDir, "prompts", "bad.md"), "no frontmatter here\n")

	lib, err := NewLibrary(tmpDir, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create library: %v", err)
	}

	prompts, err := lib.ListPrompts()
	if err != nil {
		t.Fatalf("Failed to list prompts: %v", err)
	}
	if len(prompts) != 1 {
		t.Fatalf("Expected 1 prompt, got %d", len(prompts))
	}
	if prompts[0].ID != "clinical-summary" {
		t.Errorf("Expected clinical-summary, got %s", prompts[0].ID)
	}
}

func TestListPromptsUsesCache(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "helix-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	writeFile(t, filepath.Join(tmpDir, "prompts", "clinical-summary.md"), samplePrompt)

	lib, err := NewLibrary(tmpDir, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create library: %v", err)
	}

	// First listing populates and persists the cache.
	if _, err := lib.ListPrompts(); err != nil {
		t.Fatalf("Failed to list prompts: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, ".helix", "cache", "metadata.json")); err != nil {
		t.Fatalf("Expected cache file to be written: %v", err)
	}

	// A fresh library should serve the prompt from cached metadata.
	lib2, err := NewLibrary(tmpDir, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create library: %v", err)
	}
	prompts, err := lib2.ListPrompts()
	if err != nil {
		t.Fatalf("Failed to list prompts: %v", err)
	}
	if len(prompts) != 1 {
		t.Fatalf("Expected 1 prompt, got %d", len(prompts))
	}
	if prompts[0].Template != "" {
		t.Error("Expected cached prompt to omit template body")
	}
	if prompts[0].Title != "Clinical Summary Draft" {
		t.Errorf("Expected cached metadata, got title %s", prompts[0].Title)
	}
}

func TestHasLessonContent(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "helix-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	writeFile(t, filepath.Join(tmpDir, "lessons", "what-is-ai.md"), "# What is AI\n")

	lib, err := NewLibrary(tmpDir, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create library: %v", err)
	}

	if !lib.HasLessonContent("what-is-ai") {
		t.Error("Expected what-is-ai to have content")
	}
	if lib.HasLessonContent("not-written-yet") {
		t.Error("Expected not-written-yet to be unavailable")
	}
}

func TestLoadCourses(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "helix-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	writeFile(t, filepath.Join(tmpDir, "courses.yaml"), `
sections:
  - id: getting-started
    title: Getting Started
    courses:
      - ai-basics
courses:
  - id: ai-basics
    title: AI Basics
    category: fundamentals
    level: 1
    xp_reward: 100
    lessons:
      - id: what-is-ai
        title: What is AI?
      - id: how-llms-work
        title: How LLMs Work
`)

	lib, err := NewLibrary(tmpDir, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create library: %v", err)
	}

	courses, err := lib.LoadCourses()
	if err != nil {
		t.Fatalf("Failed to load courses: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("Expected 1 course, got %d", len(courses))
	}
	if courses[0].ID != "ai-basics" || len(courses[0].Lessons) != 2 {
		t.Errorf("Unexpected course: %+v", courses[0])
	}

	sections, err := lib.LoadCourseSections()
	if err != nil {
		t.Fatalf("Failed to load sections: %v", err)
	}
	if len(sections) != 1 || sections[0].ID != "getting-started" {
		t.Errorf("Unexpected sections: %+v", sections)
	}
}

func TestLoadCoursesMissingCatalog(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "helix-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	lib, err := NewLibrary(tmpDir, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create library: %v", err)
	}

	courses, err := lib.LoadCourses()
	if err != nil {
		t.Fatalf("Expected missing catalog to be tolerated: %v", err)
	}
	if len(courses) != 0 {
		t.Errorf("Expected no courses, got %d", len(courses))
	}
}
