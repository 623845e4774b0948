// Package storage loads the read-only content library from disk:
// prompts as markdown files with YAML frontmatter, plus YAML catalogs
// for courses, journals, and guides. Content is authored outside the
// system and never mutated at runtime; only the metadata cache writes
// back to disk.
package storage

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/helixmed/helix-core/internal/models"
)

// Library handles all file system access for curated content.
type Library struct {
	rootPath string
	cache    *MetadataCache
	logger   *zap.Logger
}

// NewLibrary creates a library rooted at rootPath. An empty rootPath
// falls back to ~/.helix.
func NewLibrary(rootPath string, logger *zap.Logger) (*Library, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootPath = filepath.Join(homeDir, ".helix")
	}

	cache := NewMetadataCache(rootPath)
	if err := cache.Load(); err != nil {
		// Cache is an optimization, not a dependency.
		logger.Warn("failed to load metadata cache", zap.Error(err))
	}

	return &Library{rootPath: rootPath, cache: cache, logger: logger}, nil
}

// InitLibrary creates the directory structure for a content library.
func (l *Library) InitLibrary() error {
	dirs := []string{
		l.rootPath,
		filepath.Join(l.rootPath, "prompts"),
		filepath.Join(l.rootPath, "lessons"),
		filepath.Join(l.rootPath, "guides"),
		filepath.Join(l.rootPath, ".helix"),
		filepath.Join(l.rootPath, ".helix", "cache"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// LoadPrompt loads a prompt from a markdown file with YAML frontmatter.
func (l *Library) LoadPrompt(path string) (*models.Prompt, error) {
	content, err := os.ReadFile(filepath.Join(l.rootPath, path))
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file: %w", err)
	}

	prompt, err := parsePromptFile(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt: %w", err)
	}

	prompt.FilePath = path
	hash := sha256.Sum256(content)
	prompt.ContentHash = hex.EncodeToString(hash[:])

	return prompt, nil
}

// ListPrompts returns all prompts in the library, using the metadata
// cache for files whose modification time is unchanged.
func (l *Library) ListPrompts() ([]*models.Prompt, error) {
	promptsDir := filepath.Join(l.rootPath, "prompts")
	if _, err := os.Stat(promptsDir); os.IsNotExist(err) {
		return []*models.Prompt{}, nil
	}

	var prompts []*models.Prompt
	existingFiles := make(map[string]bool)
	cacheModified := false

	err := filepath.Walk(promptsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		relPath, _ := filepath.Rel(l.rootPath, path)
		existingFiles[relPath] = true

		if cached, valid := l.cache.Get(relPath, info); valid {
			prompts = append(prompts, cached.ToPrompt())
			return nil
		}

		prompt, err := l.LoadPrompt(relPath)
		if err != nil {
			// A malformed file must not take down the whole listing.
			l.logger.Warn("failed to load prompt", zap.String("path", relPath), zap.Error(err))
			return nil
		}

		l.cache.Set(relPath, info, prompt)
		cacheModified = true

		prompts = append(prompts, prompt)
		return nil
	})

	l.cache.Cleanup(existingFiles)

	if cacheModified {
		if err := l.cache.Save(); err != nil {
			l.logger.Warn("failed to save metadata cache", zap.Error(err))
		}
	}

	return prompts, err
}

// HasLessonContent reports whether a lesson's markdown has been
// authored. Cataloged lessons without content are placeholders and are
// excluded from progress denominators.
func (l *Library) HasLessonContent(lessonID string) bool {
	info, err := os.Stat(filepath.Join(l.rootPath, "lessons", lessonID+".md"))
	return err == nil && !info.IsDir()
}

// LessonContent returns a lesson's markdown body.
func (l *Library) LessonContent(lessonID string) (string, error) {
	data, err := os.ReadFile(filepath.Join(l.rootPath, "lessons", lessonID+".md"))
	if err != nil {
		return "", fmt.Errorf("failed to read lesson content: %w", err)
	}
	return string(data), nil
}

// GuideStepContent returns the markdown body for one guide step.
func (l *Library) GuideStepContent(step models.GuideStep) (string, error) {
	data, err := os.ReadFile(filepath.Join(l.rootPath, "guides", step.ContentPath))
	if err != nil {
		return "", fmt.Errorf("failed to read guide step content: %w", err)
	}
	return string(data), nil
}

// parsePromptFile splits YAML frontmatter from the markdown template.
func parsePromptFile(content []byte) (*models.Prompt, error) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() || scanner.Text() != "---" {
		return nil, fmt.Errorf("missing frontmatter delimiter")
	}

	var frontmatterLines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "---" {
			break
		}
		frontmatterLines = append(frontmatterLines, line)
	}

	var prompt models.Prompt
	if err := yaml.Unmarshal([]byte(strings.Join(frontmatterLines, "\n")), &prompt); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	if prompt.ID == "" {
		return nil, fmt.Errorf("prompt is missing an id")
	}

	var templateLines []string
	for scanner.Scan() {
		templateLines = append(templateLines, scanner.Text())
	}
	prompt.Template = strings.TrimLeft(strings.Join(templateLines, "\n"), " \t\n")

	return &prompt, nil
}
