package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/helixmed/helix-core/internal/models"
)

// PromptMetadata is the cached frontmatter of one prompt file. The
// template body is not cached; it is re-read on demand via FilePath.
type PromptMetadata struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description,omitempty"`
	Category       string               `json:"category,omitempty"`
	Tags           []string             `json:"tags,omitempty"`
	Inputs         []models.PromptInput `json:"inputs,omitempty"`
	Example        string               `json:"example,omitempty"`
	RiskLevel      models.RiskLevel     `json:"risk_level,omitempty"`
	WarningMessage string               `json:"warning_message,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
	FilePath       string               `json:"file_path"`
	ModTime        time.Time            `json:"mod_time"`
	ContentHash    string               `json:"content_hash"`
}

// MetadataCache avoids re-parsing prompt files whose mtime is unchanged.
type MetadataCache struct {
	cacheDir  string
	cacheFile string
	metadata  map[string]*PromptMetadata
	mu        sync.RWMutex // Protects metadata map from concurrent access
}

// NewMetadataCache creates a new metadata cache under baseDir.
func NewMetadataCache(baseDir string) *MetadataCache {
	cacheDir := filepath.Join(baseDir, ".helix", "cache")
	return &MetadataCache{
		cacheDir:  cacheDir,
		cacheFile: filepath.Join(cacheDir, "metadata.json"),
		metadata:  make(map[string]*PromptMetadata),
	}
}

// Load loads the metadata cache from disk.
func (c *MetadataCache) Load() error {
	if err := os.MkdirAll(c.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	if _, err := os.Stat(c.cacheFile); os.IsNotExist(err) {
		return nil // No cache file exists yet
	}

	data, err := os.ReadFile(c.cacheFile)
	if err != nil {
		return fmt.Errorf("failed to read cache file: %w", err)
	}

	c.mu.Lock()
	if err := json.Unmarshal(data, &c.metadata); err != nil {
		// If cache is corrupted, start fresh
		c.metadata = make(map[string]*PromptMetadata)
	}
	c.mu.Unlock()

	return nil
}

// Save saves the metadata cache to disk.
func (c *MetadataCache) Save() error {
	c.mu.RLock()
	data, err := json.MarshalIndent(c.metadata, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(c.cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// Get retrieves metadata for a file if the cached mtime still matches.
func (c *MetadataCache) Get(relPath string, fileInfo os.FileInfo) (*PromptMetadata, bool) {
	c.mu.RLock()
	cached, exists := c.metadata[relPath]
	c.mu.RUnlock()
	if !exists {
		return nil, false
	}

	if !fileInfo.ModTime().Equal(cached.ModTime) {
		return nil, false
	}

	return cached, true
}

// Set stores metadata in the cache.
func (c *MetadataCache) Set(relPath string, fileInfo os.FileInfo, prompt *models.Prompt) {
	c.mu.Lock()
	c.metadata[relPath] = &PromptMetadata{
		ID:             prompt.ID,
		Title:          prompt.Title,
		Description:    prompt.Description,
		Category:       prompt.Category,
		Tags:           prompt.Tags,
		Inputs:         prompt.Inputs,
		Example:        prompt.Example,
		RiskLevel:      prompt.RiskLevel,
		WarningMessage: prompt.WarningMessage,
		CreatedAt:      prompt.CreatedAt,
		UpdatedAt:      prompt.UpdatedAt,
		FilePath:       prompt.FilePath,
		ModTime:        fileInfo.ModTime(),
		ContentHash:    prompt.ContentHash,
	}
	c.mu.Unlock()
}

// ToPrompt converts cached metadata back to a Prompt without a template.
func (m *PromptMetadata) ToPrompt() *models.Prompt {
	return &models.Prompt{
		ID:             m.ID,
		Title:          m.Title,
		Description:    m.Description,
		Category:       m.Category,
		Tags:           m.Tags,
		Inputs:         m.Inputs,
		Example:        m.Example,
		RiskLevel:      m.RiskLevel,
		WarningMessage: m.WarningMessage,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		FilePath:       m.FilePath,
		ContentHash:    m.ContentHash,
		Template:       "", // Template loaded on demand
	}
}

// Cleanup removes cache entries for files that no longer exist.
func (c *MetadataCache) Cleanup(existingFiles map[string]bool) {
	c.mu.Lock()
	for relPath := range c.metadata {
		if !existingFiles[relPath] {
			delete(c.metadata, relPath)
		}
	}
	c.mu.Unlock()
}
