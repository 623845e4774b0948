package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/helixmed/helix-core/internal/models"
)

// Catalog files live at the library root and describe the structured
// content the app serves alongside the prompt files.
const (
	coursesFile     = "courses.yaml"
	journalsFile    = "journals.yaml"
	guidesFile      = "guides.yaml"
	categoriesFile  = "categories.yaml"
	recommendedFile = "recommended.yaml"
)

// RecommendedCatalog lists curated prompt ids for the home view and
// per-category highlights.
type RecommendedCatalog struct {
	Recommended []string            `yaml:"recommended"`
	ByCategory  map[string][]string `yaml:"by_category"`
}

// LoadRecommended reads the recommended prompt catalog. A missing file
// yields an empty catalog.
func (l *Library) LoadRecommended() (RecommendedCatalog, error) {
	var catalog RecommendedCatalog
	if err := l.loadCatalog(recommendedFile, &catalog); err != nil {
		return RecommendedCatalog{}, err
	}
	return catalog, nil
}

// LoadCourses reads the course catalog. Lessons keep their catalog
// order; availability is decided separately via HasLessonContent.
func (l *Library) LoadCourses() ([]models.Course, error) {
	var catalog struct {
		Sections []models.CourseSection `yaml:"sections"`
		Courses  []models.Course        `yaml:"courses"`
	}
	if err := l.loadCatalog(coursesFile, &catalog); err != nil {
		return nil, err
	}
	return catalog.Courses, nil
}

// LoadCourseSections reads the course section groupings used to order
// the course listing.
func (l *Library) LoadCourseSections() ([]models.CourseSection, error) {
	var catalog struct {
		Sections []models.CourseSection `yaml:"sections"`
		Courses  []models.Course        `yaml:"courses"`
	}
	if err := l.loadCatalog(coursesFile, &catalog); err != nil {
		return nil, err
	}
	return catalog.Sections, nil
}

// LoadJournals reads the journal directory catalog.
func (l *Library) LoadJournals() ([]models.Journal, error) {
	var catalog struct {
		Journals []models.Journal `yaml:"journals"`
	}
	if err := l.loadCatalog(journalsFile, &catalog); err != nil {
		return nil, err
	}
	return catalog.Journals, nil
}

// LoadGuides reads the how-to guide catalog.
func (l *Library) LoadGuides() ([]models.Guide, error) {
	var catalog struct {
		Guides []models.Guide `yaml:"guides"`
	}
	if err := l.loadCatalog(guidesFile, &catalog); err != nil {
		return nil, err
	}
	return catalog.Guides, nil
}

// LoadPromptCategories reads the prompt category list. A missing file
// is fine; categories are then derived from the prompts themselves.
func (l *Library) LoadPromptCategories() ([]models.PromptCategory, error) {
	var catalog struct {
		Categories []models.PromptCategory `yaml:"categories"`
	}
	path := filepath.Join(l.rootPath, categoriesFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	if err := l.loadCatalog(categoriesFile, &catalog); err != nil {
		return nil, err
	}
	return catalog.Categories, nil
}

func (l *Library) loadCatalog(name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(l.rootPath, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
