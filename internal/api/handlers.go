package api

import (
	"encoding/json"
	"net/http"

	"github.com/helixmed/helix-core/internal/errors"
	"github.com/helixmed/helix-core/internal/models"
)

// handlePrompts handles /api/v1/prompts
func (s *Server) handlePrompts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w)
		return
	}

	q := r.URL.Query()
	prompts, err := s.service.FilterPrompts(q.Get("q"), q.Get("category"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, prompts, "", http.StatusOK)
}

// handlePromptsWithID handles /api/v1/prompts/{id} and
// /api/v1/prompts/{id}/render.
func (s *Server) handlePromptsWithID(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r, "/api/v1/prompts/")
	if len(segments) == 0 {
		s.writeError(w, errors.ValidationError("Prompt ID is required"))
		return
	}

	switch {
	case len(segments) == 1 && r.Method == http.MethodGet:
		prompt, err := s.service.GetPrompt(segments[0])
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeResponse(w, prompt, "", http.StatusOK)

	case len(segments) == 2 && segments[1] == "render" && r.Method == http.MethodPost:
		var body struct {
			Values map[string]string `json:"values"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeError(w, errors.ValidationError("Invalid JSON body"))
			return
		}
		rendered, err := s.service.RenderPrompt(segments[0], body.Values)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeResponse(w, map[string]string{"rendered": rendered}, "", http.StatusOK)

	default:
		s.methodNotAllowed(w)
	}
}

// handleSearch handles GET /api/v1/search?q=
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w)
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		s.writeError(w, errors.ValidationError("Query parameter 'q' is required"))
		return
	}
	prompts, err := s.service.SearchPrompts(query)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, prompts, "", http.StatusOK)
}

// handleTagSearch handles POST /api/v1/tag-search with a JSON tag
// expression body.
func (s *Server) handleTagSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w)
		return
	}
	var body struct {
		Expression *models.TagExpr `json:"expression"`
		Text       string          `json:"text,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, errors.ValidationError("Invalid JSON body"))
		return
	}
	if body.Expression == nil {
		s.writeError(w, errors.ValidationError("Tag expression is required"))
		return
	}
	prompts, err := s.service.SearchPromptsByTags(body.Expression, body.Text)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, prompts, "", http.StatusOK)
}

// handleTags handles GET /api/v1/tags
func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w)
		return
	}
	tags, err := s.service.AllTags()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, tags, "", http.StatusOK)
}

// handleCategories handles GET /api/v1/categories
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w)
		return
	}
	categories, err := s.service.Categories()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, categories, "", http.StatusOK)
}

// handleRecommended handles GET /api/v1/recommended?category=
func (s *Server) handleRecommended(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w)
		return
	}
	category := r.URL.Query().Get("category")
	var (
		prompts []*models.Prompt
		err     error
	)
	if category != "" {
		prompts, err = s.service.CategoryRecommendedPrompts(category)
	} else {
		prompts, err = s.service.RecommendedPrompts()
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, prompts, "", http.StatusOK)
}

// handleFavorites handles /api/v1/favorites: GET lists the joined
// favorite prompts, POST toggles one id.
func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		prompts, err := s.service.FavoritePrompts()
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeResponse(w, prompts, "", http.StatusOK)

	case http.MethodPost:
		var body struct {
			PromptID string `json:"promptId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PromptID == "" {
			s.writeError(w, errors.ValidationError("promptId is required"))
			return
		}
		favorited := s.service.ToggleFavorite(body.PromptID)
		s.writeResponse(w, map[string]bool{"favorited": favorited}, "", http.StatusOK)

	default:
		s.methodNotAllowed(w)
	}
}

// handleCourses handles GET /api/v1/courses
func (s *Server) handleCourses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w)
		return
	}
	courses, err := s.service.ListCourses()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, courses, "", http.StatusOK)
}

// handleCoursesWithPath handles:
//
//	GET  /api/v1/courses/{id}
//	GET  /api/v1/courses/{id}/lessons/{lessonId}
//	POST /api/v1/courses/{id}/lessons/{lessonId}/complete
//	POST /api/v1/courses/{id}/lessons/{lessonId}/uncomplete
func (s *Server) handleCoursesWithPath(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r, "/api/v1/courses/")

	switch {
	case len(segments) == 1 && r.Method == http.MethodGet:
		course, err := s.service.GetCourse(segments[0])
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeResponse(w, course, "", http.StatusOK)

	case len(segments) == 3 && segments[1] == "lessons" && r.Method == http.MethodGet:
		content, err := s.service.LessonContent(segments[0], segments[2])
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeResponse(w, map[string]string{"content": content}, "", http.StatusOK)

	case len(segments) == 4 && segments[1] == "lessons" && r.Method == http.MethodPost:
		var err error
		var summary interface{}
		switch segments[3] {
		case "complete":
			summary, err = s.service.CompleteLesson(segments[0], segments[2])
		case "uncomplete":
			summary, err = s.service.UncompleteLesson(segments[0], segments[2])
		default:
			s.methodNotAllowed(w)
			return
		}
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeResponse(w, summary, "", http.StatusOK)

	default:
		s.methodNotAllowed(w)
	}
}

// handleCourseSections handles GET /api/v1/course-sections
func (s *Server) handleCourseSections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w)
		return
	}
	sections, err := s.service.CourseSections()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, sections, "", http.StatusOK)
}

// handleGettingStarted handles GET /api/v1/getting-started
func (s *Server) handleGettingStarted(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w)
		return
	}
	summary, err := s.service.GettingStarted()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, summary, "", http.StatusOK)
}

// handleJournals handles GET /api/v1/journals with optional filter,
// category, and sort parameters.
func (s *Server) handleJournals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w)
		return
	}
	journals, err := s.service.ListJournals()
	if err != nil {
		s.writeError(w, err)
		return
	}

	q := r.URL.Query()
	journals = s.service.QueryJournals(journals, q.Get("q"), q.Get("category"), q.Get("sort"))
	s.writeResponse(w, journals, "", http.StatusOK)
}

// handleGuides handles GET /api/v1/guides with optional filter and
// sort parameters.
func (s *Server) handleGuides(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w)
		return
	}
	guides, err := s.service.ListGuides()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, guides, "", http.StatusOK)
}

// handleGuidesWithPath handles:
//
//	GET  /api/v1/guides/{id}
//	GET  /api/v1/guides/{id}/steps/{stepId}
//	POST /api/v1/guides/{id}/steps/{stepId}/complete
func (s *Server) handleGuidesWithPath(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r, "/api/v1/guides/")

	switch {
	case len(segments) == 1 && r.Method == http.MethodGet:
		guide, err := s.service.GetGuide(segments[0])
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeResponse(w, guide, "", http.StatusOK)

	case len(segments) == 3 && segments[1] == "steps" && r.Method == http.MethodGet:
		content, err := s.service.GuideStepContent(segments[0], segments[2])
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeResponse(w, map[string]string{"content": content}, "", http.StatusOK)

	case len(segments) == 4 && segments[1] == "steps" && segments[3] == "complete" && r.Method == http.MethodPost:
		summary, err := s.service.CompleteGuideStep(segments[0], segments[2])
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeResponse(w, summary, "", http.StatusOK)

	default:
		s.methodNotAllowed(w)
	}
}

// handleStats handles GET /api/v1/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w)
		return
	}
	s.writeResponse(w, s.service.Stats(), "", http.StatusOK)
}

// handleQuizPass handles POST /api/v1/quiz-pass
func (s *Server) handleQuizPass(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w)
		return
	}
	s.writeResponse(w, s.service.RecordQuizPass(), "", http.StatusOK)
}

// handleSavedSearches handles /api/v1/saved-searches: GET lists, POST
// creates or replaces.
func (s *Server) handleSavedSearches(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		searches, err := s.service.ListSavedSearches()
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeResponse(w, searches, "", http.StatusOK)

	case http.MethodPost:
		var search models.SavedSearch
		if err := json.NewDecoder(r.Body).Decode(&search); err != nil {
			s.writeError(w, errors.ValidationError("Invalid JSON body"))
			return
		}
		if err := s.service.SaveSearch(search); err != nil {
			s.writeError(w, err)
			return
		}
		s.writeResponse(w, search, "Saved search created", http.StatusCreated)

	default:
		s.methodNotAllowed(w)
	}
}

// handleSavedSearchesWithName handles DELETE /api/v1/saved-searches/{name}
func (s *Server) handleSavedSearchesWithName(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r, "/api/v1/saved-searches/")
	if len(segments) != 1 {
		s.writeError(w, errors.ValidationError("Saved search name is required"))
		return
	}
	if r.Method != http.MethodDelete {
		s.methodNotAllowed(w)
		return
	}
	if err := s.service.DeleteSavedSearch(segments[0]); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, nil, "Saved search deleted", http.StatusOK)
}

// handleExecuteSavedSearch handles GET /api/v1/saved-search/{name}?text=
func (s *Server) handleExecuteSavedSearch(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r, "/api/v1/saved-search/")
	if len(segments) != 1 || r.Method != http.MethodGet {
		s.methodNotAllowed(w)
		return
	}
	prompts, err := s.service.ExecuteSavedSearch(segments[0], r.URL.Query().Get("text"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, prompts, "", http.StatusOK)
}

// handleHealth handles GET /api/v1/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w)
		return
	}
	s.writeResponse(w, map[string]string{"status": "ok"}, "", http.StatusOK)
}
