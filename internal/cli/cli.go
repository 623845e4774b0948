// Package cli provides the headless command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/helixmed/helix-core/internal/clipboard"
	"github.com/helixmed/helix-core/internal/models"
	"github.com/helixmed/helix-core/internal/service"
)

// CLI dispatches command-line operations against the service.
type CLI struct {
	service *service.Service
}

// NewCLI creates a new CLI instance.
func NewCLI(svc *service.Service) *CLI {
	return &CLI{service: svc}
}

// ExecuteCommand runs one command with its arguments.
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "list", "ls":
		return c.listPrompts(commandArgs)
	case "search":
		return c.searchPrompts(commandArgs)
	case "get", "show":
		return c.showPrompt(commandArgs)
	case "render":
		return c.renderPrompt(commandArgs)
	case "copy":
		return c.copyPrompt(commandArgs)
	case "favorites":
		return c.handleFavorites(commandArgs)
	case "tags":
		return c.handleTags()
	case "tag-search":
		return c.tagSearch(commandArgs)
	case "search-saved":
		return c.handleSavedSearches(commandArgs)
	case "courses":
		return c.listCourses(commandArgs)
	case "complete":
		return c.completeLesson(commandArgs)
	case "uncomplete":
		return c.uncompleteLesson(commandArgs)
	case "progress":
		return c.showProgress()
	case "guides":
		return c.listGuides(commandArgs)
	case "journals":
		return c.listJournals(commandArgs)
	case "stats":
		return c.showStats()
	case "help":
		return c.printUsage()
	default:
		return fmt.Errorf("unknown command: %s. Use 'help' for usage information", command)
	}
}

// flagValue extracts the value following --name or its short alias.
func flagValue(args []string, name, short string) string {
	for i, arg := range args {
		if (arg == name || arg == short) && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func (c *CLI) listPrompts(args []string) error {
	format := flagValue(args, "--format", "-f")
	category := flagValue(args, "--category", "-c")

	prompts, err := c.service.FilterPrompts("", category)
	if err != nil {
		return fmt.Errorf("failed to list prompts: %w", err)
	}
	return c.formatPrompts(prompts, format)
}

func (c *CLI) searchPrompts(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("search requires a query")
	}
	format := flagValue(args, "--format", "-f")

	prompts, err := c.service.SearchPrompts(args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return c.formatPrompts(prompts, format)
}

func (c *CLI) showPrompt(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("show requires a prompt ID")
	}

	prompt, err := c.service.GetPrompt(args[0])
	if err != nil {
		return fmt.Errorf("failed to get prompt: %w", err)
	}

	if flagValue(args, "--format", "-f") == "json" {
		return json.NewEncoder(os.Stdout).Encode(prompt)
	}

	fmt.Printf("ID:          %s\n", prompt.ID)
	fmt.Printf("Title:       %s\n", prompt.Title)
	if prompt.Description != "" {
		fmt.Printf("Description: %s\n", prompt.Description)
	}
	fmt.Printf("Category:    %s\n", prompt.Category)
	if len(prompt.Tags) > 0 {
		fmt.Printf("Tags:        %s\n", strings.Join(prompt.Tags, ", "))
	}
	if prompt.RiskLevel != "" {
		fmt.Printf("Risk:        %s\n", prompt.RiskLevel)
	}
	if prompt.WarningMessage != "" {
		fmt.Printf("Warning:     %s\n", prompt.WarningMessage)
	}
	fmt.Printf("\n%s\n", prompt.Template)
	return nil
}

// parseValues parses repeated key=value arguments.
func parseValues(args []string) map[string]string {
	values := make(map[string]string)
	for _, arg := range args {
		if k, v, ok := strings.Cut(arg, "="); ok && !strings.HasPrefix(k, "-") {
			values[k] = v
		}
	}
	return values
}

func (c *CLI) renderPrompt(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("render requires a prompt ID")
	}

	rendered, err := c.service.RenderPrompt(args[0], parseValues(args[1:]))
	if err != nil {
		return fmt.Errorf("failed to render prompt: %w", err)
	}
	fmt.Println(rendered)
	return nil
}

func (c *CLI) copyPrompt(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("copy requires a prompt ID")
	}

	rendered, err := c.service.RenderPrompt(args[0], parseValues(args[1:]))
	if err != nil {
		return fmt.Errorf("failed to render prompt: %w", err)
	}

	if err := clipboard.Copy(rendered); err != nil {
		// Copy failure must not lose the content.
		fmt.Printf("Warning: %v\n", err)
		fmt.Println(rendered)
		return nil
	}
	fmt.Println("Copied to clipboard!")
	return nil
}

func (c *CLI) handleFavorites(args []string) error {
	if len(args) == 0 {
		prompts, err := c.service.FavoritePrompts()
		if err != nil {
			return fmt.Errorf("failed to list favorites: %w", err)
		}
		return c.formatPrompts(prompts, "")
	}

	switch args[0] {
	case "toggle":
		if len(args) < 2 {
			return fmt.Errorf("favorites toggle requires a prompt ID")
		}
		if c.service.ToggleFavorite(args[1]) {
			fmt.Printf("Added %s to favorites\n", args[1])
		} else {
			fmt.Printf("Removed %s from favorites\n", args[1])
		}
		return nil
	default:
		return fmt.Errorf("unknown favorites subcommand: %s", args[0])
	}
}

func (c *CLI) handleTags() error {
	tags, err := c.service.AllTags()
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}
	for _, tag := range tags {
		fmt.Println(tag)
	}
	return nil
}

func (c *CLI) tagSearch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("tag-search requires an expression, e.g. 'a AND (b OR c)'")
	}

	expr, err := ParseTagExpression(strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("invalid expression: %w", err)
	}
	prompts, err := c.service.SearchPromptsByTags(expr, "")
	if err != nil {
		return fmt.Errorf("tag search failed: %w", err)
	}
	return c.formatPrompts(prompts, "")
}

func (c *CLI) handleSavedSearches(args []string) error {
	if len(args) == 0 {
		searches, err := c.service.ListSavedSearches()
		if err != nil {
			return fmt.Errorf("failed to list saved searches: %w", err)
		}
		for _, s := range searches {
			fmt.Printf("%s: %s\n", s.Name, s.Expression.String())
		}
		return nil
	}

	switch args[0] {
	case "run":
		if len(args) < 2 {
			return fmt.Errorf("search-saved run requires a name")
		}
		prompts, err := c.service.ExecuteSavedSearch(args[1], flagValue(args, "--text", "-t"))
		if err != nil {
			return fmt.Errorf("failed to run saved search: %w", err)
		}
		return c.formatPrompts(prompts, "")
	case "save":
		if len(args) < 3 {
			return fmt.Errorf("search-saved save requires a name and an expression")
		}
		expr, err := ParseTagExpression(strings.Join(args[2:], " "))
		if err != nil {
			return fmt.Errorf("invalid expression: %w", err)
		}
		search := models.SavedSearch{Name: args[1], Expression: expr}
		if err := c.service.SaveSearch(search); err != nil {
			return fmt.Errorf("failed to save search: %w", err)
		}
		fmt.Printf("Saved search %q\n", args[1])
		return nil
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("search-saved delete requires a name")
		}
		if err := c.service.DeleteSavedSearch(args[1]); err != nil {
			return fmt.Errorf("failed to delete saved search: %w", err)
		}
		fmt.Printf("Deleted saved search %q\n", args[1])
		return nil
	default:
		return fmt.Errorf("unknown search-saved subcommand: %s", args[0])
	}
}

func (c *CLI) listCourses(args []string) error {
	courses, err := c.service.ListCourses()
	if err != nil {
		return fmt.Errorf("failed to list courses: %w", err)
	}

	if flagValue(args, "--format", "-f") == "json" {
		return json.NewEncoder(os.Stdout).Encode(courses)
	}
	for _, course := range courses {
		fmt.Printf("%-24s %s (%d%%, %d/%d lessons)\n",
			course.ID, course.Title,
			course.Summary.Percentage, course.Summary.Completed, course.Summary.Available)
	}
	return nil
}

func (c *CLI) completeLesson(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("complete requires a course ID and lesson ID")
	}
	summary, err := c.service.CompleteLesson(args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to complete lesson: %w", err)
	}
	fmt.Printf("%s: %d%% (%d/%d lessons)\n", args[0], summary.Percentage, summary.Completed, summary.Available)
	return nil
}

func (c *CLI) uncompleteLesson(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("uncomplete requires a course ID and lesson ID")
	}
	summary, err := c.service.UncompleteLesson(args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to uncomplete lesson: %w", err)
	}
	fmt.Printf("%s: %d%% (%d/%d lessons)\n", args[0], summary.Percentage, summary.Completed, summary.Available)
	return nil
}

func (c *CLI) showProgress() error {
	summary, err := c.service.GettingStarted()
	if err != nil {
		return fmt.Errorf("failed to compute progress: %w", err)
	}
	fmt.Printf("Getting started: %d%% (%d/%d lessons), %s\n",
		summary.Percentage, summary.Completed, summary.Total, summary.State)
	return nil
}

func (c *CLI) listGuides(args []string) error {
	guides, err := c.service.ListGuides()
	if err != nil {
		return fmt.Errorf("failed to list guides: %w", err)
	}
	if flagValue(args, "--format", "-f") == "json" {
		return json.NewEncoder(os.Stdout).Encode(guides)
	}
	for _, guide := range guides {
		fmt.Printf("%-24s %s (%d min, %d/%d steps)\n",
			guide.ID, guide.Title, guide.ReadTime,
			guide.Summary.Completed, guide.Summary.Available)
	}
	return nil
}

func (c *CLI) listJournals(args []string) error {
	journals, err := c.service.ListJournals()
	if err != nil {
		return fmt.Errorf("failed to list journals: %w", err)
	}
	journals = c.service.QueryJournals(journals,
		flagValue(args, "--query", "-q"),
		flagValue(args, "--category", "-c"),
		flagValue(args, "--sort", "-s"))

	if flagValue(args, "--format", "-f") == "json" {
		return json.NewEncoder(os.Stdout).Encode(journals)
	}
	for _, j := range journals {
		fmt.Printf("%-32s IF %.1f  %s\n", j.Title, j.ImpactFactor, strings.Join(j.Categories, ", "))
	}
	return nil
}

func (c *CLI) showStats() error {
	stats := c.service.Stats()
	fmt.Printf("Level:   %d\n", stats.CurrentLevel)
	fmt.Printf("XP:      %d\n", stats.TotalXP)
	fmt.Printf("Streak:  %d (longest %d)\n", stats.CurrentStreak, stats.LongestStreak)
	fmt.Printf("Lessons: %d\n", stats.TotalLessonsCompleted)
	fmt.Printf("Quizzes: %d\n", stats.TotalQuizzesPassed)
	return nil
}

func (c *CLI) formatPrompts(prompts []*models.Prompt, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(prompts)
	case "ids":
		for _, p := range prompts {
			fmt.Println(p.ID)
		}
		return nil
	default:
		for _, p := range prompts {
			line := fmt.Sprintf("%-28s %s", p.ID, p.Title)
			if len(p.Tags) > 0 {
				line += fmt.Sprintf("  [%s]", strings.Join(p.Tags, ", "))
			}
			fmt.Println(line)
		}
		return nil
	}
}

func (c *CLI) printUsage() error {
	fmt.Println(`helix - medical AI prompt library and learning companion

Prompt commands:
  list [--category <id>] [--format json|ids]   List prompts
  search <query>                               Fuzzy search prompts
  show <id>                                    Show one prompt
  render <id> [key=value ...]                  Render a prompt template
  copy <id> [key=value ...]                    Render and copy to clipboard
  favorites [toggle <id>]                      List or toggle favorites
  tags                                         List all tags
  tag-search <expr>                            Search by tag expression (AND/OR/NOT)
  search-saved [run|save|delete] ...           Manage saved searches

Learning commands:
  courses [--format json]                      List courses with progress
  complete <course> <lesson>                   Mark a lesson done
  uncomplete <course> <lesson>                 Undo a lesson completion
  progress                                     Show getting-started progress
  guides [--format json]                       List guides with progress
  journals [-q <text>] [-c <cat>] [-s <sort>]  Browse the journal directory
  stats                                        Show XP, level, and streaks

Server:
  helix --serve [--port <n>]                   Start the HTTP API server`)
	return nil
}
