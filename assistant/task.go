package assistant

import (
	"github.com/bitrise-io/bitrise-code-assistant/common"
	"github.com/bitrise-io/bitrise-code-assistant/prompt"
)

// Shape selects which gateway operation a task uses
type Shape string

const (
	ShapeText Shape = "text"
	ShapeChat Shape = "chat"
)

// Task describes one prompt handler: how the prompt is built, how it is sent and how the answer is cleaned
type Task struct {
	Name         string
	Route        string
	OutputKey    string
	MaxTokens    int
	Shape        Shape
	BuildPrompt  func(code string) string
	Clean        func(output string) string
	EmptyMessage string
}

var (
	Summarize = Task{
		Name:         "summarize",
		Route:        "/summarize_code",
		OutputKey:    "summary",
		MaxTokens:    200,
		Shape:        ShapeText,
		BuildPrompt:  prompt.GetSummarizePrompt,
		Clean:        common.TrimOutput,
		EmptyMessage: "No summary returned",
	}

	ErrorFix = Task{
		Name:         "fix",
		Route:        "/error_detection_and_auto_fix",
		OutputKey:    "fixed_code",
		MaxTokens:    600,
		Shape:        ShapeText,
		BuildPrompt:  prompt.GetErrorFixPrompt,
		Clean:        common.StripCodeFences,
		EmptyMessage: "No code returned",
	}

	RefactorSuggestions = Task{
		Name:         "suggest",
		Route:        "/refactor_suggestions",
		OutputKey:    "suggestions",
		MaxTokens:    600,
		Shape:        ShapeText,
		BuildPrompt:  prompt.GetRefactorSuggestionsPrompt,
		Clean:        common.TrimOutput,
		EmptyMessage: "No suggestions returned",
	}

	Complete = Task{
		Name:         "complete",
		Route:        "/complete_code",
		OutputKey:    "completed_code",
		MaxTokens:    200,
		Shape:        ShapeChat,
		BuildPrompt:  prompt.GetCompletePrompt,
		Clean:        common.RemoveCommentMarkers,
		EmptyMessage: "No code completion found",
	}

	Refactor = Task{
		Name:         "refactor",
		Route:        "/refactor_code",
		OutputKey:    "refactored_code",
		MaxTokens:    500,
		Shape:        ShapeChat,
		BuildPrompt:  prompt.GetRefactorPrompt,
		Clean:        common.DropCommentLines,
		EmptyMessage: "No refactored code returned",
	}
)

// Tasks returns every task in route registration order
func Tasks() []Task {
	return []Task{Summarize, ErrorFix, RefactorSuggestions, Complete, Refactor}
}

// Lookup finds a task by name
func Lookup(name string) (Task, bool) {
	for _, t := range Tasks() {
		if t.Name == name {
			return t, true
		}
	}
	return Task{}, false
}
