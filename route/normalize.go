package route

import "strings"

// Category is a canonical routing decision.
type Category = string

const (
	// Direct routes the task to a single worker answering directly.
	Direct Category = "direct"
	// Simple routes the task to a single tool-using worker.
	Simple Category = "simple"
	// Complex routes the task to a multi-worker strategy.
	Complex Category = "complex"
)

// aliases maps raw classifier labels to canonical categories.
var aliases = map[string]Category{
	"direct_answer":   Direct,
	"direct_response": Direct,
	"simple_tool":     Simple,
	"simple_task":     Simple,
	"complex_council": Complex,
	"complex_task":    Complex,
}

// Normalize maps a raw classifier label to a canonical category.
// Already-canonical values pass through unchanged; unrecognized labels pass
// through lower-cased so callers can detect novel classifier outputs rather
// than silently losing information. Normalize never fails.
func Normalize(raw string) Category {
	lowered := strings.ToLower(raw)
	if canonical, ok := aliases[lowered]; ok {
		return canonical
	}
	return lowered
}
