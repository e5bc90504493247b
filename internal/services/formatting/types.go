package formatting

import (
	"github.com/KirkDiggler/rolld/internal/models"
)

// Highlight classifies how a rendered result should be emphasized
type Highlight string

const (
	// HighlightNone is an ordinary roll
	HighlightNone Highlight = "none"

	// HighlightCrit is a roll where every kept die landed its maximum face
	HighlightCrit Highlight = "crit"

	// HighlightCritFail is a roll where every kept die landed a one
	HighlightCritFail Highlight = "crit_fail"
)

// Config contains configuration for the formatting service
type Config struct{}

// FormatResultInput contains parameters for rendering a roll result
type FormatResultInput struct {
	// Result is the simulated roll to render
	Result *models.RollResult
}

// FormatResultOutput contains the rendered pieces of a roll result
type FormatResultOutput struct {
	// Summary is the one-line rendering, e.g. "Result: 11 [3+5]+3"
	Summary string

	// Highlight classifies the result for display emphasis
	Highlight Highlight

	// Title is a flavor line for crits and crit fails, empty otherwise
	Title string
}

// FormatParseErrorInput contains a failed expression and its parse error
type FormatParseErrorInput struct {
	// Expression is the raw expression that failed to parse
	Expression string

	// Err is the error the parser returned
	Err error
}

// FormatParseErrorOutput contains the rendered parse failure
type FormatParseErrorOutput struct {
	// Text is the user-facing failure message
	Text string
}
