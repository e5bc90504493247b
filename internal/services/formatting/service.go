package formatting

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/rolld/internal/models"
	"github.com/KirkDiggler/rolld/internal/notation"
)

// Flavor titles for the two extremes. One is picked at random per result.
var (
	critTitles = []string{
		"Critical hit!",
		"Maximum damage!",
		"The dice gods smile upon you!",
		"Every die came up max. Frame this one.",
		"Absolute perfection!",
	}

	critFailTitles = []string{
		"Critical fail!",
		"Ouch. Every single one.",
		"The dice gods have abandoned you.",
		"All ones. Statistically impressive, practically tragic.",
		"Maybe sit this one out.",
	}
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting flavor titles
	rand *rand.Rand
}

// New creates a new formatting service
func New(cfg *Config) (Service, error) {
	// Seed the flavor picker with the current time
	source := rand.NewSource(time.Now().UnixNano())

	return &service{
		rand: rand.New(source),
	}, nil
}

// FormatResult renders one roll result as display text
func (s *service) FormatResult(ctx context.Context, input *FormatResultInput) (*FormatResultOutput, error) {
	if input == nil || input.Result == nil {
		return nil, ErrMissingResult
	}

	result := input.Result

	output := &FormatResultOutput{
		Summary:   fmt.Sprintf("Result: %d %s%s", result.Total, renderDetails(result), renderDropSuffix(result)),
		Highlight: HighlightNone,
	}

	switch {
	case result.IsCrit:
		output.Highlight = HighlightCrit
		output.Title = critTitles[s.rand.Intn(len(critTitles))]
	case result.IsCritFail:
		output.Highlight = HighlightCritFail
		output.Title = critFailTitles[s.rand.Intn(len(critFailTitles))]
	}

	return output, nil
}

// FormatParseError renders a failed expression as display text
func (s *service) FormatParseError(ctx context.Context, input *FormatParseErrorInput) (*FormatParseErrorOutput, error) {
	if input == nil || input.Err == nil {
		return nil, ErrMissingError
	}

	var formatErr *notation.FormatError
	if errors.As(input.Err, &formatErr) {
		return &FormatParseErrorOutput{
			Text: fmt.Sprintf("Could not read %q: %q is not valid dice notation. Try something like 2d6+3 or 4d6d1.", input.Expression, formatErr.Token),
		}, nil
	}

	return &FormatParseErrorOutput{
		Text: fmt.Sprintf("Could not roll %q: %s.", input.Expression, input.Err),
	}, nil
}

// renderDetails joins each set's bracketed kept values and the flat
// modifiers with "+", then collapses every "+-" the join produced into
// "-" so subtraction reads naturally: "[15]-[3]-2+3".
func renderDetails(result *models.RollResult) string {
	parts := make([]string, 0, len(result.Outcomes)+1)

	for _, outcome := range result.Outcomes {
		parts = append(parts, renderKept(outcome.Kept))
	}

	if len(result.Modifiers) == 0 {
		parts = append(parts, "0")
	} else {
		for _, modifier := range result.Modifiers {
			parts = append(parts, strconv.Itoa(modifier))
		}
	}

	return strings.ReplaceAll(strings.Join(parts, "+"), "+-", "-")
}

// renderKept renders one set's kept values as "[a+b+c]" using magnitudes,
// with a leading "-" when the set subtracts. An empty kept list renders
// a bare "[]".
func renderKept(kept []int) string {
	if len(kept) == 0 {
		return "[]"
	}

	values := make([]string, len(kept))
	for i, v := range kept {
		values[i] = strconv.Itoa(abs(v))
	}

	bracket := "[" + strings.Join(values, "+") + "]"
	if kept[0] < 0 {
		bracket = "-" + bracket
	}

	return bracket
}

// renderDropSuffix renders the dropped values. One set with drops gets a
// flat " Dropped (2,3)"; several sets get one bracketed group per set
// that dropped, " Dropped ([2], [5,1])".
func renderDropSuffix(result *models.RollResult) string {
	var groups []string
	for _, outcome := range result.Outcomes {
		if len(outcome.Dropped) == 0 {
			continue
		}

		values := make([]string, len(outcome.Dropped))
		for i, v := range outcome.Dropped {
			values[i] = strconv.Itoa(abs(v))
		}

		groups = append(groups, strings.Join(values, ","))
	}

	switch len(groups) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf(" Dropped (%s)", groups[0])
	default:
		for i, group := range groups {
			groups[i] = "[" + group + "]"
		}
		return fmt.Sprintf(" Dropped (%s)", strings.Join(groups, ", "))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
