package formatting

import "context"

// Service is the interface for the formatting service
type Service interface {
	// FormatResult renders one roll result as display text
	FormatResult(ctx context.Context, input *FormatResultInput) (*FormatResultOutput, error)

	// FormatParseError renders a failed expression as display text
	FormatParseError(ctx context.Context, input *FormatParseErrorInput) (*FormatParseErrorOutput, error)
}
