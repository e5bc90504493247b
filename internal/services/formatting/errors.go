package formatting

// FormattingError is a custom error type for formatting service errors
type FormattingError string

// Error implements the error interface
func (e FormattingError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrMissingResult FormattingError = "roll result cannot be nil"
	ErrMissingError  FormattingError = "parse error cannot be nil"
)
