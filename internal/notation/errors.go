package notation

import (
	"fmt"
)

// FormatError reports a token that could not be interpreted as dice
// notation. Token holds the original token text, before any suffix
// stripping, for diagnostics.
type FormatError struct {
	// Token is the token that failed to parse
	Token string
}

// Error implements the error interface
func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot parse dice notation token %q", e.Token)
}
