package engine

// EngineError is a custom error type for roll engine errors
type EngineError string

// Error implements the error interface
func (e EngineError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig EngineError = "config cannot be nil"
	ErrNilRoller EngineError = "dice roller cannot be nil"

	// ErrNeverTerminates means a die set's rules can never finish a roll:
	// its reroll values cover every face, or it explodes a one-sided die
	ErrNeverTerminates EngineError = "die set rerolls or explodes every possible face"
)
