package roller

// RollerError is a custom error type for roller service errors
type RollerError string

// Error implements the error interface
func (e RollerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig         RollerError = "config cannot be nil"
	ErrNilEngine         RollerError = "engine cannot be nil"
	ErrNilClock          RollerError = "clock cannot be nil"
	ErrNilUUIDGenerator  RollerError = "UUID generator cannot be nil"
	ErrMissingExpression RollerError = "expression cannot be empty"
)
