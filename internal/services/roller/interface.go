package roller

import "context"

// Service defines the interface for roll operations
type Service interface {
	// Roll parses a dice expression and simulates it, honoring a trailing
	// repeat suffix ("2d6+3x5" rolls "2d6+3" five times)
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)
}
