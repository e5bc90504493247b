package roller

import (
	"github.com/KirkDiggler/rolld/internal/common/clock"
	"github.com/KirkDiggler/rolld/internal/common/uuid"
	"github.com/KirkDiggler/rolld/internal/engine"
	"github.com/KirkDiggler/rolld/internal/models"
)

// Config holds configuration for the roller service
type Config struct {
	// Service dependencies
	Engine        engine.Simulator
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// RollInput contains parameters for rolling a dice expression
type RollInput struct {
	// Expression is the dice notation to roll, optionally ending in a
	// repeat suffix like "x3"
	Expression string
}

// RollOutput contains the result of rolling a dice expression
type RollOutput struct {
	// Expression is the notation that was simulated, lower-cased and with
	// any repeat suffix removed
	Expression string

	// Spec is the parsed form of the expression
	Spec *models.RollSpec

	// Records holds one entry per simulation, in roll order
	Records []*models.RollRecord
}
