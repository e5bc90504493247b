package engine

import (
	"github.com/KirkDiggler/rolld/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_simulator.go github.com/KirkDiggler/rolld/internal/engine Simulator

// Simulator executes roll specs against a source of randomness
type Simulator interface {
	// Simulate rolls every die set in the spec once and aggregates the
	// outcome into a fresh RollResult. Deterministic when the underlying
	// roller is deterministic.
	Simulate(spec *models.RollSpec) (*models.RollResult, error)
}
