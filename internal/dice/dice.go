package dice

import (
	"math/rand"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/rolld/internal/dice Roller

// Roller provides dice rolling functionality
type Roller interface {
	// Roll generates a random dice roll with the specified number of sides,
	// uniformly distributed in [1, sides]
	Roll(sides int) int
}

// Config for dice roller
type Config struct {
	// Optional seed for deterministic rolls; 0 seeds from the clock
	Seed int64
}

// DefaultRoller implements the Roller interface using math/rand. It is not
// safe for concurrent use; give each goroutine its own roller.
type DefaultRoller struct {
	random *rand.Rand
}

// New creates a new dice roller
func New(cfg *Config) *DefaultRoller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &DefaultRoller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll generates a random dice roll with the specified number of sides
func (r *DefaultRoller) Roll(sides int) int {
	if sides < 1 {
		sides = 6 // Default to 6-sided die
	}
	return r.random.Intn(sides) + 1
}
