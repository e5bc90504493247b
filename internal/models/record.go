package models

import (
	"time"
)

// RollRecord wraps one simulation of an expression with identifying
// metadata for display and logging
type RollRecord struct {
	// ID is the unique identifier for the roll
	ID string

	// Expression is the dice notation the roll was simulated from
	Expression string

	// RolledAt is when the roll was made
	RolledAt time.Time

	// Result is the simulation outcome
	Result *RollResult
}
