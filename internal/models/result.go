package models

// DieRollOutcome holds one die set's materialized rolls. Values are signed
// according to the set's Count sign, and both lists preserve the order the
// dice were rolled in.
type DieRollOutcome struct {
	// Kept are the values that count toward the total
	Kept []int

	// Dropped are the values discarded by the set's DropCount
	Dropped []int
}

// RollResult is the product of simulating a RollSpec once. It is written
// once by the engine and read-only afterward.
type RollResult struct {
	// Outcomes holds one DieRollOutcome per die set, in RollSpec order
	Outcomes []DieRollOutcome

	// Modifiers is a copy of the spec's modifier list
	Modifiers []int

	// Total is the sum of all kept values plus all modifiers
	Total int

	// IsCrit indicates every kept die across the expression rolled its
	// set's maximum face
	IsCrit bool

	// IsCritFail indicates every kept die across the expression rolled its
	// set's minimum face
	IsCritFail bool
}
