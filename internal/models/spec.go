package models

import (
	"fmt"
	"strings"
)

// DieSetSpec describes a group of same-sized dice rolled together under one
// set of rules
type DieSetSpec struct {
	// DieSize is the number of faces on each die, always at least 1
	DieSize int

	// Count is the signed number of dice to roll. The magnitude is how many
	// dice the set rolls; a negative count subtracts the set's values from
	// the total instead of adding them. Never zero.
	Count int

	// DropCount selects rolls to discard before summation: 0 keeps every
	// roll, a positive count drops that many lowest-valued rolls, a negative
	// count drops that many highest-valued rolls
	DropCount int

	// Exploding rolls an additional die whenever a die shows its maximum
	// face, chaining while the maximums continue
	Exploding bool

	// RerollValues are face values that force an unconditional redraw
	RerollValues []int

	// Minimum clamps each die's contribution: a draw at or below this value
	// contributes Minimum instead
	Minimum int
}

// String reconstructs the set's dice notation, e.g. "4d6d1" or "-2d8em3r1"
func (d DieSetSpec) String() string {
	var b strings.Builder

	count := d.Count
	if count < 0 {
		b.WriteByte('-')
		count = -count
	}
	fmt.Fprintf(&b, "%dd%d", count, d.DieSize)

	if d.DropCount != 0 {
		fmt.Fprintf(&b, "d%d", d.DropCount)
	}
	if d.Exploding {
		b.WriteByte('e')
	}
	if d.Minimum != 0 {
		fmt.Fprintf(&b, "m%d", d.Minimum)
	}
	for _, v := range d.RerollValues {
		fmt.Fprintf(&b, "r%d", v)
	}

	return b.String()
}

// RollSpec is the parsed form of one dice expression. It is immutable once
// parsed and may be simulated any number of times.
type RollSpec struct {
	// DieSets are the die-set specs in the order they appeared
	DieSets []DieSetSpec

	// Modifiers are flat signed integers added to the total, in the order
	// they appeared
	Modifiers []int
}

// String reconstructs the expression's dice notation, e.g. "1d20-1d6-2+3"
func (s RollSpec) String() string {
	parts := make([]string, 0, len(s.DieSets)+len(s.Modifiers))
	for _, ds := range s.DieSets {
		parts = append(parts, ds.String())
	}
	for _, m := range s.Modifiers {
		parts = append(parts, fmt.Sprintf("%d", m))
	}

	return strings.ReplaceAll(strings.Join(parts, "+"), "+-", "-")
}
