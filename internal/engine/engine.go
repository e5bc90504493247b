package engine

import (
	"sort"

	"github.com/KirkDiggler/rolld/internal/dice"
	"github.com/KirkDiggler/rolld/internal/models"
)

// DefaultMaxDicePerSet is the ceiling on requested dice per die set.
// Requests beyond it are silently truncated rather than rejected, so a
// malformed huge count cannot pin the process.
const DefaultMaxDicePerSet = 150000

// Config holds configuration for the roll engine
type Config struct {
	// Roller supplies the randomness for every draw
	Roller dice.Roller

	// MaxDicePerSet overrides the truncation ceiling; 0 uses the default
	MaxDicePerSet int
}

// simulator implements the Simulator interface
type simulator struct {
	roller    dice.Roller
	maxPerSet int
}

// New creates a new roll engine
func New(cfg *Config) (Simulator, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Roller == nil {
		return nil, ErrNilRoller
	}

	maxPerSet := cfg.MaxDicePerSet
	if maxPerSet <= 0 {
		maxPerSet = DefaultMaxDicePerSet
	}

	return &simulator{
		roller:    cfg.Roller,
		maxPerSet: maxPerSet,
	}, nil
}

// Simulate rolls every die set in the spec once
func (s *simulator) Simulate(spec *models.RollSpec) (*models.RollResult, error) {
	result := &models.RollResult{
		Modifiers: append([]int(nil), spec.Modifiers...),
		// Both flags start raised and are cleared by any kept value that is
		// not its set's extreme.
		IsCrit:     true,
		IsCritFail: true,
	}

	for _, set := range spec.DieSets {
		if !canTerminate(set) {
			return nil, ErrNeverTerminates
		}

		raw := s.rollSet(set)
		dropped := selectDrops(raw, set.DropCount)

		// Walk the raw sequence in roll order so both lists keep it, and
		// fold the kept values into the crit flags while they are still
		// unsigned.
		var outcome models.DieRollOutcome
		for i, value := range raw {
			if dropped[i] {
				outcome.Dropped = append(outcome.Dropped, value)
				continue
			}
			outcome.Kept = append(outcome.Kept, value)

			if value < set.DieSize {
				result.IsCrit = false
			}
			if value > 1 {
				result.IsCritFail = false
			}
		}

		if set.Count < 0 {
			negate(outcome.Kept)
			negate(outcome.Dropped)
		}
		for _, v := range outcome.Kept {
			result.Total += v
		}

		result.Outcomes = append(result.Outcomes, outcome)
	}

	// A one-sided die is simultaneously its own maximum and minimum; if
	// nothing cleared either flag, neither counts.
	if result.IsCrit && result.IsCritFail {
		result.IsCrit = false
		result.IsCritFail = false
	}

	for _, m := range result.Modifiers {
		result.Total += m
	}

	return result, nil
}

// rollSet produces the set's raw contributions in generation order, with
// explosion chain entries immediately after the die that triggered them
func (s *simulator) rollSet(set models.DieSetSpec) []int {
	count := set.Count
	if count < 0 {
		count = -count
	}
	if count > s.maxPerSet {
		count = s.maxPerSet
	}

	reroll := make(map[int]bool, len(set.RerollValues))
	for _, v := range set.RerollValues {
		reroll[v] = true
	}

	raw := make([]int, 0, count)
	for i := 0; i < count; i++ {
		for {
			value := s.roller.Roll(set.DieSize)
			for reroll[value] {
				value = s.roller.Roll(set.DieSize)
			}

			contribution := value
			if contribution <= set.Minimum {
				contribution = set.Minimum
			}
			raw = append(raw, contribution)

			// The explosion check reads the raw draw, not the clamped
			// contribution.
			if !set.Exploding || value != set.DieSize {
				break
			}
		}
	}

	return raw
}

// canTerminate reports whether the set's rules allow a roll to finish;
// rerolling every face, or exploding a one-sided die, would draw forever
func canTerminate(set models.DieSetSpec) bool {
	if set.Exploding && set.DieSize == 1 {
		return false
	}

	faces := make(map[int]bool, len(set.RerollValues))
	for _, v := range set.RerollValues {
		if v >= 1 && v <= set.DieSize {
			faces[v] = true
		}
	}

	return len(faces) < set.DieSize
}

// selectDrops picks the raw indices to discard. A positive dropCount drops
// that many lowest values, a negative one that many highest. Tied values
// keep their roll order in the stable sort, so drop-lowest discards the
// earlier tie and drop-highest the later. Drop counts at or beyond the set
// size drop everything.
func selectDrops(raw []int, dropCount int) map[int]bool {
	if dropCount == 0 || len(raw) == 0 {
		return nil
	}

	indices := make([]int, len(raw))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return raw[indices[a]] < raw[indices[b]]
	})

	n := dropCount
	if n < 0 {
		n = -n
	}
	if n > len(indices) {
		n = len(indices)
	}

	if dropCount > 0 {
		indices = indices[:n]
	} else {
		indices = indices[len(indices)-n:]
	}

	dropped := make(map[int]bool, n)
	for _, idx := range indices {
		dropped[idx] = true
	}

	return dropped
}

func negate(values []int) {
	for i := range values {
		values[i] = -values[i]
	}
}
