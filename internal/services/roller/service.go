package roller

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rolld/internal/common/clock"
	"github.com/KirkDiggler/rolld/internal/common/uuid"
	"github.com/KirkDiggler/rolld/internal/engine"
	"github.com/KirkDiggler/rolld/internal/logging"
	"github.com/KirkDiggler/rolld/internal/models"
	"github.com/KirkDiggler/rolld/internal/notation"
)

// service implements the Service interface
type service struct {
	engine        engine.Simulator
	clock         clock.Clock
	uuidGenerator uuid.UUID
	log           zerolog.Logger
}

// New creates a new roller service
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Engine == nil {
		return nil, ErrNilEngine
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		engine:        cfg.Engine,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		log:           logging.GetLogger("roller"),
	}, nil
}

// Roll parses a dice expression and simulates it
func (s *service) Roll(ctx context.Context, input *RollInput) (*RollOutput, error) {
	if input == nil || strings.TrimSpace(input.Expression) == "" {
		return nil, ErrMissingExpression
	}

	expression, repeats := splitRepeat(strings.ToLower(strings.TrimSpace(input.Expression)))

	// Parse once; every repeat simulates the same spec independently.
	spec, err := notation.Parse(expression)
	if err != nil {
		return nil, err
	}

	records := make([]*models.RollRecord, 0, repeats)
	for i := 0; i < repeats; i++ {
		result, err := s.engine.Simulate(spec)
		if err != nil {
			return nil, err
		}

		records = append(records, &models.RollRecord{
			ID:         s.uuidGenerator.NewUUID(),
			Expression: expression,
			RolledAt:   s.clock.Now(),
			Result:     result,
		})
	}

	s.log.Debug().
		Str("expression", expression).
		Str("spec", spec.String()).
		Int("repeats", repeats).
		Msg("Rolled expression")

	return &RollOutput{
		Expression: expression,
		Spec:       spec,
		Records:    records,
	}, nil
}

// splitRepeat strips a trailing repeat suffix from the expression. A suffix
// that is not "x" plus digits stays in the expression and fails in the
// parser; counts below one clamp to a single roll.
func splitRepeat(expression string) (string, int) {
	idx := strings.LastIndex(expression, "x")
	if idx < 0 || idx == len(expression)-1 {
		return expression, 1
	}

	count, err := strconv.Atoi(expression[idx+1:])
	if err != nil {
		return expression, 1
	}
	if count < 1 {
		count = 1
	}

	return expression[:idx], count
}
