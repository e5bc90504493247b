package engine

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rolld/internal/dice"
	diceMocks "github.com/KirkDiggler/rolld/internal/dice/mocks"
	"github.com/KirkDiggler/rolld/internal/models"
)

type EngineTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockRoller *diceMocks.MockRoller
	engine     Simulator
}

func (s *EngineTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoller = diceMocks.NewMockRoller(s.mockCtrl)

	var err error
	s.engine, err = New(&Config{Roller: s.mockRoller})
	s.Require().NoError(err)
}

func (s *EngineTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// expectRolls scripts the roller to return the given values, in order, for
// draws of the given die size
func (s *EngineTestSuite) expectRolls(sides int, values ...int) {
	next := 0
	s.mockRoller.EXPECT().Roll(sides).Times(len(values)).DoAndReturn(func(int) int {
		value := values[next]
		next++
		return value
	})
}

func (s *EngineTestSuite) TestNew_NilConfig() {
	_, err := New(nil)
	s.Require().ErrorIs(err, ErrNilConfig)
}

func (s *EngineTestSuite) TestNew_NilRoller() {
	_, err := New(&Config{})
	s.Require().ErrorIs(err, ErrNilRoller)
}

func (s *EngineTestSuite) TestSimulate_SingleSet() {
	s.expectRolls(6, 3, 5, 2)

	result, err := s.engine.Simulate(&models.RollSpec{
		DieSets: []models.DieSetSpec{{Count: 3, DieSize: 6}},
	})

	s.Require().NoError(err)
	s.Equal([]int{3, 5, 2}, result.Outcomes[0].Kept)
	s.Empty(result.Outcomes[0].Dropped)
	s.Equal(10, result.Total)
	s.False(result.IsCrit)
	s.False(result.IsCritFail)
}

func (s *EngineTestSuite) TestSimulate_ModifiersAddToTotal() {
	s.expectRolls(10, 7, 3)

	result, err := s.engine.Simulate(&models.RollSpec{
		DieSets:   []models.DieSetSpec{{Count: 2, DieSize: 10}},
		Modifiers: []int{5, -2},
	})

	s.Require().NoError(err)
	s.Equal([]int{5, -2}, result.Modifiers)
	s.Equal(13, result.Total)
}

func (s *EngineTestSuite) TestSimulate_NegativeSetSubtracts() {
	s.expectRolls(20, 15)
	s.expectRolls(6, 3)

	result, err := s.engine.Simulate(&models.RollSpec{
		DieSets: []models.DieSetSpec{
			{Count: 1, DieSize: 20},
			{Count: -1, DieSize: 6},
		},
	})

	s.Require().NoError(err)
	s.Equal([]int{15}, result.Outcomes[0].Kept)
	s.Equal([]int{-3}, result.Outcomes[1].Kept)
	s.Equal(12, result.Total)
}

func (s *EngineTestSuite) TestSimulate_DropLowestTieGoesToEarlierRoll() {
	s.expectRolls(6, 4, 2, 5, 2)

	result, err := s.engine.Simulate(&models.RollSpec{
		DieSets: []models.DieSetSpec{{Count: 4, DieSize: 6, DropCount: 1}},
	})

	s.Require().NoError(err)
	// The two 2s tie; the earlier roll is the one dropped.
	s.Equal([]int{4, 5, 2}, result.Outcomes[0].Kept)
	s.Equal([]int{2}, result.Outcomes[0].Dropped)
	s.Equal(11, result.Total)
}

func (s *EngineTestSuite) TestSimulate_DropHighestTieGoesToLaterRoll() {
	s.expectRolls(6, 4, 2, 5, 5)

	result, err := s.engine.Simulate(&models.RollSpec{
		DieSets: []models.DieSetSpec{{Count: 4, DieSize: 6, DropCount: -1}},
	})

	s.Require().NoError(err)
	s.Equal([]int{4, 2, 5}, result.Outcomes[0].Kept)
	s.Equal([]int{5}, result.Outcomes[0].Dropped)
	s.Equal(11, result.Total)
}

func (s *EngineTestSuite) TestSimulate_OversizedDropCountDropsEverything() {
	s.expectRolls(6, 3, 4)

	result, err := s.engine.Simulate(&models.RollSpec{
		DieSets: []models.DieSetSpec{{Count: 2, DieSize: 6, DropCount: 5}},
	})

	s.Require().NoError(err)
	s.Empty(result.Outcomes[0].Kept)
	s.Equal([]int{3, 4}, result.Outcomes[0].Dropped)
	s.Equal(0, result.Total)
	s.False(result.IsCrit)
	s.False(result.IsCritFail)
}

func (s *EngineTestSuite) TestSimulate_ExplodingChainsAfterTrigger() {
	s.expectRolls(6, 6, 6, 3, 2)

	result, err := s.engine.Simulate(&models.RollSpec{
		DieSets: []models.DieSetSpec{{Count: 2, DieSize: 6, Exploding: true}},
	})

	s.Require().NoError(err)
	// First die explodes twice; its chain sits before the second die.
	s.Equal([]int{6, 6, 3, 2}, result.Outcomes[0].Kept)
	s.Equal(17, result.Total)
}

func (s *EngineTestSuite) TestSimulate_RerollValuesForceRedraw() {
	s.expectRolls(6, 1, 1, 4, 2, 1, 5)

	result, err := s.engine.Simulate(&models.RollSpec{
		DieSets: []models.DieSetSpec{{Count: 3, DieSize: 6, RerollValues: []int{1}}},
	})

	s.Require().NoError(err)
	s.Equal([]int{4, 2, 5}, result.Outcomes[0].Kept)
	s.Equal(11, result.Total)
}

func (s *EngineTestSuite) TestSimulate_MinimumClampsLowRolls() {
	s.expectRolls(6, 1, 3, 6)

	result, err := s.engine.Simulate(&models.RollSpec{
		DieSets: []models.DieSetSpec{{Count: 3, DieSize: 6, Minimum: 3}},
	})

	s.Require().NoError(err)
	s.Equal([]int{3, 3, 6}, result.Outcomes[0].Kept)
	s.Equal(12, result.Total)
}

func (s *EngineTestSuite) TestSimulate_ExplosionReadsRawDrawNotClamp() {
	s.expectRolls(6, 6, 2)

	result, err := s.engine.Simulate(&models.RollSpec{
		DieSets: []models.DieSetSpec{{Count: 1, DieSize: 6, Exploding: true, Minimum: 6}},
	})

	s.Require().NoError(err)
	// The clamped 2 still reads as 6, but it does not explode.
	s.Equal([]int{6, 6}, result.Outcomes[0].Kept)
	s.Equal(12, result.Total)
	s.True(result.IsCrit)
	s.False(result.IsCritFail)
}

func (s *EngineTestSuite) TestSimulate_CritWhenEveryKeptValueIsMax() {
	s.expectRolls(20, 20, 20)

	result, err := s.engine.Simulate(&models.RollSpec{
		DieSets: []models.DieSetSpec{{Count: 2, DieSize: 20}},
	})

	s.Require().NoError(err)
	s.True(result.IsCrit)
	s.False(result.IsCritFail)
}

func (s *EngineTestSuite) TestSimulate_CritFailWhenEveryKeptValueIsOne() {
	s.expectRolls(20, 1, 1)

	result, err := s.engine.Simulate(&models.RollSpec{
		DieSets: []models.DieSetSpec{{Count: 2, DieSize: 20}},
	})

	s.Require().NoError(err)
	s.False(result.IsCrit)
	s.True(result.IsCritFail)
}

func (s *EngineTestSuite) TestSimulate_CritClearedByAnySet() {
	s.expectRolls(20, 20)
	s.expectRolls(6, 3)

	result, err := s.engine.Simulate(&models.RollSpec{
		DieSets: []models.DieSetSpec{
			{Count: 1, DieSize: 20},
			{Count: 1, DieSize: 6},
		},
	})

	s.Require().NoError(err)
	s.False(result.IsCrit)
	s.False(result.IsCritFail)
}

func (s *EngineTestSuite) TestSimulate_DroppedValuesDoNotAffectCrit() {
	s.expectRolls(20, 20, 5)

	result, err := s.engine.Simulate(&models.RollSpec{
		DieSets: []models.DieSetSpec{{Count: 2, DieSize: 20, DropCount: 1}},
	})

	s.Require().NoError(err)
	s.Equal([]int{20}, result.Outcomes[0].Kept)
	s.Equal([]int{5}, result.Outcomes[0].Dropped)
	s.True(result.IsCrit)
}

func (s *EngineTestSuite) TestSimulate_OneSidedDiceNeverCrit() {
	s.expectRolls(1, 1, 1, 1)

	result, err := s.engine.Simulate(&models.RollSpec{
		DieSets: []models.DieSetSpec{{Count: 3, DieSize: 1}},
	})

	s.Require().NoError(err)
	s.Equal(3, result.Total)
	s.False(result.IsCrit)
	s.False(result.IsCritFail)
}

func (s *EngineTestSuite) TestSimulate_RequestedDiceTruncatedAtCeiling() {
	capped, err := New(&Config{Roller: s.mockRoller, MaxDicePerSet: 3})
	s.Require().NoError(err)

	s.expectRolls(6, 2, 3, 4)

	result, err := capped.Simulate(&models.RollSpec{
		DieSets: []models.DieSetSpec{{Count: 10, DieSize: 6}},
	})

	s.Require().NoError(err)
	s.Len(result.Outcomes[0].Kept, 3)
	s.Equal(9, result.Total)
}

func (s *EngineTestSuite) TestSimulate_RerollCoveringEveryFaceFails() {
	_, err := s.engine.Simulate(&models.RollSpec{
		DieSets: []models.DieSetSpec{{Count: 1, DieSize: 2, RerollValues: []int{1, 2}}},
	})

	s.Require().ErrorIs(err, ErrNeverTerminates)
}

func (s *EngineTestSuite) TestSimulate_ExplodingOneSidedDieFails() {
	_, err := s.engine.Simulate(&models.RollSpec{
		DieSets: []models.DieSetSpec{{Count: 1, DieSize: 1, Exploding: true}},
	})

	s.Require().ErrorIs(err, ErrNeverTerminates)
}

func (s *EngineTestSuite) TestSimulate_OutOfRangeRerollValuesAreHarmless() {
	s.expectRolls(2, 1, 2)

	result, err := s.engine.Simulate(&models.RollSpec{
		DieSets: []models.DieSetSpec{{Count: 1, DieSize: 2, RerollValues: []int{1, 3}}},
	})

	s.Require().NoError(err)
	s.Equal([]int{2}, result.Outcomes[0].Kept)
}

func (s *EngineTestSuite) TestSimulate_EmptySpec() {
	result, err := s.engine.Simulate(&models.RollSpec{})

	s.Require().NoError(err)
	s.Equal(0, result.Total)
	s.Empty(result.Outcomes)
	s.False(result.IsCrit)
	s.False(result.IsCritFail)
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func TestSimulate_DeterministicWithSameSeed(t *testing.T) {
	spec := &models.RollSpec{
		DieSets: []models.DieSetSpec{
			{Count: 4, DieSize: 6, DropCount: 1, Exploding: true},
			{Count: -2, DieSize: 8, RerollValues: []int{1}},
		},
		Modifiers: []int{3},
	}

	run := func() *models.RollResult {
		eng, err := New(&Config{Roller: dice.New(&dice.Config{Seed: 99})})
		if err != nil {
			t.Fatalf("New returned error: %v", err)
		}
		result, err := eng.Simulate(spec)
		if err != nil {
			t.Fatalf("Simulate returned error: %v", err)
		}
		return result
	}

	first := run()
	second := run()

	if first.Total != second.Total {
		t.Fatalf("totals differ: %d vs %d", first.Total, second.Total)
	}
	for i := range first.Outcomes {
		for j, v := range first.Outcomes[i].Kept {
			if second.Outcomes[i].Kept[j] != v {
				t.Fatalf("kept values differ at set %d index %d", i, j)
			}
		}
	}
}

func TestSimulate_KeptCountAndRange(t *testing.T) {
	eng, err := New(&Config{Roller: dice.New(&dice.Config{Seed: 5})})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	result, err := eng.Simulate(&models.RollSpec{
		DieSets: []models.DieSetSpec{{Count: 5, DieSize: 8}},
	})
	if err != nil {
		t.Fatalf("Simulate returned error: %v", err)
	}

	if len(result.Outcomes[0].Kept) != 5 {
		t.Fatalf("expected 5 kept values, got %d", len(result.Outcomes[0].Kept))
	}
	sum := 0
	for _, v := range result.Outcomes[0].Kept {
		if v < 1 || v > 8 {
			t.Fatalf("value %d outside [1, 8]", v)
		}
		sum += v
	}
	if result.Total != sum {
		t.Fatalf("total %d does not match kept sum %d", result.Total, sum)
	}
}

func TestSimulate_CritFlagsReachableOnTwoSidedDie(t *testing.T) {
	eng, err := New(&Config{Roller: dice.New(&dice.Config{Seed: 7})})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	spec := &models.RollSpec{DieSets: []models.DieSetSpec{{Count: 1, DieSize: 2}}}

	var sawCrit, sawCritFail bool
	for i := 0; i < 200 && !(sawCrit && sawCritFail); i++ {
		result, err := eng.Simulate(spec)
		if err != nil {
			t.Fatalf("Simulate returned error: %v", err)
		}
		sawCrit = sawCrit || result.IsCrit
		sawCritFail = sawCritFail || result.IsCritFail
	}

	if !sawCrit || !sawCritFail {
		t.Fatalf("expected both crit and crit-fail within 200 rolls of 1d2 (crit=%t, critFail=%t)", sawCrit, sawCritFail)
	}
}
