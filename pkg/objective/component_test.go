package objective

import (
	"testing"

	"github.com/limaJavier/assignment/pkg/constraint"
	"github.com/limaJavier/assignment/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSolution(t *testing.T, assignment model.Assignment) *model.Solution {
	t.Helper()
	space, err := model.NewSpace(model.ModelInput{
		Teachers: []model.Teacher{
			{Name: "T1", Active: true, Balance: -2, Priorities: map[string]uint64{"C1": 1, "C2": 3}},
			{Name: "T2", Active: true, Balance: 1, Priorities: map[string]uint64{"C2": 2}},
			{Name: "T3", Active: false, Balance: -5},
		},
		Courses: []model.Course{
			{Id: "C1", Active: true, Workload: 1, Cardinality: 1},
			{Id: "C2", Active: true, Workload: 2, Cardinality: 1},
			{Id: "C3", Active: true, Workload: 3, Cardinality: 1},
		},
	})
	require.NoError(t, err)

	solution, err := space.NewSolution(assignment)
	require.NoError(t, err)
	return solution
}

func TestPriorityMultiplier(t *testing.T) {
	t.Run("Default formula", func(t *testing.T) {
		component := New(PriorityReward)

		assert.Equal(t, 4.0, component.PriorityMultiplier(1, 3))
		assert.Equal(t, 2.0, component.PriorityMultiplier(2, 3))
		assert.Equal(t, 1.0, component.PriorityMultiplier(3, 3))
		assert.Equal(t, 1.0, component.PriorityMultiplier(1, 1))
		assert.Equal(t, 0.0, component.PriorityMultiplier(0, 3), "no preference")
	})

	t.Run("Table merged with the default formula", func(t *testing.T) {
		component := New(PriorityReward)
		component.Table = map[uint64]float64{2: 10}

		assert.Equal(t, 4.0, component.PriorityMultiplier(1, 3))
		assert.Equal(t, 10.0, component.PriorityMultiplier(2, 3))
		assert.Equal(t, 1.0, component.PriorityMultiplier(3, 3))
		assert.Equal(t, 0.0, component.PriorityMultiplier(0, 3))
	})
}

func TestValue(t *testing.T) {
	//** Arrange
	solution := testSolution(t, model.Assignment{"C1": {"T1"}, "C2": {"T1", "T2"}})

	//** Act
	values := map[Kind]float64{}
	for _, kind := range Kinds() {
		values[kind] = New(kind).Value(solution)
	}

	//** Assert
	// (T1, C1) = 2^(3-1), (T1, C2) = 2^(3-3), (T2, C2) = 2^(3-2)
	assert.Equal(t, 4.0+1.0+2.0, values[PriorityReward])
	assert.Equal(t, 2.0, values[CourseCoverage])
	// Workloads of the active teachers are 3 and 2
	assert.InDelta(t, 0.25, values[WorkloadSpread], 1e-9)
	// Only T1 is active and in deficit: 2 x 3
	assert.Equal(t, 6.0, values[BalanceCompensation])
}

func TestEvaluate(t *testing.T) {
	//** Arrange
	solution := testSolution(t, model.Assignment{"C1": {"T1"}, "C2": {"T1", "T2"}})
	spread := New(WorkloadSpread)
	spread.Multiplier = 4
	inactive := New(CourseCoverage)
	inactive.Active = false

	function := Function{
		Direction:   Maximize,
		Components:  []Component{New(PriorityReward), spread, inactive},
		Constraints: []constraint.Constraint{constraint.New(constraint.CourseCardinality, true, 1), constraint.New(constraint.UnpreferredAssignment, false, 0.5)},
		HardPenalty: DefaultHardPenalty,
	}

	//** Act
	maximized := function.Evaluate(solution)
	function.Direction = Minimize
	minimized := function.Evaluate(solution)

	//** Assert
	// C2 has a teacher too many and C3 has none: 2 x 1000 hard. Every assignment is preferred
	assert.InDelta(t, 7-4*0.25, maximized.Objective, 1e-9)
	assert.InDelta(t, 2000, maximized.Penalty, 1e-9)
	assert.InDelta(t, 6-2000, maximized.Score, 1e-9)
	assert.False(t, maximized.Feasible)

	assert.InDelta(t, -7+4*0.25, minimized.Objective, 1e-9)
	assert.InDelta(t, -6+2000, minimized.Score, 1e-9)
}

func TestDirection(t *testing.T) {
	assert.True(t, Maximize.Better(2, 1))
	assert.False(t, Maximize.Better(1, 1))
	assert.True(t, Minimize.Better(1, 2))

	_, err := ParseDirection("sideways")
	assert.Error(t, err)
}

func TestComponentValidate(t *testing.T) {
	assert.NoError(t, New(PriorityReward).Validate())

	component := New(PriorityReward)
	component.Table = map[uint64]float64{0: 1}
	assert.Error(t, component.Validate())

	component = New(CourseCoverage)
	component.Direction = ""
	assert.Error(t, component.Validate())
}
