package neighborhood

import (
	"slices"
	"testing"

	"github.com/limaJavier/assignment/pkg/model"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSolution(t *testing.T) *model.Solution {
	t.Helper()
	space, err := model.NewSpace(model.ModelInput{
		Teachers: []model.Teacher{
			{Name: "T1", Active: true},
			{Name: "T2", Active: true},
			{Name: "T3", Active: false},
		},
		Courses: []model.Course{
			{Id: "C1", Active: true, Cardinality: 1},
			{Id: "C2", Active: true, Cardinality: 1},
			{Id: "C3", Active: true, Cardinality: 1},
		},
		Locks: []model.Lock{{Teacher: "T1", Course: "C1", Scope: model.ScopeCell}},
	})
	require.NoError(t, err)

	solution, err := space.NewSolution(model.Assignment{"C2": {"T1"}})
	require.NoError(t, err)
	return solution
}

func allStrategies() []Strategy {
	return lo.Map(Kinds(), func(kind Kind, _ int) Strategy { return Strategy{Kind: kind, Active: true} })
}

func TestGenerate(t *testing.T) {
	t.Run("Every active strategy in order", func(t *testing.T) {
		//** Arrange
		solution := testSolution(t)

		//** Act
		candidates := slices.Collect(Generate(solution, allStrategies()))

		//** Assert
		strategies := lo.Map(candidates, func(candidate Candidate, _ int) Kind { return candidate.Strategy })
		assert.Equal(t, []Kind{SingleAdd, SingleAdd, SingleAdd, SingleAdd, SingleDrop, Swap, Reassign}, strategies)
		assert.Equal(t, []model.Move{{Kind: model.Add, Teacher: 0, Course: 2}}, candidates[0].Moves)
		assert.Equal(t, []model.Move{{Kind: model.Drop, Teacher: 0, Course: 1}, {Kind: model.Add, Teacher: 1, Course: 1}}, candidates[5].Moves)
		assert.Equal(t, []model.Move{{Kind: model.Drop, Teacher: 0, Course: 1}, {Kind: model.Add, Teacher: 0, Course: 2}}, candidates[6].Moves)
	})

	t.Run("Locked and inactive cells are never touched", func(t *testing.T) {
		//** Arrange
		solution := testSolution(t)

		//** Act & Assert
		for candidate := range Generate(solution, allStrategies()) {
			for _, move := range candidate.Moves {
				assert.NotEqual(t, model.Cell{Teacher: 0, Course: 0}, move.Cell())
				assert.NotEqual(t, uint64(2), move.Teacher)
			}
			assert.NoError(t, solution.Clone().Apply(candidate.Moves...))
		}
	})

	t.Run("Inactive strategies are skipped", func(t *testing.T) {
		solution := testSolution(t)
		strategies := []Strategy{{Kind: SingleAdd, Active: false}, {Kind: SingleDrop, Active: true}}

		candidates := slices.Collect(Generate(solution, strategies))

		assert.Len(t, candidates, 1)
		assert.Equal(t, SingleDrop, candidates[0].Strategy)
	})

	t.Run("Stops when the consumer does", func(t *testing.T) {
		solution := testSolution(t)

		count := 0
		for range Generate(solution, allStrategies()) {
			count++
			if count == 2 {
				break
			}
		}

		assert.Equal(t, 2, count)
	})
}
