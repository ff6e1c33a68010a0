package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchingAssignment(t *testing.T) {
	t.Run("Distinct preferred teachers", func(t *testing.T) {
		//** Arrange
		input := testInput()
		input.Teachers[1].Priorities = map[string]uint64{"C1": 1, "C2": 1}
		input.Teachers[0].Priorities = map[string]uint64{"C1": 1}
		space, err := NewSpace(input)
		require.NoError(t, err)

		//** Act
		assignment, err := MatchingAssignment(space)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, Assignment{"C1": {"T1"}, "C2": {"T2"}}, assignment)
	})

	t.Run("Pinned cells are kept", func(t *testing.T) {
		//** Arrange
		input := testInput()
		input.Locks = []Lock{{Course: "C3", Scope: ScopeColumn}}
		input.Assignment = Assignment{"C3": {"T2"}}
		space, err := NewSpace(input)
		require.NoError(t, err)

		//** Act
		assignment, err := MatchingAssignment(space)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"T2"}, assignment["C3"])
		assert.Len(t, assignment["C1"], 1)
		assert.Len(t, assignment["C2"], 1)
	})
}
