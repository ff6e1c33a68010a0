package tabu

import (
	"testing"

	"github.com/limaJavier/assignment/pkg/model"
	"github.com/limaJavier/assignment/pkg/neighborhood"
	"github.com/limaJavier/assignment/pkg/objective"
	"github.com/stretchr/testify/assert"
)

func candidateOf(moves ...model.Move) neighborhood.Candidate {
	return neighborhood.Candidate{Moves: moves}
}

func TestSolutionMemory(t *testing.T) {
	t.Run("Oldest fingerprint is evicted", func(t *testing.T) {
		//** Arrange
		memory := NewSolutionMemory(2)

		//** Act
		memory.Record(candidateOf(), 1)
		memory.Record(candidateOf(), 2)
		memory.Record(candidateOf(), 3)

		//** Assert
		assert.False(t, memory.IsTabu(candidateOf(), 1))
		assert.True(t, memory.IsTabu(candidateOf(), 2))
		assert.True(t, memory.IsTabu(candidateOf(), 3))
	})

	t.Run("Re-pushing moves to the back", func(t *testing.T) {
		//** Arrange
		memory := NewSolutionMemory(2)
		memory.Record(candidateOf(), 1)
		memory.Record(candidateOf(), 2)

		//** Act
		memory.Record(candidateOf(), 1)
		memory.Record(candidateOf(), 3)

		//** Assert
		assert.True(t, memory.IsTabu(candidateOf(), 1))
		assert.False(t, memory.IsTabu(candidateOf(), 2))
		assert.Len(t, memory.(*solutionMemory).queue, 2)
	})

	t.Run("Decay keeps and reset empties", func(t *testing.T) {
		memory := NewSolutionMemory(3)
		memory.Record(candidateOf(), 7)

		memory.Decay()
		assert.True(t, memory.IsTabu(candidateOf(), 7))

		memory.Reset()
		assert.False(t, memory.IsTabu(candidateOf(), 7))
	})
}

func TestMovementMemory(t *testing.T) {
	add := model.Move{Kind: model.Add, Teacher: 0, Course: 1}
	drop := add.Reverse()

	t.Run("Reversal of a recorded move is tabu for exactly one tenure", func(t *testing.T) {
		//** Arrange
		memory := NewMovementMemory(2, 5)

		//** Act & Assert
		// Iteration k accepts the add: decay first, then record
		memory.Decay()
		memory.Record(candidateOf(add), 0)

		// Iteration k+1
		assert.True(t, memory.IsTabu(candidateOf(drop), 0))
		assert.False(t, memory.IsTabu(candidateOf(model.Move{Kind: model.Drop, Teacher: 1, Course: 1}), 0))
		memory.Decay()

		// Iteration k+2
		assert.True(t, memory.IsTabu(candidateOf(drop), 0))
		memory.Decay()

		// Iteration k+3
		assert.False(t, memory.IsTabu(candidateOf(drop), 0))
	})

	t.Run("Refresh, not stack", func(t *testing.T) {
		//** Arrange
		memory := NewMovementMemory(3, 3)
		movement := memory.(*movementMemory)

		//** Act
		memory.Record(candidateOf(add), 0)
		memory.Decay()
		memory.Record(candidateOf(add), 0)
		refreshed := movement.remaining(model.Add, add.Cell())
		memory.Record(candidateOf(add), 0)
		again := movement.remaining(model.Add, add.Cell())

		//** Assert
		assert.Equal(t, 3, refreshed)
		assert.Equal(t, 3, again)
		for range 3 {
			memory.Decay()
		}
		assert.Equal(t, 0, movement.remaining(model.Add, add.Cell()))
		assert.False(t, memory.IsTabu(candidateOf(drop), 0))
	})

	t.Run("Compound candidates are tabu when any move reverses a recorded one", func(t *testing.T) {
		memory := NewMovementMemory(2, 2)
		memory.Record(candidateOf(drop), 0)

		swap := candidateOf(model.Move{Kind: model.Drop, Teacher: 1, Course: 1}, add)

		assert.True(t, memory.IsTabu(swap, 0))
		memory.Reset()
		assert.False(t, memory.IsTabu(swap, 0))
	})

	t.Run("Aspiration admits a tabu reversal", func(t *testing.T) {
		//** Arrange
		memory := NewMovementMemory(2, 2)
		memory.Record(candidateOf(add), 0)
		aspirations := []Aspiration{{Kind: BestImprovement, Active: true}}

		//** Act
		tabu := memory.IsTabu(candidateOf(drop), 0)
		admitted := aspirated(aspirations, 5, 4, objective.Maximize)
		rejected := aspirated(aspirations, 4, 4, objective.Maximize)

		//** Assert
		assert.True(t, tabu)
		assert.True(t, admitted)
		assert.False(t, rejected)
	})
}
