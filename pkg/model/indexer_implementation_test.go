package model

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexAndAttributesDeterministic(t *testing.T) {
	// Arrange
	scenarios := [][]uint64{
		{3, 3},
		{20, 5},
		{1, 45},
		{45, 1},
		{7, 13},
	}

	for _, scenario := range scenarios {
		var Teachers uint64 = scenario[0]
		var Courses uint64 = scenario[1]

		// Act
		indexer := newIndexer(Teachers, Courses)

		indices := make([]uint64, 0, Teachers*Courses)
		for teacher := uint64(0); teacher < Teachers; teacher++ {
			for course := uint64(0); course < Courses; course++ {
				indices = append(indices, indexer.Index(teacher, course))
			}
		}

		// Assert
		for _, index := range indices {
			teacher, course := indexer.Attributes(index)
			assert.Equal(t, index, indexer.Index(teacher, course))
		}
		assert.Equal(t, Teachers*Courses, indexer.Size())
	}
}

func TestIndexAndAttributesNonDeterministic(t *testing.T) {
	for range 10 {
		// Arrange
		var Teachers uint64 = uint64(rand.Intn(50) + 1)
		var Courses uint64 = uint64(rand.Intn(50) + 1)

		// Act
		indexer := newIndexer(Teachers, Courses)

		indices := make([]uint64, 0, Teachers*Courses)
		for teacher := uint64(0); teacher < Teachers; teacher++ {
			for course := uint64(0); course < Courses; course++ {
				indices = append(indices, indexer.Index(teacher, course))
			}
		}

		// Assert
		slices.Sort(indices)
		assert.Equal(t, len(indices), len(slices.Compact(slices.Clone(indices))), "indices must be unique")
		assert.Equal(t, uint64(0), indices[0])
		assert.Equal(t, Teachers*Courses-1, indices[len(indices)-1])
	}
}
