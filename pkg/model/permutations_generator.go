package model

import "math"

type permutationGenerator interface {
	// Attributes' order in the permutation parameter is the following: Teacher, Course.
	// All the constraints must take into account that if the value of permutation[i] (for all feasible i's) is math.MaxUint64 then the permutation is not ready to be evaluated if this evaluation involves permutation[i]
	//
	// Example:
	//
	//	generator := newPermutationGenerator(teachers, courses)
	//
	//	permutations := generator.ConstrainedPermutations([]func(permutation []uint64) bool{
	//				func(permutation []uint64) bool {
	//	       		// Verify "permutation[0] == math.MaxUint64", since the predicate "permutation[0] == 1" relies in this index
	//					return permutation[0] == math.MaxUint64 || permutation[0] == 1
	//				},
	//			})
	ConstrainedPermutations(constraints []func(permutation []uint64) bool) [][]uint64
}

func newPermutationGenerator(teachers, courses uint64) permutationGenerator {
	return &permutationGeneratorImplementation{teachers, courses}
}

type permutationGeneratorImplementation struct {
	teachers, courses uint64
}

func (generator *permutationGeneratorImplementation) ConstrainedPermutations(constraints []func(permutation []uint64) bool) [][]uint64 {
	permutations := make([][]uint64, 0, generator.teachers*generator.courses)
	generator.constrainedPermutations(
		constraints,
		[]uint64{generator.teachers, generator.courses},
		0,
		[]uint64{math.MaxUint64, math.MaxUint64},
		&permutations,
	)
	return permutations
}

func (generator *permutationGeneratorImplementation) constrainedPermutations(
	constraints []func(permutation []uint64) bool,
	domains []uint64,
	currentDomain uint64,
	permutation []uint64,
	permutations *[][]uint64) {

	if currentDomain >= uint64(len(domains)) {
		permutationCopy := make([]uint64, len(permutation))
		copy(permutationCopy, permutation)
		*permutations = append(*permutations, permutationCopy)
		return
	}

	for i := uint64(0); i < domains[currentDomain]; i++ {
		permutation[currentDomain] = i
		constraintViolated := false
		for _, constraint := range constraints {
			if !constraint(permutation) {
				constraintViolated = true
				break
			}
		}

		if constraintViolated {
			continue
		}

		generator.constrainedPermutations(constraints, domains, currentDomain+1, permutation, permutations)
	}

	permutation[currentDomain] = math.MaxUint64
}
