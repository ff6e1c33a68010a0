package model

import (
	"slices"

	"github.com/samber/lo"
)

type predicateEvaluatorStandard struct {
	input       ModelInput
	priorities  [][]uint64 // Priority matrix indexed by teacher and course
	locks       map[Cell]bool
	lockedRows  map[uint64]bool
	lockedCols  map[uint64]bool
	overlaps    [][]bool
	conflicting [][]bool
}

func newPredicateEvaluator(input ModelInput, teacherIds, courseIds map[string]uint64) predicateEvaluator {
	teachers, courses := len(input.Teachers), len(input.Courses)

	evaluator := predicateEvaluatorStandard{
		input:      input,
		locks:      make(map[Cell]bool),
		lockedRows: make(map[uint64]bool),
		lockedCols: make(map[uint64]bool),
	}

	//** Priorities
	evaluator.priorities = make([][]uint64, teachers)
	for teacher := range teachers {
		evaluator.priorities[teacher] = make([]uint64, courses)
		for courseId, priority := range input.Teachers[teacher].Priorities {
			if course, ok := courseIds[courseId]; ok {
				evaluator.priorities[teacher][course] = priority
			}
		}
	}

	//** Locks
	for _, lock := range input.Locks {
		teacher, course := teacherIds[lock.Teacher], courseIds[lock.Course]
		switch lock.Scope {
		case ScopeRow:
			evaluator.lockedRows[teacher] = true
		case ScopeColumn:
			evaluator.lockedCols[course] = true
		default:
			evaluator.locks[Cell{Teacher: teacher, Course: course}] = true
		}
	}
	for course := range courses {
		if input.Courses[course].Locked {
			evaluator.lockedCols[uint64(course)] = true
		}
	}

	//** Course relations
	evaluator.overlaps = make([][]bool, courses)
	evaluator.conflicting = make([][]bool, courses)
	for i := range courses {
		evaluator.overlaps[i] = make([]bool, courses)
		evaluator.conflicting[i] = make([]bool, courses)
	}
	for i := range courses {
		course1 := input.Courses[i]
		for j := i + 1; j < courses; j++ {
			course2 := input.Courses[j]

			// Two courses overlap if any pair of their slots share a day and intersect
			overlap := lo.SomeBy(course1.Slots, func(slot1 TimeSlot) bool {
				return lo.SomeBy(course2.Slots, func(slot2 TimeSlot) bool {
					return slot1.Day == slot2.Day && slot1.Start < slot2.End && slot2.Start < slot1.End
				})
			})
			evaluator.overlaps[i][j], evaluator.overlaps[j][i] = overlap, overlap

			conflict := slices.Contains(course1.Conflicts, course2.Id) || slices.Contains(course2.Conflicts, course1.Id)
			evaluator.conflicting[i][j], evaluator.conflicting[j][i] = conflict, conflict
		}
	}

	return &evaluator
}

func (evaluator *predicateEvaluatorStandard) TeacherActive(teacher uint64) bool {
	return evaluator.input.Teachers[teacher].Active
}

func (evaluator *predicateEvaluatorStandard) CourseActive(course uint64) bool {
	return evaluator.input.Courses[course].Active
}

func (evaluator *predicateEvaluatorStandard) Locked(teacher, course uint64) bool {
	return evaluator.lockedRows[teacher] ||
		evaluator.lockedCols[course] ||
		evaluator.locks[Cell{Teacher: teacher, Course: course}]
}

func (evaluator *predicateEvaluatorStandard) Priority(teacher, course uint64) uint64 {
	return evaluator.priorities[teacher][course]
}

func (evaluator *predicateEvaluatorStandard) Overlap(course1, course2 uint64) bool {
	return evaluator.overlaps[course1][course2]
}

func (evaluator *predicateEvaluatorStandard) Conflicting(course1, course2 uint64) bool {
	return evaluator.conflicting[course1][course2]
}
