package model

import (
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"
)

// MaxIndex marks an attribute that is not set yet while cells are being enumerated
const MaxIndex uint64 = math.MaxUint64

type Cell struct {
	Teacher uint64
	Course  uint64
}

// Space is the indexed, read-only view of a model input that a search runs over
type Space struct {
	input       ModelInput
	teacherIds  map[string]uint64
	courseIds   map[string]uint64
	maxPriority uint64

	indexer   indexer
	evaluator predicateEvaluator
	generator permutationGenerator
	movable   []bool // Indexed by cell
	cells     []Cell // Movable cells, teacher-major
}

func NewSpace(input ModelInput) (*Space, error) {
	if len(input.Teachers) == 0 {
		return nil, fmt.Errorf("at least one teacher is required")
	} else if len(input.Courses) == 0 {
		return nil, fmt.Errorf("at least one course is required")
	}

	//** Identities
	teacherIds := make(map[string]uint64, len(input.Teachers))
	for i, teacher := range input.Teachers {
		if teacher.Name == "" {
			return nil, fmt.Errorf("teacher %d has an empty name", i)
		} else if _, ok := teacherIds[teacher.Name]; ok {
			return nil, fmt.Errorf("duplicate teacher \"%v\"", teacher.Name)
		}
		teacherIds[teacher.Name] = uint64(i)
	}

	courseIds := make(map[string]uint64, len(input.Courses))
	for i, course := range input.Courses {
		if course.Id == "" {
			return nil, fmt.Errorf("course %d has an empty id", i)
		} else if _, ok := courseIds[course.Id]; ok {
			return nil, fmt.Errorf("duplicate course \"%v\"", course.Id)
		}
		courseIds[course.Id] = uint64(i)
	}

	//** References
	if err := validateCourses(input.Courses, courseIds); err != nil {
		return nil, err
	}
	maxPriority, err := validatePriorities(input, courseIds)
	if err != nil {
		return nil, err
	}
	if err := validateLocks(input.Locks, teacherIds, courseIds); err != nil {
		return nil, err
	}

	teachers, courses := uint64(len(input.Teachers)), uint64(len(input.Courses))
	space := &Space{
		input:       input,
		teacherIds:  teacherIds,
		courseIds:   courseIds,
		maxPriority: maxPriority,
		indexer:     newIndexer(teachers, courses),
		evaluator:   newPredicateEvaluator(input, teacherIds, courseIds),
		generator:   newPermutationGenerator(teachers, courses),
	}

	space.movable = make([]bool, space.indexer.Size())
	space.cells = space.Cells(space.movableConstraints()...)
	for _, cell := range space.cells {
		space.movable[space.Index(cell)] = true
	}

	return space, nil
}

func validateCourses(courses []Course, courseIds map[string]uint64) error {
	for _, course := range courses {
		if course.Workload < 0 {
			return fmt.Errorf("course \"%v\" has a negative workload: %v", course.Id, course.Workload)
		}
		for _, slot := range course.Slots {
			if slot.End <= slot.Start {
				return fmt.Errorf("course \"%v\" has an empty time slot: day %v, periods [%v, %v)", course.Id, slot.Day, slot.Start, slot.End)
			}
		}
		for _, conflict := range course.Conflicts {
			if _, ok := courseIds[conflict]; !ok {
				return fmt.Errorf("course \"%v\" conflicts with unknown course \"%v\"", course.Id, conflict)
			}
		}
	}
	return nil
}

func validatePriorities(input ModelInput, courseIds map[string]uint64) (uint64, error) {
	declared := uint64(0)
	for _, teacher := range input.Teachers {
		for courseId, priority := range teacher.Priorities {
			if _, ok := courseIds[courseId]; !ok {
				return 0, fmt.Errorf("teacher \"%v\" declares a priority for unknown course \"%v\"", teacher.Name, courseId)
			} else if priority == 0 {
				return 0, fmt.Errorf("teacher \"%v\" declares priority 0 for course \"%v\", priorities start at 1", teacher.Name, courseId)
			}
			declared = max(declared, priority)
		}
	}

	if input.MaxPriority == 0 {
		return max(declared, 1), nil
	} else if declared > input.MaxPriority {
		return 0, fmt.Errorf("declared priority %v exceeds the maximum priority %v", declared, input.MaxPriority)
	}
	return input.MaxPriority, nil
}

func validateLocks(locks []Lock, teacherIds, courseIds map[string]uint64) error {
	for i, lock := range locks {
		_, teacherOk := teacherIds[lock.Teacher]
		_, courseOk := courseIds[lock.Course]

		switch lock.Scope {
		case ScopeCell:
			if !teacherOk || !courseOk {
				return fmt.Errorf("lock %d references a nonexistent cell (%v, %v)", i, lock.Teacher, lock.Course)
			}
		case ScopeRow:
			if !teacherOk || lock.Course != "" {
				return fmt.Errorf("row lock %d must reference exactly one existing teacher: %v", i, lock.Teacher)
			}
		case ScopeColumn:
			if !courseOk || lock.Teacher != "" {
				return fmt.Errorf("column lock %d must reference exactly one existing course: %v", i, lock.Course)
			}
		default:
			return fmt.Errorf("lock %d has an unknown scope \"%v\"", i, lock.Scope)
		}
	}
	return nil
}

// A cell is movable when both of its entities are active and no lock pins it
func (space *Space) movableConstraints() []func(teacher, course uint64) bool {
	return []func(teacher, course uint64) bool{
		func(teacher, course uint64) bool {
			return teacher == MaxIndex || space.evaluator.TeacherActive(teacher)
		},
		func(teacher, course uint64) bool {
			return course == MaxIndex || space.evaluator.CourseActive(course)
		},
		func(teacher, course uint64) bool {
			return teacher == MaxIndex ||
				course == MaxIndex ||

				// Actual predicate
				!space.evaluator.Locked(teacher, course)
		},
	}
}

// Cells enumerates, teacher-major, every cell satisfying the constraints. Constraints receive MaxIndex for attributes that are not set yet
func (space *Space) Cells(constraints ...func(teacher, course uint64) bool) []Cell {
	permutations := space.generator.ConstrainedPermutations(lo.Map(constraints, func(constraint func(teacher, course uint64) bool, _ int) func(permutation []uint64) bool {
		return func(permutation []uint64) bool {
			return constraint(permutation[0], permutation[1])
		}
	}))

	return lo.Map(permutations, func(permutation []uint64, _ int) Cell {
		return Cell{Teacher: permutation[0], Course: permutation[1]}
	})
}

// MovableCells returns the movable cells computed once by NewSpace. The slice is shared and must not be modified
func (space *Space) MovableCells() []Cell {
	return space.cells
}

func (space *Space) Index(cell Cell) uint64 {
	return space.indexer.Index(cell.Teacher, cell.Course)
}

func (space *Space) Movable(teacher, course uint64) bool {
	return space.movable[space.indexer.Index(teacher, course)]
}

func (space *Space) Teachers() []Teacher {
	return space.input.Teachers
}

func (space *Space) Courses() []Course {
	return space.input.Courses
}

func (space *Space) Teacher(teacher uint64) Teacher {
	return space.input.Teachers[teacher]
}

func (space *Space) Course(course uint64) Course {
	return space.input.Courses[course]
}

func (space *Space) TeacherCount() uint64 {
	return uint64(len(space.input.Teachers))
}

func (space *Space) CourseCount() uint64 {
	return uint64(len(space.input.Courses))
}

func (space *Space) TeacherIndex(name string) (uint64, bool) {
	index, ok := space.teacherIds[name]
	return index, ok
}

func (space *Space) CourseIndex(id string) (uint64, bool) {
	index, ok := space.courseIds[id]
	return index, ok
}

func (space *Space) MaxPriority() uint64 {
	return space.maxPriority
}

func (space *Space) Priority(teacher, course uint64) uint64 {
	return space.evaluator.Priority(teacher, course)
}

func (space *Space) Overlap(course1, course2 uint64) bool {
	return space.evaluator.Overlap(course1, course2)
}

func (space *Space) Conflicting(course1, course2 uint64) bool {
	return space.evaluator.Conflicting(course1, course2)
}

func (space *Space) TeacherActive(teacher uint64) bool {
	return space.evaluator.TeacherActive(teacher)
}

func (space *Space) CourseActive(course uint64) bool {
	return space.evaluator.CourseActive(course)
}

// NewSolution builds the solution described by the assignment. Every referenced teacher and course must exist
func (space *Space) NewSolution(assignment Assignment) (*Solution, error) {
	solution := &Solution{
		space: space,
		cells: make([]bool, space.indexer.Size()),
	}

	// Iterate in a stable order so that error messages are reproducible
	courseIds := lo.Keys(assignment)
	slices.Sort(courseIds)

	for _, courseId := range courseIds {
		course, ok := space.courseIds[courseId]
		if !ok {
			return nil, fmt.Errorf("assignment references unknown course \"%v\"", courseId)
		}

		if duplicates := lo.FindDuplicates(assignment[courseId]); len(duplicates) > 0 {
			return nil, fmt.Errorf("course \"%v\" is assigned teachers more than once: %v", courseId, duplicates)
		}

		for _, name := range assignment[courseId] {
			teacher, ok := space.teacherIds[name]
			if !ok {
				return nil, fmt.Errorf("assignment of course \"%v\" references unknown teacher \"%v\"", courseId, name)
			}
			solution.cells[space.indexer.Index(teacher, course)] = true
			solution.size++
		}
	}

	return solution, nil
}

// Verify checks that a solution reached from initial kept every non-movable cell untouched
func (space *Space) Verify(initial, solution *Solution) bool {
	for index := range space.indexer.Size() {
		if !space.movable[index] && initial.cells[index] != solution.cells[index] {
			return false
		}
	}
	return true
}
