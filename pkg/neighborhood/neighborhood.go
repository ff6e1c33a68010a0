package neighborhood

import (
	"fmt"
	"iter"
	"slices"

	"github.com/limaJavier/assignment/pkg/model"
)

type Kind string

const (
	SingleAdd  Kind = "single_add"
	SingleDrop Kind = "single_drop"
	Swap       Kind = "swap"     // Replace one teacher of a course by another
	Reassign   Kind = "reassign" // Move one teacher from a course to another
)

var kinds = []Kind{SingleAdd, SingleDrop, Swap, Reassign}

func Kinds() []Kind {
	return slices.Clone(kinds)
}

func ParseKind(name string) (Kind, error) {
	if !slices.Contains(kinds, Kind(name)) {
		return "", fmt.Errorf("unknown neighborhood strategy \"%v\"", name)
	}
	return Kind(name), nil
}

type Strategy struct {
	Kind   Kind
	Active bool
}

// Candidate is a neighbor of the current solution, described by the moves that reach it
type Candidate struct {
	Strategy Kind
	Moves    []model.Move
}

// Generate yields the candidates of every active strategy, in the order the strategies are given.
// Only movable cells are ever touched, so locks and inactive entities are respected
func Generate(solution *model.Solution, strategies []Strategy) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		space := solution.Space()
		cells := space.MovableCells()

		for _, strategy := range strategies {
			if !strategy.Active {
				continue
			}

			var candidates iter.Seq[Candidate]
			switch strategy.Kind {
			case SingleAdd:
				candidates = single(solution, cells, model.Add)
			case SingleDrop:
				candidates = single(solution, cells, model.Drop)
			case Swap:
				candidates = swaps(solution)
			case Reassign:
				candidates = reassignments(solution)
			default:
				panic(fmt.Sprintf("unknown neighborhood strategy \"%v\"", strategy.Kind))
			}

			for candidate := range candidates {
				if !yield(candidate) {
					return
				}
			}
		}
	}
}

func single(solution *model.Solution, cells []model.Cell, kind model.MoveKind) iter.Seq[Candidate] {
	strategy := SingleAdd
	if kind == model.Drop {
		strategy = SingleDrop
	}

	return func(yield func(Candidate) bool) {
		for _, cell := range cells {
			// Adds need a free cell and drops an assigned one
			if solution.Assigned(cell.Teacher, cell.Course) != (kind == model.Drop) {
				continue
			}
			candidate := Candidate{
				Strategy: strategy,
				Moves:    []model.Move{{Kind: kind, Teacher: cell.Teacher, Course: cell.Course}},
			}
			if !yield(candidate) {
				return
			}
		}
	}
}

func swaps(solution *model.Solution) iter.Seq[Candidate] {
	space := solution.Space()
	return func(yield func(Candidate) bool) {
		for course := range space.CourseCount() {
			for teacher1 := range space.TeacherCount() {
				if !space.Movable(teacher1, course) || !solution.Assigned(teacher1, course) {
					continue
				}
				for teacher2 := range space.TeacherCount() {
					if !space.Movable(teacher2, course) || solution.Assigned(teacher2, course) {
						continue
					}
					candidate := Candidate{
						Strategy: Swap,
						Moves: []model.Move{
							{Kind: model.Drop, Teacher: teacher1, Course: course},
							{Kind: model.Add, Teacher: teacher2, Course: course},
						},
					}
					if !yield(candidate) {
						return
					}
				}
			}
		}
	}
}

func reassignments(solution *model.Solution) iter.Seq[Candidate] {
	space := solution.Space()
	return func(yield func(Candidate) bool) {
		for teacher := range space.TeacherCount() {
			for course1 := range space.CourseCount() {
				if !space.Movable(teacher, course1) || !solution.Assigned(teacher, course1) {
					continue
				}
				for course2 := range space.CourseCount() {
					if !space.Movable(teacher, course2) || solution.Assigned(teacher, course2) {
						continue
					}
					candidate := Candidate{
						Strategy: Reassign,
						Moves: []model.Move{
							{Kind: model.Drop, Teacher: teacher, Course: course1},
							{Kind: model.Add, Teacher: teacher, Course: course2},
						},
					}
					if !yield(candidate) {
						return
					}
				}
			}
		}
	}
}
