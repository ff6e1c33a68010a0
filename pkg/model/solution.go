package model

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"slices"

	"github.com/samber/lo"
)

type MoveKind uint8

const (
	Add MoveKind = iota
	Drop
)

func (kind MoveKind) String() string {
	if kind == Add {
		return "add"
	}
	return "drop"
}

// Move adds or drops exactly one (teacher, course) membership
type Move struct {
	Kind    MoveKind
	Teacher uint64
	Course  uint64
}

func (move Move) Cell() Cell {
	return Cell{Teacher: move.Teacher, Course: move.Course}
}

func (move Move) Reverse() Move {
	reversed := move
	if move.Kind == Add {
		reversed.Kind = Drop
	} else {
		reversed.Kind = Add
	}
	return reversed
}

type Solution struct {
	space *Space
	cells []bool // Membership indexed by the space's indexer
	size  int

	Score float64
}

type solutionJson struct {
	Assignment Assignment `json:"assignment"`
	Score      float64    `json:"score"`
}

func (solution *Solution) Space() *Space {
	return solution.space
}

func (solution *Solution) Assigned(teacher, course uint64) bool {
	return solution.cells[solution.space.indexer.Index(teacher, course)]
}

// Size returns the number of assigned (teacher, course) pairs
func (solution *Solution) Size() int {
	return solution.size
}

func (solution *Solution) TeachersOf(course uint64) []uint64 {
	teachers := make([]uint64, 0)
	for teacher := range solution.space.TeacherCount() {
		if solution.Assigned(teacher, course) {
			teachers = append(teachers, teacher)
		}
	}
	return teachers
}

func (solution *Solution) CoursesOf(teacher uint64) []uint64 {
	courses := make([]uint64, 0)
	for course := range solution.space.CourseCount() {
		if solution.Assigned(teacher, course) {
			courses = append(courses, course)
		}
	}
	return courses
}

// Cells returns the assigned cells in index order
func (solution *Solution) Cells() []Cell {
	cells := make([]Cell, 0, solution.size)
	for index, assigned := range solution.cells {
		if assigned {
			teacher, course := solution.space.indexer.Attributes(uint64(index))
			cells = append(cells, Cell{Teacher: teacher, Course: course})
		}
	}
	return cells
}

func (solution *Solution) Clone() *Solution {
	return &Solution{
		space: solution.space,
		cells: slices.Clone(solution.cells),
		size:  solution.size,
		Score: solution.Score,
	}
}

// Apply performs every move or none of them: all moves are checked before the first one is applied
func (solution *Solution) Apply(moves ...Move) error {
	touched := make(map[Cell]bool, len(moves))
	for _, move := range moves {
		if move.Teacher >= solution.space.TeacherCount() || move.Course >= solution.space.CourseCount() {
			return fmt.Errorf("move %v references a cell outside of the space", move)
		} else if touched[move.Cell()] {
			return fmt.Errorf("cell (%v, %v) is touched more than once", move.Teacher, move.Course)
		}
		touched[move.Cell()] = true

		assigned := solution.Assigned(move.Teacher, move.Course)
		if move.Kind == Add && assigned {
			return fmt.Errorf("cannot add teacher %v to course %v: already assigned", move.Teacher, move.Course)
		} else if move.Kind == Drop && !assigned {
			return fmt.Errorf("cannot drop teacher %v from course %v: not assigned", move.Teacher, move.Course)
		}
	}

	for _, move := range moves {
		solution.cells[solution.space.indexer.Index(move.Teacher, move.Course)] = move.Kind == Add
		if move.Kind == Add {
			solution.size++
		} else {
			solution.size--
		}
	}
	return nil
}

// Fingerprint hashes the assigned cells (FNV-1a), two equal assignments always share it
func (solution *Solution) Fingerprint() uint64 {
	hash := fnv.New64a()
	buffer := make([]byte, 8)
	for index, assigned := range solution.cells {
		if assigned {
			binary.LittleEndian.PutUint64(buffer, uint64(index))
			hash.Write(buffer)
		}
	}
	return hash.Sum64()
}

func (solution *Solution) Equal(other *Solution) bool {
	return slices.Equal(solution.cells, other.cells)
}

// Diff returns the cells whose membership differs between both solutions
func (solution *Solution) Diff(other *Solution) []Cell {
	diff := make([]Cell, 0)
	for index := range solution.cells {
		if solution.cells[index] != other.cells[index] {
			teacher, course := solution.space.indexer.Attributes(uint64(index))
			diff = append(diff, Cell{Teacher: teacher, Course: course})
		}
	}
	return diff
}

// Assignment returns the course -> teachers view, only courses with at least one teacher are present
func (solution *Solution) Assignment() Assignment {
	assignment := make(Assignment)
	for _, cell := range solution.Cells() {
		courseId := solution.space.input.Courses[cell.Course].Id
		assignment[courseId] = append(assignment[courseId], solution.space.input.Teachers[cell.Teacher].Name)
	}
	return assignment
}

func (solution *Solution) MarshalJSON() ([]byte, error) {
	return json.Marshal(solutionJson{
		Assignment: solution.Assignment(),
		Score:      solution.Score,
	})
}

// SolutionFromJson rebuilds a solution serialized by MarshalJSON. The score is kept as read, callers re-evaluate it
func (space *Space) SolutionFromJson(bytes []byte) (*Solution, error) {
	var raw solutionJson
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return nil, err
	}

	solution, err := space.NewSolution(raw.Assignment)
	if err != nil {
		return nil, err
	}
	solution.Score = raw.Score
	return solution, nil
}

// Workloads returns the accumulated workload of every teacher
func (solution *Solution) Workloads() []float64 {
	workloads := make([]float64, solution.space.TeacherCount())
	lo.ForEach(solution.Cells(), func(cell Cell, _ int) {
		workloads[cell.Teacher] += solution.space.input.Courses[cell.Course].Workload
	})
	return workloads
}
