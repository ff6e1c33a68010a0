package model

import (
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// MatchingAssignment seeds an assignment where every movable course gets at most one distinct teacher that declared a priority for it.
// Pinned cells keep the membership they have in the input's assignment
func MatchingAssignment(space *Space) (Assignment, error) {
	initial, err := space.NewSolution(space.input.Assignment)
	if err != nil {
		return nil, err
	}

	//** Keep pinned memberships
	seed, _ := space.NewSolution(Assignment{})
	for _, cell := range initial.Cells() {
		if !space.Movable(cell.Teacher, cell.Course) {
			seed.cells[space.Index(cell)] = true
			seed.size++
		}
	}

	//** Build graph between courses and teachers
	preferred := space.Cells(func(teacher, course uint64) bool {
		return teacher == MaxIndex || course == MaxIndex || (space.Movable(teacher, course) && space.Priority(teacher, course) > 0)
	})
	if len(preferred) == 0 {
		return seed.Assignment(), nil
	}

	courses := lo.Uniq(lo.Map(preferred, func(cell Cell, _ int) uint64 { return cell.Course }))
	teachers := lo.Uniq(lo.Map(preferred, func(cell Cell, _ int) uint64 { return cell.Teacher }))
	relationships := lo.SliceToMap(preferred, func(cell Cell) (Cell, bool) { return cell, true })

	neighbors := func(courseAny any, teacherAny any) (bool, error) {
		course := courseAny.(uint64)
		teacher := teacherAny.(uint64)

		return relationships[Cell{Teacher: teacher, Course: course}], nil
	}

	// Transform courses and teachers to slices of any
	coursesAny, teachersAny := lo.Map(courses, func(course uint64, _ int) any { return course }), lo.Map(teachers, func(teacher uint64, _ int) any { return teacher })

	graph, err := bipartitegraph.NewBipartiteGraph(coursesAny, teachersAny, neighbors)
	if err != nil {
		return nil, err
	}

	for _, edge := range graph.LargestMatching() {
		courseIndex, teacherIndex := edge.Node1, edge.Node2-len(courses)
		course, teacher := courses[courseIndex], teachers[teacherIndex]

		seed.cells[space.indexer.Index(teacher, course)] = true
		seed.size++
	}

	return seed.Assignment(), nil
}
