package constraint

import (
	"github.com/limaJavier/assignment/pkg/model"
	"github.com/samber/lo"
)

// Overloaded teachers are penalized, those in deficit at a discount
func workloadViolations(solution *model.Solution, weight float64, params WorkloadParams) []violation {
	space := solution.Space()
	violations := make([]violation, 0)
	for teacher, workload := range solution.Workloads() {
		if !space.TeacherActive(uint64(teacher)) || workload <= params.Threshold {
			continue
		}

		factor := 1.0
		if space.Teacher(uint64(teacher)).Balance < params.DeficitBalance {
			factor = params.DeficitDiscount
		}
		violations = append(violations, violation{
			label:   space.Teacher(uint64(teacher)).Name,
			count:   1,
			penalty: weight * factor,
		})
	}
	return violations
}

// One violation per pair of courses of the same teacher satisfying the relation
func pairViolations(solution *model.Solution, weight float64, related func(course1, course2 uint64) bool) []violation {
	space := solution.Space()
	violations := make([]violation, 0)
	for teacher := range space.TeacherCount() {
		courses := solution.CoursesOf(teacher)

		pairs := 0
		for i := range courses {
			for j := i + 1; j < len(courses); j++ {
				if related(courses[i], courses[j]) {
					pairs++
				}
			}
		}

		if pairs > 0 {
			violations = append(violations, violation{
				label:   space.Teacher(teacher).Name,
				count:   pairs,
				penalty: weight * float64(pairs),
			})
		}
	}
	return violations
}

func cardinalityViolations(solution *model.Solution, weight float64) []violation {
	space := solution.Space()
	violations := make([]violation, 0)
	for course := range space.CourseCount() {
		if !space.CourseActive(course) {
			continue
		}

		assigned, required := len(solution.TeachersOf(course)), int(space.Course(course).Cardinality)
		if difference := max(assigned-required, required-assigned); difference > 0 {
			violations = append(violations, violation{
				label:   space.Course(course).Id,
				count:   difference,
				penalty: weight * float64(difference),
			})
		}
	}
	return violations
}

func unpreferredViolations(solution *model.Solution, weight float64) []violation {
	space := solution.Space()
	unpreferred := lo.Filter(solution.Cells(), func(cell model.Cell, _ int) bool {
		return space.Priority(cell.Teacher, cell.Course) == 0
	})

	return lo.Map(unpreferred, func(cell model.Cell, _ int) violation {
		return violation{
			label:   space.Teacher(cell.Teacher).Name,
			count:   1,
			penalty: weight,
		}
	})
}

// Compact teachers pay for every teaching day beyond the first, spread teachers for every extra course on a used day
func groupingViolations(solution *model.Solution, weight float64) []violation {
	space := solution.Space()
	violations := make([]violation, 0)
	for teacher := range space.TeacherCount() {
		grouping := space.Teacher(teacher).Grouping
		if grouping == model.GroupingNone {
			continue
		}

		coursesPerDay := make(map[uint64]int)
		for _, course := range solution.CoursesOf(teacher) {
			days := lo.Uniq(lo.Map(space.Course(course).Slots, func(slot model.TimeSlot, _ int) uint64 { return slot.Day }))
			for _, day := range days {
				coursesPerDay[day]++
			}
		}

		extra := 0
		switch grouping {
		case model.GroupingCompact:
			extra = max(len(coursesPerDay)-1, 0)
		case model.GroupingSpread:
			for _, courses := range coursesPerDay {
				extra += courses - 1
			}
		}

		if extra > 0 {
			violations = append(violations, violation{
				label:   space.Teacher(teacher).Name,
				count:   extra,
				penalty: weight * float64(extra),
			})
		}
	}
	return violations
}
