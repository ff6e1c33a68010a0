package model

type predicateEvaluator interface {
	// Checks whether the teacher takes part in the search
	TeacherActive(teacher uint64) bool

	// Checks whether the course takes part in the search
	CourseActive(course uint64) bool

	// Checks whether the cell is pinned by a cell, row or column lock, or belongs to a locked course
	Locked(teacher, course uint64) bool

	// Returns the teacher's declared priority for the course, where 0 stands for no preference
	Priority(teacher, course uint64) uint64

	// Checks whether course1 and course2 share at least one period on the same day
	Overlap(course1, course2 uint64) bool

	// Checks whether course1 and course2 are declared in conflict (in either direction)
	Conflicting(course1, course2 uint64) bool
}
