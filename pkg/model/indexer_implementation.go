package model

// Cells are laid out course-major so that every teacher of a course is contiguous
type indexerImplementation struct {
	teachers uint64
	courses  uint64
}

func (indexer *indexerImplementation) Index(teacher, course uint64) uint64 {
	return teacher + indexer.teachers*course
}

func (indexer *indexerImplementation) Attributes(index uint64) (teacher, course uint64) {
	teacher = index % indexer.teachers
	course = index / indexer.teachers
	return teacher, course
}

func (indexer *indexerImplementation) Size() uint64 {
	return indexer.teachers * indexer.courses
}
