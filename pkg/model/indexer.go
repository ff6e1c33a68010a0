package model

// indexer interface is design to give a unique index to a (teacher, course) cell and vice versa
type indexer interface {
	// Returns a unique index to a (teacher, course) cell
	Index(teacher, course uint64) uint64
	// Returns the (teacher, course) cell from a unique index
	Attributes(index uint64) (teacher uint64, course uint64)
	// Returns the number of indexable cells
	Size() uint64
}

func newIndexer(teachers, courses uint64) indexer {
	return &indexerImplementation{
		teachers: teachers,
		courses:  courses,
	}
}
