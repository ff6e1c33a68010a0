package tabu

import (
	"fmt"
	"slices"

	"github.com/limaJavier/assignment/pkg/model"
	"github.com/limaJavier/assignment/pkg/neighborhood"
)

type MemoryMode string

const (
	SolutionMemory MemoryMode = "solution"
	MovementMemory MemoryMode = "movement"
)

func ParseMemoryMode(name string) (MemoryMode, error) {
	switch MemoryMode(name) {
	case SolutionMemory, MovementMemory:
		return MemoryMode(name), nil
	}
	return "", fmt.Errorf("unknown memory mode \"%v\"", name)
}

// Memory forbids candidates that would make the search cycle. A memory belongs to exactly one run
type Memory interface {
	// IsTabu reports whether the candidate, whose resulting solution has the given fingerprint, is forbidden
	IsTabu(candidate neighborhood.Candidate, fingerprint uint64) bool
	// Record remembers an accepted candidate
	Record(candidate neighborhood.Candidate, fingerprint uint64)
	// Decay advances the memory by one iteration
	Decay()
	Reset()
}

func newMemory(config MemoryConfig) Memory {
	if config.Mode == MovementMemory {
		return NewMovementMemory(config.AddTenure, config.DropTenure)
	}
	return NewSolutionMemory(config.Capacity)
}

//** Solution based memory

type solutionMemory struct {
	capacity int
	queue    []uint64 // Oldest first
	members  map[uint64]bool
}

// NewSolutionMemory remembers the fingerprints of up to capacity visited solutions
func NewSolutionMemory(capacity int) Memory {
	return &solutionMemory{
		capacity: capacity,
		queue:    make([]uint64, 0, capacity),
		members:  make(map[uint64]bool, capacity),
	}
}

func (memory *solutionMemory) IsTabu(_ neighborhood.Candidate, fingerprint uint64) bool {
	return memory.members[fingerprint]
}

func (memory *solutionMemory) Record(_ neighborhood.Candidate, fingerprint uint64) {
	if memory.members[fingerprint] {
		// Move it to the back
		memory.queue = slices.DeleteFunc(memory.queue, func(member uint64) bool { return member == fingerprint })
	}
	memory.queue = append(memory.queue, fingerprint)
	memory.members[fingerprint] = true

	for len(memory.queue) > memory.capacity {
		delete(memory.members, memory.queue[0])
		memory.queue = memory.queue[1:]
	}
}

// Solutions don't expire with time, only through eviction
func (memory *solutionMemory) Decay() {}

func (memory *solutionMemory) Reset() {
	memory.queue = make([]uint64, 0, memory.capacity)
	memory.members = make(map[uint64]bool, memory.capacity)
}

//** Movement based memory

type movementMemory struct {
	tenures  map[model.MoveKind]int
	counters map[model.MoveKind]map[model.Cell]int // Remaining tabu iterations per recorded move
}

// NewMovementMemory forbids undoing an accepted add for addTenure iterations and an accepted drop for dropTenure iterations
func NewMovementMemory(addTenure, dropTenure int) Memory {
	memory := &movementMemory{
		tenures: map[model.MoveKind]int{
			model.Add:  addTenure,
			model.Drop: dropTenure,
		},
	}
	memory.Reset()
	return memory
}

func (memory *movementMemory) IsTabu(candidate neighborhood.Candidate, _ uint64) bool {
	for _, move := range candidate.Moves {
		// A move is tabu when it reverses a recent one
		reversed := move.Reverse()
		if memory.counters[reversed.Kind][reversed.Cell()] > 0 {
			return true
		}
	}
	return false
}

func (memory *movementMemory) Record(candidate neighborhood.Candidate, _ uint64) {
	for _, move := range candidate.Moves {
		memory.counters[move.Kind][move.Cell()] = memory.tenures[move.Kind]
	}
}

func (memory *movementMemory) Decay() {
	for _, counters := range memory.counters {
		for cell, remaining := range counters {
			if remaining <= 1 {
				delete(counters, cell)
			} else {
				counters[cell] = remaining - 1
			}
		}
	}
}

func (memory *movementMemory) Reset() {
	memory.counters = map[model.MoveKind]map[model.Cell]int{
		model.Add:  make(map[model.Cell]int),
		model.Drop: make(map[model.Cell]int),
	}
}

func (memory *movementMemory) remaining(kind model.MoveKind, cell model.Cell) int {
	return memory.counters[kind][cell]
}
