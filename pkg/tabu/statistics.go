package tabu

import (
	"github.com/limaJavier/assignment/pkg/constraint"
	"github.com/limaJavier/assignment/pkg/model"
)

type Sample struct {
	Iteration int     `json:"iteration"`
	Value     float64 `json:"value"`
}

type Statistics struct {
	Iterations            int                                `json:"iterations"`
	TimePerIteration      []Sample                           `json:"timePerIteration"`  // Milliseconds
	ScorePerIteration     []Sample                           `json:"scorePerIteration"` // Score of the current solution
	Interrupted           bool                               `json:"interrupted"`
	ConstraintOccurrences map[string][]constraint.Occurrence `json:"constraintOccurrences"` // Measured on the best solution
	PriorityHistogram     map[uint64]int                     `json:"priorityHistogram"`     // Assigned pairs per priority of the best solution, 0 means no preference
	BestFeasible          bool                               `json:"bestFeasible"`
}

func newStatistics() Statistics {
	return Statistics{
		TimePerIteration:      make([]Sample, 0),
		ScorePerIteration:     make([]Sample, 0),
		ConstraintOccurrences: make(map[string][]constraint.Occurrence),
		PriorityHistogram:     make(map[uint64]int),
	}
}

func (statistics *Statistics) summarize(best *model.Solution, constraints []constraint.Constraint, feasible bool) {
	for _, constraint := range constraints {
		if constraint.Active {
			statistics.ConstraintOccurrences[constraint.Name()] = constraint.Occurrences(best)
		}
	}

	space := best.Space()
	for _, cell := range best.Cells() {
		statistics.PriorityHistogram[space.Priority(cell.Teacher, cell.Course)]++
	}
	statistics.BestFeasible = feasible
}
