package objective

import (
	"github.com/limaJavier/assignment/pkg/constraint"
	"github.com/limaJavier/assignment/pkg/model"
)

const DefaultHardPenalty = 1000.0

// Function combines the objective components with the constraint penalties into a single score
type Function struct {
	Direction   Direction
	Components  []Component
	Constraints []constraint.Constraint
	HardPenalty float64 // Factor applied to the penalty of hard constraints
}

type Evaluation struct {
	Score     float64
	Objective float64 // Signed sum of the active components
	Penalty   float64 // Sum of the active constraint penalties, hard ones already scaled
	Feasible  bool    // No hard constraint is violated
}

func (function Function) Evaluate(solution *model.Solution) Evaluation {
	evaluation := Evaluation{Feasible: true}

	for _, component := range function.Components {
		if !component.Active {
			continue
		}
		sign := 1.0
		if component.Direction != function.Direction {
			sign = -1.0
		}
		evaluation.Objective += sign * component.Multiplier * component.Value(solution)
	}

	for _, constraint := range function.Constraints {
		if !constraint.Active {
			continue
		}
		result := constraint.Evaluate(solution)
		if constraint.Hard {
			evaluation.Penalty += function.HardPenalty * result.Penalty
			evaluation.Feasible = evaluation.Feasible && result.Violations == 0
		} else {
			evaluation.Penalty += result.Penalty
		}
	}

	if function.Direction == Minimize {
		evaluation.Score = evaluation.Objective + evaluation.Penalty
	} else {
		evaluation.Score = evaluation.Objective - evaluation.Penalty
	}
	return evaluation
}
