package tabu

import (
	"fmt"
	"math"

	"github.com/limaJavier/assignment/pkg/model"
	"github.com/limaJavier/assignment/pkg/objective"
)

type evaluator struct {
	function func(solution *model.Solution) objective.Evaluation
}

// evaluate turns panics and non-finite scores of the objective function into evaluation errors
func (evaluator evaluator) evaluate(solution *model.Solution) (evaluation objective.Evaluation, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = evaluationError("objective function must not panic", fmt.Errorf("%v", recovered))
		}
	}()

	evaluation = evaluator.function(solution)
	if math.IsNaN(evaluation.Score) || math.IsInf(evaluation.Score, 0) {
		return evaluation, evaluationError("score must be finite", fmt.Errorf("got %v", evaluation.Score))
	}
	return evaluation, nil
}
