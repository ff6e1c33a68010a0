package tabu

import (
	"fmt"

	"github.com/limaJavier/assignment/pkg/objective"
)

type AspirationKind string

const (
	BestImprovement     AspirationKind = "best_improvement"      // Admits tabu candidates strictly better than the best known
	SameObjectiveStreak AspirationKind = "same_objective_streak" // Admits tabu candidates matching the best after it stalled for Threshold iterations
)

func ParseAspirationKind(name string) (AspirationKind, error) {
	switch AspirationKind(name) {
	case BestImprovement, SameObjectiveStreak:
		return AspirationKind(name), nil
	}
	return "", fmt.Errorf("unknown aspiration criterion \"%v\"", name)
}

// Aspiration carries per-run state. A run works on its own copy, Reset seeds it with the run's initial best
type Aspiration struct {
	Kind      AspirationKind
	Threshold int
	Active    bool

	streak   int
	lastBest float64
	observed bool
}

// Accepts reports whether a tabu candidate with the given score becomes admissible
func (aspiration *Aspiration) Accepts(score, best float64, direction objective.Direction) bool {
	switch aspiration.Kind {
	case BestImprovement:
		return direction.Better(score, best)
	case SameObjectiveStreak:
		return aspiration.streak >= aspiration.Threshold && !direction.Better(best, score)
	}
	return false
}

// Observe records the best-known score at the end of an iteration
func (aspiration *Aspiration) Observe(best float64) {
	if aspiration.observed && best == aspiration.lastBest {
		aspiration.streak++
	} else {
		aspiration.streak = 0
	}
	aspiration.lastBest = best
	aspiration.observed = true
}

func (aspiration *Aspiration) Reset(initialBest float64) {
	aspiration.streak = 0
	aspiration.lastBest = initialBest
	aspiration.observed = true
}

func (aspiration *Aspiration) Streak() int {
	return aspiration.streak
}

func aspirated(aspirations []Aspiration, score, best float64, direction objective.Direction) bool {
	for i := range aspirations {
		if aspirations[i].Active && aspirations[i].Accepts(score, best, direction) {
			return true
		}
	}
	return false
}
