package tabu

import (
	"fmt"
	"time"
)

type StopKind string

const (
	MaxIterations       StopKind = "max_iterations"
	NoChangeStreak      StopKind = "no_change_streak"
	NoImprovementStreak StopKind = "no_improvement_streak"
	TimeLimit           StopKind = "time_limit"
)

func ParseStopKind(name string) (StopKind, error) {
	switch StopKind(name) {
	case MaxIterations, NoChangeStreak, NoImprovementStreak, TimeLimit:
		return StopKind(name), nil
	}
	return "", fmt.Errorf("unknown stop criterion \"%v\"", name)
}

type StopCriterion struct {
	Kind     StopKind
	Limit    int           // Iterations, unused by the time limit
	Duration time.Duration // Only used by the time limit
	Active   bool
}

// IterationState is what stop criteria look at once an iteration is over
type IterationState struct {
	Iteration           int
	NoChangeStreak      int // Consecutive iterations without a net assignment change
	NoImprovementStreak int // Consecutive iterations without improving the best score
	Elapsed             time.Duration
}

func (criterion StopCriterion) ShouldStop(state IterationState) bool {
	switch criterion.Kind {
	case MaxIterations:
		return state.Iteration >= criterion.Limit
	case NoChangeStreak:
		return state.NoChangeStreak >= criterion.Limit
	case NoImprovementStreak:
		return state.NoImprovementStreak >= criterion.Limit
	case TimeLimit:
		return state.Elapsed >= criterion.Duration
	}
	return false
}

func (criterion StopCriterion) validate() error {
	switch criterion.Kind {
	case MaxIterations, NoChangeStreak, NoImprovementStreak:
		if criterion.Limit <= 0 {
			return fmt.Errorf("stop criterion \"%v\" needs a positive limit: %v", criterion.Kind, criterion.Limit)
		}
	case TimeLimit:
		if criterion.Duration <= 0 {
			return fmt.Errorf("stop criterion \"%v\" needs a positive duration: %v", criterion.Kind, criterion.Duration)
		}
	default:
		return fmt.Errorf("unknown stop criterion \"%v\"", criterion.Kind)
	}
	return nil
}

// The first active criterion that holds, in the configured order
func shouldStop(criteria []StopCriterion, state IterationState) (StopKind, bool) {
	for _, criterion := range criteria {
		if criterion.Active && criterion.ShouldStop(state) {
			return criterion.Kind, true
		}
	}
	return "", false
}
