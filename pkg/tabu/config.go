package tabu

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/limaJavier/assignment/pkg/constraint"
	"github.com/limaJavier/assignment/pkg/neighborhood"
	"github.com/limaJavier/assignment/pkg/objective"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const DefaultStallLimit = 3

type MemoryConfig struct {
	Mode       MemoryMode `validate:"oneof=solution movement"`
	Capacity   int        // Solution memory
	AddTenure  int        // Movement memory
	DropTenure int        // Movement memory
}

type Config struct {
	Direction    objective.Direction `validate:"oneof=maximize minimize"`
	Constraints  []constraint.Constraint
	Components   []objective.Component
	Strategies   []neighborhood.Strategy
	Memory       MemoryConfig
	Aspirations  []Aspiration
	StopCriteria []StopCriterion
	HardPenalty  float64 `validate:"gt=0"`
	StallLimit   int     `validate:"gte=1"` // Empty-admissible iterations tolerated before the best candidate is forced

	Interrupt func() bool `validate:"-"` // Polled at the top of every iteration, may be nil
	Progress  *Progress   `validate:"-"`
	Logger    *zap.Logger `validate:"-"`
}

// DefaultConfig maximizes the priority reward with every strategy, a solution memory of 10 and 100 iterations
func DefaultConfig() Config {
	return Config{
		Direction:   objective.Maximize,
		Constraints: []constraint.Constraint{},
		Components:  []objective.Component{objective.New(objective.PriorityReward)},
		Strategies: lo.Map(neighborhood.Kinds(), func(kind neighborhood.Kind, _ int) neighborhood.Strategy {
			return neighborhood.Strategy{Kind: kind, Active: true}
		}),
		Memory:       MemoryConfig{Mode: SolutionMemory, Capacity: 10, AddTenure: 3, DropTenure: 3},
		Aspirations:  []Aspiration{{Kind: BestImprovement, Active: true}},
		StopCriteria: []StopCriterion{{Kind: MaxIterations, Limit: 100, Active: true}},
		HardPenalty:  objective.DefaultHardPenalty,
		StallLimit:   DefaultStallLimit,
	}
}

var validate = validator.New()

// Validate is the pre-flight check of a run, nothing is evaluated before it passes
func (config Config) Validate() error {
	if err := validate.Struct(config); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			return configurationError(fmt.Sprintf("field %v must satisfy \"%v\"", fieldErrors[0].Namespace(), fieldErrors[0].Tag()), err)
		}
		return configurationError("configuration must be well formed", err)
	}

	//** Mandatory families
	if !lo.SomeBy(config.StopCriteria, func(criterion StopCriterion) bool { return criterion.Active }) {
		return configurationError("no active stop criterion", nil)
	} else if !lo.SomeBy(config.Components, func(component objective.Component) bool { return component.Active }) {
		return configurationError("no active objective component", nil)
	} else if !lo.SomeBy(config.Strategies, func(strategy neighborhood.Strategy) bool { return strategy.Active }) {
		return configurationError("no active neighborhood generator", nil)
	}

	//** Memory
	switch config.Memory.Mode {
	case SolutionMemory:
		if config.Memory.Capacity <= 0 {
			return configurationError("solution memory capacity must be positive", fmt.Errorf("got %v", config.Memory.Capacity))
		}
	case MovementMemory:
		if config.Memory.AddTenure <= 0 || config.Memory.DropTenure <= 0 {
			return configurationError("movement memory tenures must be positive", fmt.Errorf("got add %v and drop %v", config.Memory.AddTenure, config.Memory.DropTenure))
		}
	}

	//** Families
	for _, criterion := range config.StopCriteria {
		if err := criterion.validate(); err != nil {
			return configurationError("stop criteria must be well formed", err)
		}
	}
	for _, aspiration := range config.Aspirations {
		if _, err := ParseAspirationKind(string(aspiration.Kind)); err != nil {
			return configurationError("aspiration criteria must be well formed", err)
		} else if aspiration.Kind == SameObjectiveStreak && aspiration.Threshold <= 0 {
			return configurationError("aspiration criteria must be well formed", fmt.Errorf("same objective streak needs a positive threshold: %v", aspiration.Threshold))
		}
	}
	for _, strategy := range config.Strategies {
		if _, err := neighborhood.ParseKind(string(strategy.Kind)); err != nil {
			return configurationError("neighborhood strategies must be well formed", err)
		}
	}
	for _, component := range config.Components {
		if err := component.Validate(); err != nil {
			return configurationError("objective components must be well formed", err)
		}
	}
	for _, constraint := range config.Constraints {
		if err := constraint.Validate(); err != nil {
			return configurationError("constraints must match their capability", err)
		}
	}
	return nil
}

func (config Config) function() objective.Function {
	return objective.Function{
		Direction:   config.Direction,
		Components:  config.Components,
		Constraints: config.Constraints,
		HardPenalty: config.HardPenalty,
	}
}
