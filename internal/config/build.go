package config

import (
	"fmt"
	"strings"

	"github.com/limaJavier/assignment/pkg/constraint"
	"github.com/limaJavier/assignment/pkg/neighborhood"
	"github.com/limaJavier/assignment/pkg/objective"
	"github.com/limaJavier/assignment/pkg/tabu"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Build turns the loaded search section into an engine configuration. The result still goes through the engine's pre-flight
func (cfg *Config) Build(logger *zap.Logger) (tabu.Config, error) {
	search := cfg.Search
	config := tabu.Config{
		Direction:   objective.Direction(search.Direction),
		HardPenalty: search.HardPenalty,
		StallLimit:  search.StallLimit,
		Memory: tabu.MemoryConfig{
			Mode:       tabu.MemoryMode(search.Memory.Mode),
			Capacity:   search.Memory.Capacity,
			AddTenure:  search.Memory.AddTenure,
			DropTenure: search.Memory.DropTenure,
		},
		Logger: logger,
	}

	//** Constraints
	for _, constraintConfig := range search.Constraints {
		kind, err := constraint.ParseKind(constraintConfig.Kind)
		if err != nil {
			return tabu.Config{}, err
		}

		built := constraint.New(kind, constraintConfig.Hard, constraintConfig.Weight)
		built.Active = active(constraintConfig.Active)
		if err := applyParameters(&built, constraintConfig.Parameters); err != nil {
			return tabu.Config{}, err
		}
		config.Constraints = append(config.Constraints, built)
	}

	//** Objective
	for _, componentConfig := range search.Objective {
		kind, err := objective.ParseKind(componentConfig.Kind)
		if err != nil {
			return tabu.Config{}, err
		}

		component := objective.New(kind)
		component.Active = active(componentConfig.Active)
		component.Table = componentConfig.Table
		if componentConfig.Direction != "" {
			component.Direction = objective.Direction(componentConfig.Direction)
		}
		if componentConfig.Multiplier != nil {
			component.Multiplier = *componentConfig.Multiplier
		}
		config.Components = append(config.Components, component)
	}

	//** Neighborhood
	for _, name := range search.Strategies {
		kind, err := neighborhood.ParseKind(name)
		if err != nil {
			return tabu.Config{}, err
		}
		config.Strategies = append(config.Strategies, neighborhood.Strategy{Kind: kind, Active: true})
	}

	//** Criteria
	for _, aspirationConfig := range search.Aspirations {
		kind, err := tabu.ParseAspirationKind(aspirationConfig.Kind)
		if err != nil {
			return tabu.Config{}, err
		}
		config.Aspirations = append(config.Aspirations, tabu.Aspiration{
			Kind:      kind,
			Threshold: aspirationConfig.Threshold,
			Active:    active(aspirationConfig.Active),
		})
	}

	for _, stopConfig := range search.Stop {
		kind, err := tabu.ParseStopKind(stopConfig.Kind)
		if err != nil {
			return tabu.Config{}, err
		}
		config.StopCriteria = append(config.StopCriteria, tabu.StopCriterion{
			Kind:     kind,
			Limit:    stopConfig.Limit,
			Duration: stopConfig.Duration,
			Active:   active(stopConfig.Active),
		})
	}

	return config, nil
}

// Fields converts the progress fields, nil when none were requested
func (cfg *Config) Fields() ([]tabu.Field, error) {
	fields := make([]tabu.Field, 0, len(cfg.Search.Progress.Fields))
	for _, name := range cfg.Search.Progress.Fields {
		field, err := tabu.ParseField(name)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return fields, nil
}

func applyParameters(built *constraint.Constraint, values map[string]float64) error {
	// viper lowercases keys
	parameters := lo.SliceToMap(built.Parameters(), func(parameter constraint.Parameter) (string, constraint.Parameter) {
		return strings.ToLower(parameter.Name), parameter
	})

	for name, value := range values {
		parameter, ok := parameters[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("constraint \"%v\" has no parameter \"%v\"", built.Kind, name)
		}
		if err := parameter.Set(value); err != nil {
			return err
		}
	}
	return nil
}

func active(flag *bool) bool {
	return flag == nil || *flag
}
