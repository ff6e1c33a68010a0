package tabu

import (
	"errors"
	"testing"

	"github.com/limaJavier/assignment/pkg/constraint"
	"github.com/limaJavier/assignment/pkg/objective"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	t.Run("Default configuration", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})

	mutations := map[string]struct {
		mutate    func(config *Config)
		invariant string
	}{
		"no stop criterion": {
			func(config *Config) { config.StopCriteria[0].Active = false },
			"no active stop criterion",
		},
		"no objective component": {
			func(config *Config) { config.Components = nil },
			"no active objective component",
		},
		"no neighborhood strategy": {
			func(config *Config) {
				for i := range config.Strategies {
					config.Strategies[i].Active = false
				}
			},
			"no active neighborhood generator",
		},
		"zero capacity": {
			func(config *Config) { config.Memory.Capacity = 0 },
			"solution memory capacity must be positive",
		},
		"negative tenure": {
			func(config *Config) { config.Memory = MemoryConfig{Mode: MovementMemory, AddTenure: 2, DropTenure: -1} },
			"movement memory tenures must be positive",
		},
		"capability mismatch": {
			func(config *Config) {
				config.Constraints = []constraint.Constraint{constraint.New(constraint.UnpreferredAssignment, true, 1)}
			},
			"constraints must match their capability",
		},
		"unknown memory mode": {
			func(config *Config) { config.Memory.Mode = "episodic" },
			"field Config.Memory.Mode must satisfy \"oneof\"",
		},
		"unknown direction": {
			func(config *Config) { config.Direction = "sideways" },
			"field Config.Direction must satisfy \"oneof\"",
		},
		"zero stall limit": {
			func(config *Config) { config.StallLimit = 0 },
			"field Config.StallLimit must satisfy \"gte\"",
		},
		"zero iteration limit": {
			func(config *Config) { config.StopCriteria[0].Limit = 0 },
			"stop criteria must be well formed",
		},
		"streak without threshold": {
			func(config *Config) { config.Aspirations = []Aspiration{{Kind: SameObjectiveStreak, Active: true}} },
			"aspiration criteria must be well formed",
		},
		"unknown component": {
			func(config *Config) { config.Components = append(config.Components, objective.Component{Kind: "luck", Active: true}) },
			"objective components must be well formed",
		},
	}

	for name, testCase := range mutations {
		t.Run(name, func(t *testing.T) {
			//** Arrange
			config := DefaultConfig()
			testCase.mutate(&config)

			//** Act
			err := config.Validate()

			//** Assert
			assert.True(t, errors.Is(err, ErrConfiguration), err)
			typed, ok := FromError(err)
			if assert.True(t, ok) {
				assert.Equal(t, CodeConfiguration, typed.Code)
				assert.Equal(t, testCase.invariant, typed.Invariant)
			}
		})
	}
}
