package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/limaJavier/assignment/pkg/constraint"
	"github.com/limaJavier/assignment/pkg/objective"
	"github.com/limaJavier/assignment/pkg/tabu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const searchYaml = `
env: production
log:
  level: debug
  format: json
search:
  direction: maximize
  stallLimit: 5
  memory:
    mode: movement
    addTenure: 2
    dropTenure: 4
  constraints:
    - kind: workload_balance
      weight: 3
      parameters:
        threshold: 2.5
    - kind: unpreferred_assignment
      weight: 0.5
      active: false
  objective:
    - kind: priority_reward
      table:
        1: 10
    - kind: workload_spread
      multiplier: 0.5
  strategies: [single_add, swap]
  aspirations:
    - kind: same_objective_streak
      threshold: 4
  stop:
    - kind: no_improvement_streak
      limit: 20
    - kind: time_limit
      duration: 30s
  progress:
    fields: [best_score]
    interval: 500ms
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "search.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		//** Act
		cfg, err := Load("")

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, EnvDevelopment, cfg.Env)
		assert.Equal(t, "solution", cfg.Search.Memory.Mode)
		assert.Equal(t, 10, cfg.Search.Memory.Capacity)
		assert.Equal(t, []string{"single_add", "single_drop", "swap", "reassign"}, cfg.Search.Strategies)
		require.Len(t, cfg.Search.Stop, 1)
		assert.Equal(t, "max_iterations", cfg.Search.Stop[0].Kind)
		assert.Equal(t, 100, cfg.Search.Stop[0].Limit)
		assert.Equal(t, time.Second, cfg.Search.Progress.Interval)
	})

	t.Run("File", func(t *testing.T) {
		//** Act
		cfg, err := Load(writeConfig(t, searchYaml))

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, EnvProduction, cfg.Env)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, 5, cfg.Search.StallLimit)
		assert.Equal(t, 1000.0, cfg.Search.HardPenalty)
		assert.Equal(t, MemoryConfig{Mode: "movement", Capacity: 10, AddTenure: 2, DropTenure: 4}, cfg.Search.Memory)
		require.Len(t, cfg.Search.Constraints, 2)
		assert.Equal(t, 2.5, cfg.Search.Constraints[0].Parameters["threshold"])
		assert.Equal(t, map[uint64]float64{1: 10}, cfg.Search.Objective[0].Table)
		assert.Equal(t, 30*time.Second, cfg.Search.Stop[1].Duration)
		assert.Equal(t, 500*time.Millisecond, cfg.Search.Progress.Interval)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		//** Arrange
		t.Setenv("TABU_SEARCH_MEMORY_MODE", "movement")
		t.Setenv("TABU_LOG_LEVEL", "warn")

		//** Act
		cfg, err := Load(writeConfig(t, "search:\n  memory:\n    mode: solution\n"))

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, "movement", cfg.Search.Memory.Mode)
		assert.Equal(t, "warn", cfg.Log.Level)
	})

	t.Run("Invalid values", func(t *testing.T) {
		_, err := Load(writeConfig(t, "search:\n  memory:\n    mode: episodic\n"))
		assert.Error(t, err)

		_, err = Load(writeConfig(t, "search:\n  stop: []\n"))
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		//** Act
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		//** Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestBuild(t *testing.T) {
	t.Run("Correct flow", func(t *testing.T) {
		//** Arrange
		cfg, err := Load(writeConfig(t, searchYaml))
		require.NoError(t, err)

		//** Act
		config, err := cfg.Build(zap.NewNop())

		//** Assert
		require.NoError(t, err)
		require.NoError(t, config.Validate())
		assert.Equal(t, objective.Maximize, config.Direction)
		assert.Equal(t, tabu.MemoryConfig{Mode: tabu.MovementMemory, Capacity: 10, AddTenure: 2, DropTenure: 4}, config.Memory)

		require.Len(t, config.Constraints, 2)
		assert.Equal(t, 2.5, config.Constraints[0].Workload.Threshold)
		assert.Equal(t, 0.75, config.Constraints[0].Workload.DeficitDiscount)
		assert.False(t, config.Constraints[1].Active)
		assert.Equal(t, constraint.UnpreferredAssignment, config.Constraints[1].Kind)

		require.Len(t, config.Components, 2)
		assert.Equal(t, 10.0, config.Components[0].PriorityMultiplier(1, 2))
		assert.Equal(t, 1.0, config.Components[0].PriorityMultiplier(2, 2))
		assert.Equal(t, objective.Minimize, config.Components[1].Direction)
		assert.Equal(t, 0.5, config.Components[1].Multiplier)

		assert.Len(t, config.Strategies, 2)
		assert.Equal(t, []tabu.Aspiration{{Kind: tabu.SameObjectiveStreak, Threshold: 4, Active: true}}, config.Aspirations)
		assert.Equal(t, tabu.StopCriterion{Kind: tabu.TimeLimit, Duration: 30 * time.Second, Active: true}, config.StopCriteria[1])

		fields, err := cfg.Fields()
		require.NoError(t, err)
		assert.Equal(t, []tabu.Field{tabu.FieldBestScore}, fields)
	})

	t.Run("Unknown names", func(t *testing.T) {
		cases := []string{
			"search:\n  strategies: [teleport]\n",
			"search:\n  constraints:\n    - kind: gravity\n",
			"search:\n  constraints:\n    - kind: workload_balance\n      parameters:\n        ceiling: 3\n",
			"search:\n  objective:\n    - kind: luck\n",
			"search:\n  progress:\n    fields: [temperature]\n",
		}

		for _, content := range cases {
			cfg, err := Load(writeConfig(t, content))
			require.NoError(t, err, content)

			_, buildErr := cfg.Build(nil)
			_, fieldsErr := cfg.Fields()
			assert.True(t, buildErr != nil || fieldsErr != nil, content)
		}
	})
}

func TestShippedConfiguration(t *testing.T) {
	//** Arrange
	cfg, err := Load("../../configs/search.yaml")
	require.NoError(t, err)

	//** Act
	config, err := cfg.Build(nil)

	//** Assert
	require.NoError(t, err)
	assert.NoError(t, config.Validate())
	assert.Len(t, config.Constraints, 6)
	assert.Len(t, config.StopCriteria, 3)
}
