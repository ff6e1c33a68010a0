package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	envPrefix = "TABU"
)

type Config struct {
	Env    string       `mapstructure:"env" validate:"oneof=development production"`
	Log    LogConfig    `mapstructure:"log"`
	Search SearchConfig `mapstructure:"search"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

type SearchConfig struct {
	Direction   string             `mapstructure:"direction" validate:"oneof=maximize minimize"`
	HardPenalty float64            `mapstructure:"hardPenalty" validate:"gt=0"`
	StallLimit  int                `mapstructure:"stallLimit" validate:"gte=1"`
	Memory      MemoryConfig       `mapstructure:"memory"`
	Constraints []ConstraintConfig `mapstructure:"constraints" validate:"dive"`
	Objective   []ComponentConfig  `mapstructure:"objective" validate:"min=1,dive"`
	Strategies  []string           `mapstructure:"strategies" validate:"min=1,dive,required"`
	Aspirations []AspirationConfig `mapstructure:"aspirations" validate:"dive"`
	Stop        []StopConfig       `mapstructure:"stop" validate:"min=1,dive"`
	Progress    ProgressConfig     `mapstructure:"progress"`
}

type MemoryConfig struct {
	Mode       string `mapstructure:"mode" validate:"oneof=solution movement"`
	Capacity   int    `mapstructure:"capacity" validate:"gte=0"`
	AddTenure  int    `mapstructure:"addTenure" validate:"gte=0"`
	DropTenure int    `mapstructure:"dropTenure" validate:"gte=0"`
}

type ConstraintConfig struct {
	Kind       string             `mapstructure:"kind" validate:"required"`
	Hard       bool               `mapstructure:"hard"`
	Weight     float64            `mapstructure:"weight" validate:"gte=0"`
	Active     *bool              `mapstructure:"active"` // Active unless stated otherwise
	Parameters map[string]float64 `mapstructure:"parameters"`
}

type ComponentConfig struct {
	Kind       string             `mapstructure:"kind" validate:"required"`
	Direction  string             `mapstructure:"direction" validate:"omitempty,oneof=maximize minimize"` // Kind's default when empty
	Multiplier *float64           `mapstructure:"multiplier"`
	Table      map[uint64]float64 `mapstructure:"table"`
	Active     *bool              `mapstructure:"active"`
}

type AspirationConfig struct {
	Kind      string `mapstructure:"kind" validate:"required"`
	Threshold int    `mapstructure:"threshold" validate:"gte=0"`
	Active    *bool  `mapstructure:"active"`
}

type StopConfig struct {
	Kind     string        `mapstructure:"kind" validate:"required"`
	Limit    int           `mapstructure:"limit" validate:"gte=0"`
	Duration time.Duration `mapstructure:"duration" validate:"gte=0"`
	Active   *bool         `mapstructure:"active"`
}

type ProgressConfig struct {
	Fields   []string      `mapstructure:"fields"`
	Interval time.Duration `mapstructure:"interval" validate:"gte=0"`
}

var validate = validator.New()

// Load reads the configuration file at path, an empty path keeps the defaults. Scalars can be overridden through TABU_* variables, e.g. TABU_SEARCH_MEMORY_MODE
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cannot read configuration file %v: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("cannot decode configuration: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("search.direction", "maximize")
	v.SetDefault("search.hardPenalty", 1000.0)
	v.SetDefault("search.stallLimit", 3)

	v.SetDefault("search.memory.mode", "solution")
	v.SetDefault("search.memory.capacity", 10)
	v.SetDefault("search.memory.addTenure", 3)
	v.SetDefault("search.memory.dropTenure", 3)

	v.SetDefault("search.constraints", []map[string]any{})
	v.SetDefault("search.objective", []map[string]any{{"kind": "priority_reward"}})
	v.SetDefault("search.strategies", []string{"single_add", "single_drop", "swap", "reassign"})
	v.SetDefault("search.aspirations", []map[string]any{{"kind": "best_improvement"}})
	v.SetDefault("search.stop", []map[string]any{{"kind": "max_iterations", "limit": 100}})

	v.SetDefault("search.progress.fields", []string{})
	v.SetDefault("search.progress.interval", "1s")
}
