package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

type Grouping string

const (
	GroupingNone    Grouping = "none"
	GroupingCompact Grouping = "compact" // Prefers teaching on as few days as possible
	GroupingSpread  Grouping = "spread"  // Prefers at most one course per day
)

type LockScope string

const (
	ScopeCell   LockScope = "cell"
	ScopeRow    LockScope = "row"    // Every course of a teacher
	ScopeColumn LockScope = "column" // Every teacher of a course
)

type TimeSlot struct {
	Day   uint64 `mapstructure:"day" json:"day"`
	Start uint64 `mapstructure:"start" json:"start"` // First period (inclusive)
	End   uint64 `mapstructure:"end" json:"end"`     // Last period (exclusive)
}

type Teacher struct {
	Name       string            `mapstructure:"name" json:"name"`
	Active     bool              `mapstructure:"active" json:"active"`
	Balance    float64           `mapstructure:"balance" json:"balance"`
	Grouping   Grouping          `mapstructure:"grouping" json:"grouping"`
	Priorities map[string]uint64 `mapstructure:"priorities" json:"priorities"` // Course id -> priority, where 1 is the most preferred
}

type Course struct {
	Id          string     `mapstructure:"id" json:"id"`
	Name        string     `mapstructure:"name" json:"name"`
	Active      bool       `mapstructure:"active" json:"active"`
	Slots       []TimeSlot `mapstructure:"slots" json:"slots"`
	Workload    float64    `mapstructure:"workload" json:"workload"`
	Cardinality uint64     `mapstructure:"cardinality" json:"cardinality"` // Number of teachers the course requires
	Conflicts   []string   `mapstructure:"conflicts" json:"conflicts"`
	Locked      bool       `mapstructure:"locked" json:"locked"`
}

type Lock struct {
	Teacher string    `mapstructure:"teacher" json:"teacher,omitempty"`
	Course  string    `mapstructure:"course" json:"course,omitempty"`
	Scope   LockScope `mapstructure:"scope" json:"scope"`
}

// Assignment maps a course id to the names of the teachers assigned to it
type Assignment map[string][]string

type ModelInput struct {
	Teachers    []Teacher  `mapstructure:"teachers" json:"teachers"`
	Courses     []Course   `mapstructure:"courses" json:"courses"`
	Locks       []Lock     `mapstructure:"locks" json:"locks"`
	Assignment  Assignment `mapstructure:"assignment" json:"assignment"`
	MaxPriority uint64     `mapstructure:"maxPriority" json:"maxPriority"` // If zero it's derived from the declared priorities
}

func InputFromJson(file string) (ModelInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ModelInput{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return ModelInput{}, err
	}

	return InputFromMap(inputJson)
}

func InputFromMap(inputMap map[string]any) (ModelInput, error) {
	// Teachers and courses are active unless stated otherwise
	defaultActive(inputMap, "teachers")
	defaultActive(inputMap, "courses")

	var input ModelInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &input,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return ModelInput{}, err
	}
	if err := decoder.Decode(inputMap); err != nil {
		return ModelInput{}, fmt.Errorf("cannot decode input: %v", err)
	}

	normalizeInput(&input)
	return input, nil
}

func defaultActive(inputMap map[string]any, key string) {
	entities, ok := inputMap[key].([]any)
	if !ok {
		return
	}
	for _, entity := range entities {
		if fields, ok := entity.(map[string]any); ok {
			if _, ok := fields["active"]; !ok {
				fields["active"] = true
			}
		}
	}
}

// Fills the defaults that a zero value cannot express
func normalizeInput(input *ModelInput) {
	for i := range input.Teachers {
		if input.Teachers[i].Grouping == "" {
			input.Teachers[i].Grouping = GroupingNone
		}
	}
	for i := range input.Courses {
		if input.Courses[i].Cardinality == 0 {
			input.Courses[i].Cardinality = 1
		}
	}
	for i := range input.Locks {
		if input.Locks[i].Scope == "" {
			input.Locks[i].Scope = inferScope(input.Locks[i])
		}
	}
	if input.Assignment == nil {
		input.Assignment = make(Assignment)
	}
}

func inferScope(lock Lock) LockScope {
	if lock.Teacher != "" && lock.Course == "" {
		return ScopeRow
	} else if lock.Teacher == "" && lock.Course != "" {
		return ScopeColumn
	}
	return ScopeCell
}
