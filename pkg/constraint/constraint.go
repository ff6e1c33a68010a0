package constraint

import (
	"fmt"
	"slices"

	"github.com/limaJavier/assignment/pkg/model"
	"github.com/samber/lo"
)

type Kind string

const (
	WorkloadBalance       Kind = "workload_balance"
	ScheduleOverlap       Kind = "schedule_overlap"
	CourseConflict        Kind = "course_conflict"
	CourseCardinality     Kind = "course_cardinality"
	UnpreferredAssignment Kind = "unpreferred_assignment"
	GroupingPreference    Kind = "grouping_preference"
)

var kinds = []Kind{
	WorkloadBalance,
	ScheduleOverlap,
	CourseConflict,
	CourseCardinality,
	UnpreferredAssignment,
	GroupingPreference,
}

func Kinds() []Kind {
	return slices.Clone(kinds)
}

func ParseKind(name string) (Kind, error) {
	if !slices.Contains(kinds, Kind(name)) {
		return "", fmt.Errorf("unknown constraint kind \"%v\"", name)
	}
	return Kind(name), nil
}

// Capability tells whether a kind may run as a hard constraint, a soft one or both. It's fixed per kind
type Capability uint8

const (
	HardOnly Capability = iota
	SoftOnly
	Both
)

func (capability Capability) Allows(hard bool) bool {
	switch capability {
	case HardOnly:
		return hard
	case SoftOnly:
		return !hard
	}
	return true
}

func (capability Capability) String() string {
	return [...]string{"hard-only", "soft-only", "both"}[capability]
}

func (kind Kind) Capability() Capability {
	switch kind {
	case UnpreferredAssignment, GroupingPreference:
		return SoftOnly
	}
	return Both
}

type WorkloadParams struct {
	Threshold       float64 `mapstructure:"threshold"`       // Workload above which a teacher is overloaded
	DeficitDiscount float64 `mapstructure:"deficitDiscount"` // Penalty factor applied to teachers in deficit
	DeficitBalance  float64 `mapstructure:"deficitBalance"`  // Balance under which a teacher is in deficit
}

func DefaultWorkloadParams() WorkloadParams {
	return WorkloadParams{
		Threshold:       2.0,
		DeficitDiscount: 0.75,
		DeficitBalance:  -1.0,
	}
}

type Constraint struct {
	Kind   Kind
	Hard   bool
	Weight float64
	Active bool

	Workload WorkloadParams
}

// New returns an active constraint of the given kind carrying its default parameters
func New(kind Kind, hard bool, weight float64) Constraint {
	return Constraint{
		Kind:     kind,
		Hard:     hard,
		Weight:   weight,
		Active:   true,
		Workload: DefaultWorkloadParams(),
	}
}

func (constraint Constraint) Name() string {
	return string(constraint.Kind)
}

// Validate checks the kind, the capability and the parameters
func (constraint Constraint) Validate() error {
	if !slices.Contains(kinds, constraint.Kind) {
		return fmt.Errorf("unknown constraint kind \"%v\"", constraint.Kind)
	} else if !constraint.Kind.Capability().Allows(constraint.Hard) {
		return fmt.Errorf("constraint \"%v\" is %v and cannot run as hard=%v", constraint.Kind, constraint.Kind.Capability(), constraint.Hard)
	} else if constraint.Weight < 0 {
		return fmt.Errorf("constraint \"%v\" has a negative weight: %v", constraint.Kind, constraint.Weight)
	}

	if constraint.Kind == WorkloadBalance {
		if constraint.Workload.Threshold < 0 {
			return fmt.Errorf("workload threshold must be non-negative: %v", constraint.Workload.Threshold)
		} else if constraint.Workload.DeficitDiscount < 0 {
			return fmt.Errorf("workload deficit discount must be non-negative: %v", constraint.Workload.DeficitDiscount)
		}
	}
	return nil
}

type Result struct {
	Penalty    float64 // Always non-negative
	Violations int
}

type Occurrence struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type violation struct {
	label   string
	count   int
	penalty float64
}

func (constraint Constraint) Evaluate(solution *model.Solution) Result {
	violations := constraint.violations(solution)
	return Result{
		Penalty:    lo.SumBy(violations, func(violation violation) float64 { return violation.penalty }),
		Violations: lo.SumBy(violations, func(violation violation) int { return violation.count }),
	}
}

// Occurrences reports the violations grouped by label, in order of first appearance. It's meant for diagnostics only
func (constraint Constraint) Occurrences(solution *model.Solution) []Occurrence {
	occurrences := make([]Occurrence, 0)
	positions := make(map[string]int)
	for _, violation := range constraint.violations(solution) {
		if position, ok := positions[violation.label]; ok {
			occurrences[position].Count += violation.count
			continue
		}
		positions[violation.label] = len(occurrences)
		occurrences = append(occurrences, Occurrence{Label: violation.label, Count: violation.count})
	}
	return occurrences
}

func (constraint Constraint) violations(solution *model.Solution) []violation {
	switch constraint.Kind {
	case WorkloadBalance:
		return workloadViolations(solution, constraint.Weight, constraint.Workload)
	case ScheduleOverlap:
		return pairViolations(solution, constraint.Weight, solution.Space().Overlap)
	case CourseConflict:
		return pairViolations(solution, constraint.Weight, solution.Space().Conflicting)
	case CourseCardinality:
		return cardinalityViolations(solution, constraint.Weight)
	case UnpreferredAssignment:
		return unpreferredViolations(solution, constraint.Weight)
	case GroupingPreference:
		return groupingViolations(solution, constraint.Weight)
	}
	panic(fmt.Sprintf("unknown constraint kind \"%v\"", constraint.Kind))
}
