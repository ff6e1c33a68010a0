package objective

import (
	"fmt"
	"math"
	"slices"

	"github.com/limaJavier/assignment/pkg/model"
	"github.com/samber/lo"
)

type Direction string

const (
	Maximize Direction = "maximize"
	Minimize Direction = "minimize"
)

func ParseDirection(name string) (Direction, error) {
	switch Direction(name) {
	case Maximize, Minimize:
		return Direction(name), nil
	}
	return "", fmt.Errorf("unknown direction \"%v\"", name)
}

// Better reports whether score1 is strictly better than score2 under the direction
func (direction Direction) Better(score1, score2 float64) bool {
	if direction == Minimize {
		return score1 < score2
	}
	return score1 > score2
}

type Kind string

const (
	PriorityReward      Kind = "priority_reward"
	CourseCoverage      Kind = "course_coverage"
	WorkloadSpread      Kind = "workload_spread"
	BalanceCompensation Kind = "balance_compensation"
)

var kinds = []Kind{PriorityReward, CourseCoverage, WorkloadSpread, BalanceCompensation}

func Kinds() []Kind {
	return slices.Clone(kinds)
}

func ParseKind(name string) (Kind, error) {
	if !slices.Contains(kinds, Kind(name)) {
		return "", fmt.Errorf("unknown objective component \"%v\"", name)
	}
	return Kind(name), nil
}

func (kind Kind) DefaultDirection() Direction {
	if kind == WorkloadSpread {
		return Minimize
	}
	return Maximize
}

type Component struct {
	Kind       Kind
	Direction  Direction
	Multiplier float64
	Table      map[uint64]float64 // Priority -> multiplier overrides, only read by the priority reward
	Active     bool
}

// New returns an active component with its default direction and a unit multiplier
func New(kind Kind) Component {
	return Component{
		Kind:       kind,
		Direction:  kind.DefaultDirection(),
		Multiplier: 1,
		Active:     true,
	}
}

func (component Component) Name() string {
	return string(component.Kind)
}

func (component Component) Validate() error {
	if !slices.Contains(kinds, component.Kind) {
		return fmt.Errorf("unknown objective component \"%v\"", component.Kind)
	} else if _, err := ParseDirection(string(component.Direction)); err != nil {
		return fmt.Errorf("objective component \"%v\": %v", component.Kind, err)
	}

	for priority, multiplier := range component.Table {
		if priority == 0 {
			return fmt.Errorf("objective component \"%v\" overrides priority 0, priorities start at 1", component.Kind)
		} else if math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
			return fmt.Errorf("objective component \"%v\" has a non-finite multiplier for priority %v", component.Kind, priority)
		}
	}
	return nil
}

// DefaultMultiplier is the multiplier of a priority when no table overrides it: 2^(maxPriority - priority)
func DefaultMultiplier(priority, maxPriority uint64) float64 {
	if priority == 0 || priority > maxPriority {
		return 0
	}
	return math.Ldexp(1, int(maxPriority-priority))
}

// PriorityMultiplier looks the priority up in the table and falls back to the default formula. No preference is always worth 0
func (component Component) PriorityMultiplier(priority, maxPriority uint64) float64 {
	if priority == 0 {
		return 0
	} else if multiplier, ok := component.Table[priority]; ok {
		return multiplier
	}
	return DefaultMultiplier(priority, maxPriority)
}

// Value is the raw value of the component, before the direction and the multiplier are applied
func (component Component) Value(solution *model.Solution) float64 {
	space := solution.Space()

	switch component.Kind {
	case PriorityReward:
		return lo.SumBy(solution.Cells(), func(cell model.Cell) float64 {
			return component.PriorityMultiplier(space.Priority(cell.Teacher, cell.Course), space.MaxPriority())
		})
	case CourseCoverage:
		covered := lo.CountBy(lo.Range(int(space.CourseCount())), func(course int) bool {
			return space.CourseActive(uint64(course)) && len(solution.TeachersOf(uint64(course))) > 0
		})
		return float64(covered)
	case WorkloadSpread:
		return variance(activeWorkloads(solution))
	case BalanceCompensation:
		workloads := solution.Workloads()
		compensation := 0.0
		for teacher, workload := range workloads {
			balance := space.Teacher(uint64(teacher)).Balance
			if space.TeacherActive(uint64(teacher)) && balance < 0 {
				compensation += -balance * workload
			}
		}
		return compensation
	}
	panic(fmt.Sprintf("unknown objective component \"%v\"", component.Kind))
}

func activeWorkloads(solution *model.Solution) []float64 {
	space := solution.Space()
	return lo.Filter(solution.Workloads(), func(_ float64, teacher int) bool {
		return space.TeacherActive(uint64(teacher))
	})
}

// Population variance
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := lo.Sum(values) / float64(len(values))
	return lo.SumBy(values, func(value float64) float64 {
		return (value - mean) * (value - mean)
	}) / float64(len(values))
}
