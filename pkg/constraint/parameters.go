package constraint

import "fmt"

// Parameter exposes one tunable of a constraint for callers that enumerate them by name
type Parameter struct {
	Name        string
	Description string
	Get         func() float64
	Set         func(value float64) error
}

// Parameters lists the tunables of the constraint, kinds without tunables return none
func (constraint *Constraint) Parameters() []Parameter {
	if constraint.Kind != WorkloadBalance {
		return nil
	}

	nonNegative := func(name string, target *float64) func(value float64) error {
		return func(value float64) error {
			if value < 0 {
				return fmt.Errorf("parameter \"%v\" must be non-negative: %v", name, value)
			}
			*target = value
			return nil
		}
	}

	return []Parameter{
		{
			Name:        "threshold",
			Description: "Workload above which a teacher is considered overloaded",
			Get:         func() float64 { return constraint.Workload.Threshold },
			Set:         nonNegative("threshold", &constraint.Workload.Threshold),
		},
		{
			Name:        "deficitDiscount",
			Description: "Penalty factor applied to overloaded teachers in deficit",
			Get:         func() float64 { return constraint.Workload.DeficitDiscount },
			Set:         nonNegative("deficitDiscount", &constraint.Workload.DeficitDiscount),
		},
		{
			Name:        "deficitBalance",
			Description: "Balance under which a teacher is considered in deficit",
			Get:         func() float64 { return constraint.Workload.DeficitBalance },
			Set: func(value float64) error {
				constraint.Workload.DeficitBalance = value
				return nil
			},
		},
	}
}
