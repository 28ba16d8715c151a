package cohort

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/cohortplanner/core"
)

// Planner plans cohorts with a fixed, validated Policy.
// It holds no mutable state and is safe for concurrent use.
type Planner struct {
	policy Policy
}

func NewPlanner(policy Policy) (*Planner, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Planner{policy: policy}, nil
}

// PlanCohorts plans every level with DefaultPolicy.
func PlanCohorts(levels []LevelInput) ([]CohortPlan, error) {
	return (&Planner{policy: DefaultPolicy}).Plan(levels)
}

func (p *Planner) Policy() Policy { return p.policy }

func (p *Planner) Partition(students int) ([]int, error) {
	if students < 0 {
		return nil, invalidStudents("students")
	}
	cohorts := partition(students, p.policy)
	if err := verify(CohortPlan{Cohorts: cohorts}, students); err != nil {
		return nil, err
	}
	return cohorts, nil
}

// Plan returns one CohortPlan per input, in input order.
func (p *Planner) Plan(levels []LevelInput) ([]CohortPlan, error) {
	plans := make([]CohortPlan, 0, len(levels))
	for i, lvl := range levels {
		if lvl.Students < 0 {
			return nil, invalidStudents(levelField(i))
		}
		plan := CohortPlan{
			Level:   lvl.Level,
			Cohorts: partition(lvl.Students, p.policy),
		}
		if err := verify(plan, lvl.Students); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// PlanSchools plans each school concurrently. Results keep the input order.
// On failure, the error of the first failing school (by position) is returned.
// Field errors are prefixed with the school position; other errors pass through.
func (p *Planner) PlanSchools(schools []SchoolLevels) ([]SchoolPlan, error) {
	results := make([]SchoolPlan, len(schools))
	errs := make([]error, len(schools))

	var wg sync.WaitGroup
	for i := range schools {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			plans, err := p.Plan(schools[i].Levels)
			if err != nil {
				errs[i] = prefixFields(err, fmt.Sprintf("schools[%d].", i))
				return
			}
			results[i] = SchoolPlan{School: schools[i].School, Plans: plans}
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, errors.Wrapf(err, "planning school %q", schools[i].School)
		}
	}
	return results, nil
}

func prefixFields(err error, prefix string) error {
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		return err
	}
	flds := make([]core.FieldError, 0, len(vErr.Fields))
	for _, fErr := range vErr.Fields {
		flds = append(flds, core.FieldError{Field: prefix + fErr.Field, Error: fErr.Error})
	}
	return core.NewValidationError(vErr.Err, flds...)
}
