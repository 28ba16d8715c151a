package cohort

import "github.com/trezcool/cohortplanner/core"

// Default sizing policy.
const (
	DefaultIdeal   = 20
	DefaultMinSize = 5
	DefaultMaxSize = 30
)

// DefaultPolicy is the policy used by PlanCohorts.
var DefaultPolicy = Policy{Ideal: DefaultIdeal, MinSize: DefaultMinSize, MaxSize: DefaultMaxSize}

// PolicyFromConfig returns the policy described by the app configuration.
func PolicyFromConfig(conf core.CohortConfig) Policy {
	return Policy{Ideal: conf.Ideal, MinSize: conf.MinSize, MaxSize: conf.MaxSize}
}

// Policy holds the cohort size constraints. A valid policy has 0 < MinSize <= Ideal <= MaxSize.
type Policy struct {
	Ideal   int `json:"ideal"`
	MinSize int `json:"min_size"`
	MaxSize int `json:"max_size"`
}

// LevelInput is the number of students assessed into a level.
type LevelInput struct {
	Level    Level `json:"level" validate:"required"`
	Students int   `json:"students" validate:"headcount"`
}

// CohortPlan lists the cohort headcounts planned for a level, in creation order.
type CohortPlan struct {
	Level   Level `json:"level"`
	Cohorts []int `json:"cohorts"`
}

// Total returns the number of students covered by the plan.
func (p CohortPlan) Total() int {
	var total int
	for _, size := range p.Cohorts {
		total += size
	}
	return total
}

// OutOfBounds returns the indices of cohorts sized outside [policy.MinSize, policy.MaxSize].
// A non-empty result is legal only for the cases documented on PartitionLevel.
func (p CohortPlan) OutOfBounds(policy Policy) []int {
	var idxs []int
	for i, size := range p.Cohorts {
		if size < policy.MinSize || size > policy.MaxSize {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// Assessment is a single student's assessment result.
type Assessment struct {
	StudentID string `json:"student_id" validate:"required,notblank"`
	Level     Level  `json:"level" validate:"required"`
}

type (
	// SchoolLevels holds a school's level tallies.
	SchoolLevels struct {
		School string       `json:"school" validate:"required,notblank"`
		Levels []LevelInput `json:"levels" validate:"dive"`
	}

	SchoolPlan struct {
		School string       `json:"school"`
		Plans  []CohortPlan `json:"plans"`
	}
)
