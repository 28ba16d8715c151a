package cohort

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/cohortplanner/core"
)

var (
	// errors
	ErrInvalidConfiguration = errors.New("invalid cohort configuration")
	ErrInvalidInput         = errors.New("invalid student count")

	errNegativeStudents = "must be a non-negative integer"
	errTooManyStudents  = fmt.Sprintf("must not exceed %d", MaxStudents)
)

// MaxStudents is the largest headcount accepted for a single level by the API and the CLI.
const MaxStudents = 100000

// Validate checks that 0 < MinSize <= Ideal <= MaxSize.
// The returned error is a *core.ValidationError wrapping ErrInvalidConfiguration.
func (p Policy) Validate() error {
	var flds []core.FieldError
	if p.Ideal <= 0 {
		flds = append(flds, core.FieldError{Field: "ideal", Error: "must be greater than 0"})
	}
	if p.MinSize <= 0 {
		flds = append(flds, core.FieldError{Field: "min_size", Error: "must be greater than 0"})
	}
	if p.MaxSize <= 0 {
		flds = append(flds, core.FieldError{Field: "max_size", Error: "must be greater than 0"})
	}
	if len(flds) == 0 {
		if p.MinSize > p.Ideal {
			flds = append(flds, core.FieldError{Field: "min_size", Error: "must not be greater than ideal"})
		}
		if p.Ideal > p.MaxSize {
			flds = append(flds, core.FieldError{Field: "max_size", Error: "must not be less than ideal"})
		}
	}
	if len(flds) > 0 {
		return core.NewValidationError(ErrInvalidConfiguration, flds...)
	}
	return nil
}

func invalidStudents(field string) error {
	return core.NewValidationError(ErrInvalidInput, core.FieldError{Field: field, Error: errNegativeStudents})
}

// CheckHeadcount rejects a headcount above MaxStudents.
func CheckHeadcount(field string, students int) error {
	if students > MaxStudents {
		return core.NewValidationError(ErrInvalidInput, core.FieldError{Field: field, Error: errTooManyStudents})
	}
	return nil
}

// verify stops the process on a plan that lost or invented students.
func verify(plan CohortPlan, students int) error {
	if total := plan.Total(); total != students {
		return core.NewShutdownError(fmt.Sprintf("integrity issue: level %q planned %d of %d students", plan.Level, total, students))
	}
	return nil
}

func levelField(i int) string {
	return fmt.Sprintf("levels[%d].students", i)
}
