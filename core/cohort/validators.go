package cohort

import (
	"reflect"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/cohortplanner/core"
)

var (
	cohortBoundsTag  = "cohort_bounds"
	cohortBoundsText = "sizes must satisfy min_size <= ideal <= max_size"

	headcountTag = "headcount"
)

// InitValidators registers the cohort validators. core.InitValidators must be called first.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	// Level only has unexported fields; validate it through its label so `required` applies.
	validate.RegisterCustomTypeFunc(levelValue, Level{})

	_ = validate.RegisterValidation(headcountTag, headcountValidation)
	core.RegisterCustomTranslation(validate, translator, headcountTag, errTooManyStudents)

	validate.RegisterStructValidation(policyStructValidation, Policy{})
	core.RegisterCustomTranslation(validate, translator, cohortBoundsTag, cohortBoundsText)
}

func levelValue(field reflect.Value) interface{} {
	if lvl, ok := field.Interface().(Level); ok {
		return lvl.String()
	}
	return nil
}

// headcountValidation caps student counts at MaxStudents.
// Negative counts are reported by the planner with their position.
func headcountValidation(fl validator.FieldLevel) bool {
	switch f := fl.Field(); f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return f.Int() <= MaxStudents
	}
	return false
}

// policyStructValidation checks the ordering of a fully specified Policy.
// Non-positive sizes are reported by Policy.Validate.
func policyStructValidation(sl validator.StructLevel) {
	p, ok := sl.Current().Interface().(Policy)
	if !ok || p.Ideal <= 0 || p.MinSize <= 0 || p.MaxSize <= 0 {
		return
	}
	if p.MinSize > p.Ideal {
		sl.ReportError(p.MinSize, "min_size", "MinSize", cohortBoundsTag, "")
	}
	if p.Ideal > p.MaxSize {
		sl.ReportError(p.MaxSize, "max_size", "MaxSize", cohortBoundsTag, "")
	}
}
