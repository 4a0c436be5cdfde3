package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/kubev2v/training-planner/api/v1alpha1"
	"github.com/kubev2v/training-planner/internal/hardware"
)

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

// NewEstimationValidationRules returns the rules of an estimation request.
// Hardware keys are checked against catalog.
func NewEstimationValidationRules(catalog *hardware.Catalog) []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("model_type", modelTypeValidator),
		},
		{
			Rule: registerFn("optimizer", optimizerValidator),
		},
		{
			Rule: func(v *validator.Validate) {
				v.RegisterStructValidation(EstimationRequestValidator(), v1alpha1.EstimationRequest{})
			},
		},
		{
			Rule: registerFn("hardware", hardwareValidator(catalog)),
		},
	}
}
