package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/kubev2v/training-planner/api/v1alpha1"
	"github.com/kubev2v/training-planner/internal/estimation"
	"github.com/kubev2v/training-planner/internal/hardware"
)

func modelTypeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := estimation.ParseModelType(val)
	return err == nil
}

func optimizerValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := estimation.ParseOptimizer(val)
	return err == nil
}

// EstimationRequestValidator checks the image geometry of advanced requests.
// The geometry of other requests is ignored.
func EstimationRequestValidator() validator.StructLevelFunc {
	return func(sl validator.StructLevel) {
		req, ok := sl.Current().Interface().(v1alpha1.EstimationRequest)
		if !ok || !req.Advanced || req.Image == nil {
			return
		}

		img := req.Image
		dimensions := []struct {
			name, field string
			value       int
		}{
			{"image.width", "Width", img.Width},
			{"image.height", "Height", img.Height},
			{"image.channels", "Channels", img.Channels},
		}
		for _, d := range dimensions {
			if d.value <= 0 {
				sl.ReportError(d.value, d.name, d.field, "gt", "0")
			}
		}
		if img.PrecisionBits != 16 && img.PrecisionBits != 32 {
			sl.ReportError(img.PrecisionBits, "image.precisionBits", "PrecisionBits", "precision", "")
		}
	}
}

func hardwareValidator(catalog *hardware.Catalog) func(fl validator.FieldLevel) bool {
	return func(fl validator.FieldLevel) bool {
		val, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		// empty means local
		if val == "" {
			return true
		}
		return catalog.Has(hardware.Key(val))
	}
}
