package validator

import "github.com/go-playground/validator/v10"

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func NewCalculationValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("building_type", buildingTypeValidator),
		},
		{
			Rule: registerFn("system_type", systemTypeValidator),
		},
		{
			Rule: registerFn("phone", phoneValidator),
		},
		{
			Rule: registerFn("notblank", notBlankValidator),
		},
	}
}
