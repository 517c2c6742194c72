package validator

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/chasta/skyguard/internal/estimation"
	"github.com/go-playground/validator/v10"
)

var (
	phoneRegex = regexp.MustCompile(`^\+?[0-9(][0-9 ().-]*$`)
)

const (
	minPhoneDigits = 10
	maxPhoneDigits = 15
)

func buildingTypeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return estimation.BuildingType(val).Valid()
}

func systemTypeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return estimation.SystemType(val).Valid()
}

// phoneValidator accepts national or international numbers written with the
// usual separators, counting only the digits against the length bounds.
func phoneValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	val = strings.TrimSpace(val)
	if !phoneRegex.MatchString(val) {
		return false
	}

	digits := 0
	for _, r := range val {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= minPhoneDigits && digits <= maxPhoneDigits
}

// notBlankValidator rejects strings made only of whitespace.
func notBlankValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(val) != ""
}
