package validation

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Allow letters, spaces, and common name punctuation: . ' - / & ( ) ,
	nameRegex = regexp.MustCompile(`^[\p{L} .'/&(),-]+$`)

	// 24-hour clock, one or two digit hour: 8:00, 08:00, 23:59
	clockRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// Roles and education levels accepted by the remote API.
var (
	roles           = map[string]bool{"jobSeeker": true, "jobProvider": true}
	educationLevels = map[string]bool{"SD": true, "SMP": true, "SMA": true, "Diploma": true}
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("clock", Clock)
	_ = v.RegisterValidation("role", ValidRole)
	_ = v.RegisterValidation("education", Education)
}

// ValidName validates that a string contains only valid name characters
// Rejects digits and most special symbols
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		// Supplementary planes are mostly emoji and pictographs
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

// Clock validates an "H:MM" or "HH:MM" time of day.
func Clock(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return clockRegex.MatchString(val)
}

func ValidRole(fl validator.FieldLevel) bool {
	return roles[fl.Field().String()]
}

func Education(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return educationLevels[val]
}
