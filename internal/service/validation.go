package service

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/learning-tracker/internal/models"
)

var (
	nameCharsPattern   = regexp.MustCompile(`^['A-Za-z-]{2,}$`)
	nameEdgePattern    = regexp.MustCompile(`^(['-].+|.+['-])$`)
	nameDoubledPattern = regexp.MustCompile(`^.+['-]{2,}.+$`)
	mailAddrPattern    = regexp.MustCompile(`^.+@.+\..+$`)
)

// NewValidator returns a validator with the tracker's custom tags registered:
// personname, lastname, mailaddr and coursepoints.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return IsValidName(fl.Field().String())
	})
	_ = v.RegisterValidation("lastname", func(fl validator.FieldLevel) bool {
		return IsValidLastName(fl.Field().String())
	})
	_ = v.RegisterValidation("mailaddr", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("coursepoints", func(fl validator.FieldLevel) bool {
		points, ok := fl.Field().Interface().(models.CoursePoints)
		return ok && WithinCeilings(points)
	})
	return v
}

// IsValidName checks a single name word: ASCII letters, apostrophes and hyphens, at
// least two characters, not starting or ending with a separator, no adjacent separators.
func IsValidName(name string) bool {
	return nameCharsPattern.MatchString(name) &&
		!nameEdgePattern.MatchString(name) &&
		!nameDoubledPattern.MatchString(name)
}

// IsValidLastName validates every space separated word of a last name.
func IsValidLastName(lastName string) bool {
	if lastName == "" {
		return false
	}
	for _, word := range strings.Split(lastName, " ") {
		if !IsValidName(word) {
			return false
		}
	}
	return true
}

// IsValidEmail applies the loose address check used when registering students.
func IsValidEmail(email string) bool {
	return mailAddrPattern.MatchString(email)
}

// WithinCeilings reports whether every value is between zero and its course ceiling.
func WithinCeilings(points models.CoursePoints) bool {
	for _, course := range models.Courses() {
		value := points.Get(course.ID)
		if value < 0 || value > course.Ceiling {
			return false
		}
	}
	return true
}
