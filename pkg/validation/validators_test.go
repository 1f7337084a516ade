package validation_test

import (
	"errors"
	"testing"

	"mancarijo/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Name                 string `validate:"required,valid_name"`
	Role                 string `validate:"required,role"`
	LastEducation        string `validate:"omitempty,education"`
	WorkHoursStart       string `validate:"required,clock"`
	Password             string `validate:"required"`
	PasswordConfirmation string `validate:"required,eqfield=Password"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func validForm() form {
	return form{
		Name:                 "Budi Santoso",
		Role:                 "jobSeeker",
		LastEducation:        "SMA",
		WorkHoursStart:       "08:00",
		Password:             "rahasia",
		PasswordConfirmation: "rahasia",
	}
}

func TestCustomValidators(t *testing.T) {
	v := newValidator()

	t.Run("Should accept a valid form", func(t *testing.T) {
		assert.NoError(t, v.Struct(validForm()))
	})

	t.Run("Should accept one digit hours", func(t *testing.T) {
		f := validForm()
		f.WorkHoursStart = "8:30"
		assert.NoError(t, v.Struct(f))
	})

	cases := map[string]func(*form){
		"digits in name":       func(f *form) { f.Name = "Budi 2" },
		"unknown role":         func(f *form) { f.Role = "admin" },
		"unknown education":    func(f *form) { f.LastEducation = "S3" },
		"hour out of range":    func(f *form) { f.WorkHoursStart = "24:00" },
		"minutes missing":      func(f *form) { f.WorkHoursStart = "08" },
		"confirmation differs": func(f *form) { f.PasswordConfirmation = "lain" },
	}
	for name, mutate := range cases {
		t.Run("Should reject "+name, func(t *testing.T) {
			f := validForm()
			mutate(&f)
			assert.Error(t, v.Struct(f))
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := newValidator()

	t.Run("Should use Indonesian labels", func(t *testing.T) {
		f := validForm()
		f.PasswordConfirmation = "lain"
		f.WorkHoursStart = "25:00"

		err := v.Struct(f)
		require.Error(t, err)

		messages := validation.FormatValidationErrors(err)
		assert.Contains(t, messages, "Konfirmasi kata sandi tidak sesuai")
		assert.Contains(t, messages, "Jam Kerja Awal: Format jam tidak valid (JJ:MM)")
	})

	t.Run("Should fall back to the error text", func(t *testing.T) {
		assert.Equal(t, []string{"boom"}, validation.FormatValidationErrors(errors.New("boom")))
	})
}
