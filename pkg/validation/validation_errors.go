package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly Indonesian labels
var FieldLabels = map[string]string{
	// Auth fields
	"Username":             "Nama Pengguna",
	"Password":             "Kata Sandi",
	"PasswordConfirmation": "Konfirmasi Kata Sandi",
	"Role":                 "Peran",
	"Answer":               "Jawaban",

	// Profile fields
	"Name":          "Nama",
	"BirthPlace":    "Tempat Lahir",
	"BirthDate":     "Tanggal Lahir",
	"Address":       "Alamat",
	"LastEducation": "Pendidikan Terakhir",

	// Job fields
	"Preferences":    "Preferensi",
	"Requirements":   "Syarat",
	"Salary":         "Gaji",
	"WorkHoursStart": "Jam Kerja Awal",
	"WorkHoursEnd":   "Jam Kerja Akhir",
	"WorkDaysStart":  "Hari Kerja Awal",
	"WorkDaysEnd":    "Hari Kerja Akhir",
	"Rating":         "Rating",

	"Content": "Testimoni",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	tag := e.Tag()
	param := e.Param()

	switch tag {
	case "required", "required_without", "required_with":
		return fmt.Sprintf("%s: Wajib diisi", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: Minimal %s karakter", label, param)
		}
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s: Pilih minimal %s", label, param)
		}
		return fmt.Sprintf("%s: Minimal %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: Maksimal %s karakter", label, param)
		}
		return fmt.Sprintf("%s: Maksimal %s", label, param)

	case "gt":
		return fmt.Sprintf("%s: Harus lebih dari %s", label, param)

	case "datetime":
		return fmt.Sprintf("%s: Format tanggal tidak valid (YYYY-MM-DD)", label)

	case "valid_name":
		return fmt.Sprintf("%s: Hanya boleh huruf, spasi, dan tanda baca umum (. ' - /)", label)

	case "no_emoji":
		return fmt.Sprintf("%s: Tidak boleh mengandung emoji atau simbol khusus", label)

	case "clock":
		return fmt.Sprintf("%s: Format jam tidak valid (JJ:MM)", label)

	case "role":
		return fmt.Sprintf("%s: Harus salah satu dari: Pencari Kerja, Penyedia Kerja", label)

	case "education":
		return fmt.Sprintf("%s: Harus salah satu dari: SD, SMP, SMA, Diploma", label)

	case "eqfield":
		if e.Field() == "PasswordConfirmation" {
			return "Konfirmasi kata sandi tidak sesuai"
		}
		return fmt.Sprintf("%s: Harus sama dengan %s", label, getFieldLabel(param))

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s: Validasi gagal (%s)", label, tag)
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
