// file: internals/helpers/validation.go
package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var Validate = validator.New()

// ValidateStruct memvalidasi sebuah request DTO dan mengembalikan
// map field→pesan siap kirim ke JsonValidationError. nil = lolos.
func ValidateStruct(v any) map[string][]string {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}
	out := map[string][]string{}
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			field := strings.ToLower(fe.Field())
			out[field] = append(out[field], fe.Tag())
		}
		return out
	}
	out["_"] = []string{err.Error()}
	return out
}

// IsUniqueViolation mendeteksi unique violation Postgres (kode "23505").
// String fallback, kompatibel untuk lib/pq & pgx yang dibungkus.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "23505")
}
