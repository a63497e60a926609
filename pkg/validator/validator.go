package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError error estructurado de validación de un campo.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

var validate = validator.New()

// ValidateStruct valida las tags `validate` de un struct y devuelve la lista
// de errores de campo. Lista vacía = struct válido.
func ValidateStruct(data interface{}) []FieldError {
	var fieldErrors []FieldError
	err := validate.Struct(data)
	if err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			fieldErrors = append(fieldErrors, FieldError{
				Field: fe.Field(),
				Tag:   fe.Tag(),
				Param: fe.Param(),
			})
		}
	}
	return fieldErrors
}

// Describe resume una lista de errores de campo en un mensaje legible,
// pensado para el Message de las respuestas de error HTTP.
func Describe(errs []FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Param != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", e.Field, e.Tag, e.Param))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Tag))
	}
	return strings.Join(parts, "; ")
}
