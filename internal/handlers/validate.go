package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Werneck0live/simulador-trabalhista/internal/utils"
)

var validate = newValidator()

// os erros usam o nome do campo no JSON, não o do struct
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// aceita com ou sem máscara, confere os dígitos verificadores
	_ = v.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool {
		return utils.ValidateCNPJ(utils.DigitsOnly(fl.Field().String()))
	})
	return v
}

// validateDTO reports the first failing field in a user-facing form.
func validateDTO(dto any) error {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.New("invalid input")
	}
	e := verrs[0]
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s is required", e.Field())
	case "min", "max":
		return fmt.Errorf("%s must be between 1 and 30", e.Field())
	case "datetime":
		return fmt.Errorf("%s must be a date in the format %s", e.Field(), e.Param())
	default:
		return fmt.Errorf("%s is invalid", e.Field())
	}
}

// formatDecodeError deixa a mensagem de campo desconhecido legível
func formatDecodeError(err error) string {
	msg := err.Error()
	if strings.HasPrefix(msg, "json: unknown field ") {
		return "unknown field " + strings.TrimPrefix(msg, "json: unknown field ")
	}
	return "invalid json: " + msg
}
