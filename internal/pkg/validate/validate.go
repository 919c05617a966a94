// Package validate traduz as tags `validate` dos payloads em ValidationError.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperror "posstock/internal/errors"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		// Usa o nome JSON do campo nas mensagens, que é o que o cliente enviou.
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return instance
}

// Struct valida v e devolve um *ValidationError listando os campos inválidos.
func Struct(v interface{}) error {
	err := get().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.NewInternalError("Falha ao validar payload.", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return apperror.NewValidationError(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s deve ser um de [%s]", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s deve ser um email válido", fe.Field())
	case "gt":
		return fmt.Sprintf("%s deve ser maior que %s", fe.Field(), fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s deve ser no mínimo %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s excede o limite de %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s falhou na regra %s", fe.Field(), fe.Tag())
	}
}
