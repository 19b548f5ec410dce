package req

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator сообщает об ошибках по именам полей из json-тегов
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Decode декодирует JSON из io.Reader в структуру типа T.
// Пустое тело декодируется в нулевое значение T.
func Decode[T any](body io.Reader) (T, error) {
	var payload T
	if body == nil {
		return payload, nil
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		return payload, err
	}
	return payload, nil
}

// IsValid валидирует структуру типа T по тегам validate.
func IsValid[T any](payload T) error {
	return validate.Struct(payload)
}

// IsTypeMismatch сообщает, что поле пришло с неверным JSON-типом или тело не является JSON
func IsTypeMismatch(err error) bool {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	return errors.As(err, &typeErr) || errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF)
}

// MissingFields возвращает имена полей, не прошедших проверку required
func MissingFields(err error) []string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}
	fields := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		if fe.Tag() == "required" {
			fields = append(fields, fe.Field())
		}
	}
	return fields
}
