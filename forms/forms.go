package forms

import (
	stdErrors "errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"

// NonFieldErrorsKey holds errors not tied to a single form field.
const NonFieldErrorsKey = "__all__"

// FieldErrors maps a form field name to its error message.
type FieldErrors map[string]string

func (e FieldErrors) Add(field, message string) {

	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}

// Bind fills form from the request body and runs its binding rules.
func Bind(ctx *gin.Context, form any) FieldErrors {

	fieldErrors := FieldErrors{}

	err := ctx.ShouldBind(form)
	if err == nil {
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !stdErrors.As(err, &validationErrors) {
		fieldErrors.Add(NonFieldErrorsKey, err.Error())
		return fieldErrors
	}

	for _, fieldError := range validationErrors {
		fieldErrors.Add(formFieldName(form, fieldError.StructField()), message(fieldError))
	}

	return fieldErrors
}

func message(fieldError validator.FieldError) string {

	switch fieldError.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fieldError.Param())
	case "len":
		return fmt.Sprintf("Ensure this value has exactly %s characters.", fieldError.Param())
	case "datetime":
		return "Enter a valid date."
	default:
		return "Enter a valid value."
	}
}

func formFieldName(form any, structField string) string {

	formType := reflect.TypeOf(form)
	for formType.Kind() == reflect.Pointer {
		formType = formType.Elem()
	}

	field, ok := formType.FieldByName(structField)
	if !ok {
		return structField
	}

	name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
	if name == "" {
		return structField
	}

	return name
}

func Today(now time.Time) time.Time {

	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t *time.Time) string {

	if t == nil {
		return ""
	}

	return t.Format(DateLayout)
}

// ParseOptionalDate returns nil for an empty value.
func ParseOptionalDate(value string) (*time.Time, error) {

	if value == "" {
		return nil, nil
	}

	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, err
	}

	return &parsed, nil
}
