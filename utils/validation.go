package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormErrorKey holds errors that do not belong to a single field.
const FormErrorKey = "_form"

// FieldErrors turns a binding error into messages keyed by the form field
// name (the `form` tag of the bound struct).
func FieldErrors(err error, form any) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out[FormErrorKey] = "Some fields could not be read: " + err.Error()
		return out
	}

	t := reflect.TypeOf(form)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for _, fe := range verrs {
		name := fe.Field()
		if t != nil && t.Kind() == reflect.Struct {
			if sf, ok := t.FieldByName(fe.StructField()); ok {
				if tag := strings.Split(sf.Tag.Get("form"), ",")[0]; tag != "" && tag != "-" {
					name = tag
				}
			}
		}
		if _, exists := out[name]; !exists {
			out[name] = message(fe)
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "eqfield":
		return "Field must be equal to " + strings.ToLower(fe.Param()) + "."
	case "oneof":
		return "Not a valid choice."
	case "numeric":
		return "Not a valid decimal value."
	case "datetime":
		return "Not a valid date or time value."
	case "min", "gte":
		if isString {
			return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
		}
		return fmt.Sprintf("Number must be at least %s.", fe.Param())
	case "max", "lte":
		if isString {
			return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Number must be at most %s.", fe.Param())
	default:
		return "Invalid value."
	}
}
