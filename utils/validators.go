package utils

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator used for request bodies. Field names in
// its errors are the json names of the struct fields.
var Validate = NewValidator()

func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("unset", isUnset); err != nil {
		panic(err)
	}
	return v
}

// isUnset passes for zero values and for raw JSON that is missing or null
func isUnset(fl validator.FieldLevel) bool {
	if raw, ok := fl.Field().Interface().(json.RawMessage); ok {
		trimmed := bytes.TrimSpace(raw)
		return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
	}
	return fl.Field().IsZero()
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
