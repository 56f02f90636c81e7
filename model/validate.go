package model

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/leeigin12-coder/Viscosity/glass"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// 错误信息中使用 json 字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("oxide", func(fl validator.FieldLevel) bool {
		_, ok := glass.ParseOxide(fl.Field().String())
		return ok
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidateStruct 按 validate 标签校验请求
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, formatFieldError(e))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return err
}

func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "oxide":
		return fmt.Sprintf("%s: unknown oxide %q", field, e.Value())
	case "uuid":
		return fmt.Sprintf("%s must be a uuid", field)
	case "gte", "gt":
		return fmt.Sprintf("%s must be %s %s", field, map[string]string{"gte": ">=", "gt": ">"}[e.Tag()], e.Param())
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", field, strings.ToLower(e.Param()))
	case "min", "max":
		return fmt.Sprintf("%s must have %s %s items", field, map[string]string{"min": "at least", "max": "at most"}[e.Tag()], e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
