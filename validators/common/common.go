package commonValidator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs validator tags over reqData and flattens failures
// into a field -> message map for the 422 envelope. Nil means valid.
func ValidateStruct(reqData interface{}) map[string]string {
	err := validate.Struct(reqData)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["request"] = "Invalid request data!"
		return errors
	}
	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			errors[field] = field + " is required!"
		case "email":
			errors[field] = field + " must be a valid email address!"
		case "min":
			errors[field] = field + " must be at least " + fieldErr.Param() + " characters long!"
		case "max":
			errors[field] = field + " must be at most " + fieldErr.Param() + "!"
		case "gte":
			errors[field] = field + " must be at least " + fieldErr.Param() + "!"
		case "lte":
			errors[field] = field + " must be at most " + fieldErr.Param() + "!"
		case "oneof":
			errors[field] = field + " must be one of: " + fieldErr.Param() + "!"
		default:
			errors[field] = field + " is invalid!"
		}
	}
	return errors
}
