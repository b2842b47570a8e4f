package serverutils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the struct tag validators on a request body.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
