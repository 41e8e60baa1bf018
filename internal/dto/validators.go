package dto

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidations installs decimal-aware rules into gin's binding
// engine. It must run once before any route binds a request using them.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("decimalgtzero", decimalGTZero)
}

// decimalGTZero validates that a decimal.Decimal field is strictly positive.
// Amounts are magnitudes; direction comes from the operation, never a sign.
func decimalGTZero(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && d.GreaterThan(decimal.Zero)
}
