package handlers

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

// registerValidators teaches gin's validator about decimal.Decimal fields.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			slog.Warn("Gin validator engine is not go-playground/validator; decimal rules disabled")
			return
		}

		// Validate decimals through their canonical string form.
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})

		if err := v.RegisterValidation("decimal_gte0", decimalGTE0); err != nil {
			slog.Error("Failed to register decimal_gte0 validator", slog.String("error", err.Error()))
		}
		if err := v.RegisterValidation("decimal_gt0", decimalGT0); err != nil {
			slog.Error("Failed to register decimal_gt0 validator", slog.String("error", err.Error()))
		}
	})
}

// decimalGTE0 accepts decimal values that are zero or positive.
func decimalGTE0(fl validator.FieldLevel) bool {
	switch val := fl.Field().Interface().(type) {
	case decimal.Decimal:
		return !val.IsNegative()
	case string:
		d, err := decimal.NewFromString(val)
		return err == nil && !d.IsNegative()
	default:
		return false
	}
}

// decimalGT0 accepts strictly positive decimal values.
func decimalGT0(fl validator.FieldLevel) bool {
	switch val := fl.Field().Interface().(type) {
	case decimal.Decimal:
		return val.IsPositive()
	case string:
		d, err := decimal.NewFromString(val)
		return err == nil && d.IsPositive()
	default:
		return false
	}
}
