package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
)

// validCurrency reports whether the field holds a supported currency code.
var validCurrency validator.Func = func(fl validator.FieldLevel) bool {
	_, ok := domain.ParseCurrency(fl.Field().String())
	return ok
}

// registerCustomValidators wires domain-aware binding validations into gin's
// validator engine. Safe to call more than once.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency", validCurrency)
	}
}
