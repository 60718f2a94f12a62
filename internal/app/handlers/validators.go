package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations installs the binding validations used by the
// payload structs. Safe to call more than once.
func RegisterCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("national_id", validNationalID)
	}
}

// validNationalID accepts an 11-digit national ID (CPF format). Checksum
// verification is the identity bureau's job; this only rejects garbage
// before a downstream call is wasted on it.
func validNationalID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if len(id) != 11 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
