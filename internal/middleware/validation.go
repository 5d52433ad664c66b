package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jaeho/gongu/internal/app/models"
)

// RegisterCustomValidators adds the domain enum validators to gin's binding
// engine. Tags: jointype, contenttype, paystatus.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("jointype", func(fl validator.FieldLevel) bool {
		return models.JoinType(fl.Field().String()).Valid()
	})
	v.RegisterValidation("contenttype", func(fl validator.FieldLevel) bool {
		return models.ContentType(fl.Field().String()).Valid()
	})
	v.RegisterValidation("paystatus", func(fl validator.FieldLevel) bool {
		return models.PaymentStatus(fl.Field().String()).Valid()
	})
}
