package auth

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
)

var (
	roleTag  = "role"
	roleText = "invalid role"
)

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(validate, translator, roleTag, roleText)
}

func roleValidation(fl validator.FieldLevel) bool {
	return Role(fl.Field().String()).Valid()
}
