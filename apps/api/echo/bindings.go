package echoapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Username = core.CleanString(lr.Username, true /* lower */)
	return validate.Struct(lr)
}

type LoginResponse struct {
	Token string `json:"token"`
}

type SuccessResponse struct {
	Success string `json:"success"`
}
