package http

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type styleReq struct {
	Style string `json:"style" validate:"required,oneof=professional modern creative minimal"`
}

type updateReq struct {
	Field string      `json:"field" validate:"required"`
	Value interface{} `json:"value"`
}

// addSkillReq is optional; an empty body adds a blank skill at the default
// level.
type addSkillReq struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Level    int    `json:"level" validate:"omitempty,min=1,max=5"`
}

type listReq struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=500"`
}
