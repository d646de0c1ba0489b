package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/bp4sp4/korhrd-landing/internal/intake"
)

// RegisterValidators 注册自定义 binding 标签
//   - course:    희망과정枚举
//   - education: 최종학력枚举
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("course", func(fl validator.FieldLevel) bool {
		return intake.IsCourse(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("education", func(fl validator.FieldLevel) bool {
		return intake.IsEducationLevel(fl.Field().String())
	})
}
