package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// 欄位上限與資料表欄位長度一致；超過時拒絕而不截斷
type signupInput struct {
	Username string `validate:"required,max=50"`
	Email    string `validate:"required,max=255"`
	Password string `validate:"required,max=72"`
}

type signinInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// RegisterInput 為 RegisterWithAddress 的完整輸入
type RegisterInput struct {
	Username string `validate:"required,max=50"`
	Email    string `validate:"required,max=255"`
	Password string `validate:"required,max=72"`
	City     string `validate:"required,max=100"`
	Country  string `validate:"required,max=100"`
	Street   string `validate:"required,max=255"`
	Pincode  string `validate:"required,max=20"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkInput 將 validator 的錯誤轉為 ValidationError；required 失敗統一使用 requiredMsg
func checkInput(in any, requiredMsg string) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return invalid(requiredMsg)
		}
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	if field == "password" {
		return invalid("password must be at most 72 bytes")
	}
	return invalid(fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
}
