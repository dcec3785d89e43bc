package accounts

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"account-service/internal/dto"
	"account-service/internal/model"
	"account-service/internal/service"

	"github.com/labstack/echo/v4"
)

// Service 為 handler 依賴的帳號操作，*service.AccountService 直接實作
type Service interface {
	Signup(ctx context.Context, username, email, password string) (*model.User, error)
	Signin(ctx context.Context, email, password string) (*model.User, error)
	RegisterWithAddress(ctx context.Context, in service.RegisterInput) (int, error)
	GetUser(ctx context.Context, id int) (*model.User, error)
	GetAddress(ctx context.Context, userID int) (*model.Address, error)
	GetUserDetails(ctx context.Context, userID int) (*model.UserDetails, error)
}

const (
	msgInvalidBody        = "invalid request body"
	msgInvalidUserID      = "invalid user ID"
	msgConflict           = "Username or email already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgUnavailable        = "Service temporarily unavailable"
)

// failure 描述單一路由在 not found 與非預期錯誤時的訊息
type failure struct {
	notFound string
	internal string
}

// errorResponse 將 service 錯誤一次性對應為 HTTP 回應
func errorResponse(c echo.Context, err error, f failure) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: verr.Msg})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, dto.ErrorResponse{Error: msgConflict})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: msgInvalidCredentials})
	case errors.Is(err, service.ErrNotFound) && f.notFound != "":
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: f.notFound})
	case errors.Is(err, service.ErrUnavailable):
		return c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: msgUnavailable})
	default:
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: f.internal})
	}
}

// bindValid 解析 JSON body 並做必填檢查；失敗時已寫出 400 回應並回傳 false
func bindValid(c echo.Context, req any, requiredMsg string) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidBody})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: requiredMsg})
	}
	return true, nil
}

func userID(c echo.Context) (int, bool) {
	// users.id 為 int4，超出範圍的值直接視為無效
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int(id), true
}
