package accounts

import (
	"net/http"

	"account-service/internal/dto"
	"account-service/internal/service"

	"github.com/labstack/echo/v4"
)

// @Summary     Sign up
// @Description 建立新帳號，密碼以 bcrypt 雜湊後儲存
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       body body     dto.SignupRequest true "帳號資料"
// @Success     201  {object} dto.AuthResponse
// @Failure     400  {object} dto.ErrorResponse
// @Failure     409  {object} dto.ErrorResponse "使用者名稱或 Email 已存在"
// @Failure     500  {object} dto.ErrorResponse
// @Failure     503  {object} dto.ErrorResponse
// @Router      /signup [post]
func SignupHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.SignupRequest
		if ok, err := bindValid(c, &req, service.MsgSignupRequired); !ok {
			return err
		}

		user, err := svc.Signup(c.Request().Context(), req.Username, req.Email, req.Password)
		if err != nil {
			return errorResponse(c, err, failure{internal: "Error registering user"})
		}

		return c.JSON(http.StatusCreated, dto.AuthResponse{
			Message: "User registered",
			User:    dto.NewUserSummary(user),
		})
	}
}

// @Summary     Sign in
// @Description 以 Email 與密碼登入；帳號不存在與密碼錯誤回傳相同的 401
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       body body     dto.SigninRequest true "登入資料"
// @Success     200  {object} dto.AuthResponse
// @Failure     400  {object} dto.ErrorResponse
// @Failure     401  {object} dto.ErrorResponse
// @Failure     500  {object} dto.ErrorResponse
// @Failure     503  {object} dto.ErrorResponse
// @Router      /signin [post]
func SigninHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.SigninRequest
		if ok, err := bindValid(c, &req, service.MsgSigninRequired); !ok {
			return err
		}

		user, err := svc.Signin(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return errorResponse(c, err, failure{internal: "Error during sign-in"})
		}

		return c.JSON(http.StatusOK, dto.AuthResponse{
			Message: "Sign-in successful",
			User:    dto.NewUserSummary(user),
		})
	}
}
