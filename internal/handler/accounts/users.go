package accounts

import (
	"net/http"

	"account-service/internal/dto"
	"account-service/internal/service"

	"github.com/labstack/echo/v4"
)

// @Summary     Register user with address
// @Description 在同一交易內建立使用者與地址，任一步失敗都不會留下資料
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     dto.RegisterRequest true "使用者與地址"
// @Success     201  {object} dto.RegisterResponse
// @Failure     400  {object} dto.ErrorResponse
// @Failure     409  {object} dto.ErrorResponse
// @Failure     500  {object} dto.ErrorResponse
// @Failure     503  {object} dto.ErrorResponse
// @Router      /users [post]
func RegisterWithAddressHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RegisterRequest
		if ok, err := bindValid(c, &req, service.MsgRegisterRequired); !ok {
			return err
		}

		id, err := svc.RegisterWithAddress(c.Request().Context(), service.RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			City:     req.City,
			Country:  req.Country,
			Street:   req.Street,
			Pincode:  req.Pincode,
		})
		if err != nil {
			return errorResponse(c, err, failure{internal: "Error registering user"})
		}

		return c.JSON(http.StatusCreated, dto.RegisterResponse{
			Message: "User and address registered",
			ID:      id,
		})
	}
}

// @Summary     Get a user by ID
// @Description 回傳使用者公開資料，不含密碼雜湊
// @Tags        users
// @Produce     json
// @Param       id  path     int true "使用者 ID"
// @Success     200 {object} dto.UserResponse
// @Failure     400 {object} dto.ErrorResponse "參數錯誤"
// @Failure     404 {object} dto.ErrorResponse "使用者不存在"
// @Failure     500 {object} dto.ErrorResponse "伺服器錯誤"
// @Router      /users/{id} [get]
func GetUserHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := userID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidUserID})
		}
		user, err := svc.GetUser(c.Request().Context(), id)
		if err != nil {
			return errorResponse(c, err, failure{notFound: "User not found", internal: "Error fetching user"})
		}
		return c.JSON(http.StatusOK, dto.NewUserResponse(user))
	}
}

// @Summary     Get a user's address
// @Description 回傳使用者最新的一筆地址
// @Tags        users
// @Produce     json
// @Param       id  path     int true "使用者 ID"
// @Success     200 {object} dto.AddressResponse
// @Failure     400 {object} dto.ErrorResponse
// @Failure     404 {object} dto.ErrorResponse
// @Failure     500 {object} dto.ErrorResponse
// @Router      /users/{id}/address [get]
func GetAddressHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := userID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidUserID})
		}
		addr, err := svc.GetAddress(c.Request().Context(), id)
		if err != nil {
			return errorResponse(c, err, failure{notFound: "Address not found for user", internal: "Error fetching address"})
		}
		return c.JSON(http.StatusOK, dto.NewAddressResponse(addr))
	}
}

// @Summary     Get user with address
// @Description 使用者資料與地址合併回傳；沒有地址的使用者視為不存在
// @Tags        users
// @Produce     json
// @Param       id  path     int true "使用者 ID"
// @Success     200 {object} dto.UserDetailsResponse
// @Failure     400 {object} dto.ErrorResponse
// @Failure     404 {object} dto.ErrorResponse
// @Failure     500 {object} dto.ErrorResponse
// @Router      /users/{id}/details [get]
func GetUserDetailsHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := userID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidUserID})
		}
		details, err := svc.GetUserDetails(c.Request().Context(), id)
		if err != nil {
			return errorResponse(c, err, failure{notFound: "User or address not found", internal: "Internal server error"})
		}
		return c.JSON(http.StatusOK, dto.NewUserDetailsResponse(details))
	}
}
