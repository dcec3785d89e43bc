// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"account-service/internal/cache"
	"account-service/internal/database"
	"account-service/internal/handler"
	"account-service/internal/handler/accounts"
)

// Setup 註冊所有路由；rdb 為 nil 時健康檢查略過 Redis
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, svc accounts.Service) {
	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(db, rdb))

	// 註冊與登入
	api.POST("/signup", accounts.SignupHandler(svc))
	api.POST("/signin", accounts.SigninHandler(svc))

	// 使用者與地址
	apiUsers := api.Group("/users")
	apiUsers.POST("", accounts.RegisterWithAddressHandler(svc))
	apiUsers.GET("/:id", accounts.GetUserHandler(svc))
	apiUsers.GET("/:id/address", accounts.GetAddressHandler(svc))
	apiUsers.GET("/:id/details", accounts.GetUserDetailsHandler(svc))

	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
