// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"account-service/internal/cache"
	"account-service/internal/database"
	"account-service/internal/dto"

	"github.com/labstack/echo/v4"
)

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

const pingKey = "health:ping"

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫連線與（若有設定）Redis 是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     500 {object} dto.ErrorResponse
// @Router      /ping [get]
func PingHandler(db database.DB, c cache.Cache) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		reqCtx := ctx.Request().Context()
		if err := db.Ping(reqCtx); err != nil {
			return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "database unhealthy"})
		}
		// Redis 為選用元件，未設定時略過
		if c != nil {
			if err := c.Set(reqCtx, pingKey, "pong", 10*time.Second).Err(); err != nil {
				return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "cache unhealthy"})
			}
		}
		return ctx.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
