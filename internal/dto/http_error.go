// File: internal/dto/http_error.go
package dto

// ErrorResponse 全域錯誤響應模型
// swagger:model dto.ErrorResponse
type ErrorResponse struct {
	// error 錯誤描述
	Error string `json:"error" example:"User not found"`
}
