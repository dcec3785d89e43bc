// File: internal/dto/account_request.go
package dto

// swagger:model dto.SignupRequest
type SignupRequest struct {
	Username string `json:"username" validate:"required" example:"alice"`
	Email    string `json:"email" validate:"required" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"Secret123!"`
}

// swagger:model dto.SigninRequest
type SigninRequest struct {
	Email    string `json:"email" validate:"required" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"Secret123!"`
}

// RegisterRequest 建立使用者並同時寫入一筆地址
// swagger:model dto.RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" validate:"required" example:"alice"`
	Email    string `json:"email" validate:"required" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"Secret123!"`
	City     string `json:"city" validate:"required" example:"Pune"`
	Country  string `json:"country" validate:"required" example:"India"`
	Street   string `json:"street" validate:"required" example:"MG Road 12"`
	Pincode  string `json:"pincode" validate:"required" example:"411001"`
}
