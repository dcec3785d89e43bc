// File: internal/dto/account_response.go
package dto

import (
	"time"

	"account-service/internal/model"
)

// UserSummary 註冊與登入回應中的使用者欄位
type UserSummary struct {
	ID       int    `json:"id" example:"1"`
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
}

// swagger:model dto.AuthResponse
type AuthResponse struct {
	Message string      `json:"message" example:"Sign-in successful"`
	User    UserSummary `json:"user"`
}

// swagger:model dto.RegisterResponse
type RegisterResponse struct {
	Message string `json:"message" example:"User and address registered"`
	ID      int    `json:"id" example:"1"`
}

// swagger:model dto.UserResponse
type UserResponse struct {
	ID        int       `json:"id" example:"1"`
	Username  string    `json:"username" example:"alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	CreatedAt time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
}

// swagger:model dto.AddressResponse
type AddressResponse struct {
	City      string    `json:"city" example:"Pune"`
	Country   string    `json:"country" example:"India"`
	Street    string    `json:"street" example:"MG Road 12"`
	Pincode   string    `json:"pincode" example:"411001"`
	CreatedAt time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
}

// UserDetailsResponse 攤平 user 與 address，地址建立時間另以 address_created_at 表示
// swagger:model dto.UserDetailsResponse
type UserDetailsResponse struct {
	ID               int       `json:"id" example:"1"`
	Username         string    `json:"username" example:"alice"`
	Email            string    `json:"email" example:"alice@example.com"`
	CreatedAt        time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
	City             string    `json:"city" example:"Pune"`
	Country          string    `json:"country" example:"India"`
	Street           string    `json:"street" example:"MG Road 12"`
	Pincode          string    `json:"pincode" example:"411001"`
	AddressCreatedAt time.Time `json:"address_created_at" example:"2025-05-01T15:04:05Z"`
}

func NewUserSummary(u *model.User) UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}

func NewAddressResponse(a *model.Address) AddressResponse {
	return AddressResponse{
		City:      a.City,
		Country:   a.Country,
		Street:    a.Street,
		Pincode:   a.Pincode,
		CreatedAt: a.CreatedAt,
	}
}

func NewUserDetailsResponse(d *model.UserDetails) UserDetailsResponse {
	return UserDetailsResponse{
		ID:               d.User.ID,
		Username:         d.User.Username,
		Email:            d.User.Email,
		CreatedAt:        d.User.CreatedAt,
		City:             d.Address.City,
		Country:          d.Address.Country,
		Street:           d.Address.Street,
		Pincode:          d.Address.Pincode,
		AddressCreatedAt: d.Address.CreatedAt,
	}
}
