// File: internal/model/address.go
package model

import "time"

type Address struct {
	ID        int       `db:"id" json:"-"`
	UserID    int       `db:"user_id" json:"-"`
	City      string    `db:"city" json:"city"`
	Country   string    `db:"country" json:"country"`
	Street    string    `db:"street" json:"street"`
	Pincode   string    `db:"pincode" json:"pincode"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AddressInput 建立地址時由呼叫端提供的欄位
type AddressInput struct {
	City    string
	Country string
	Street  string
	Pincode string
}

// UserDetails 為 users INNER JOIN addresses 的結果
type UserDetails struct {
	User    User
	Address Address
}
