// File: internal/model/user.go
package model

import "time"

// User 對外公開的使用者欄位，不含密碼雜湊
type User struct {
	ID        int       `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// UserWithHash 僅供登入驗證使用，不可跨出 service 邊界
type UserWithHash struct {
	User
	PasswordHash string `db:"password" json:"-"`
}
