// File: internal/service/password.go
package service

import (
	"context"
	"errors"
	"fmt"

	"account-service/internal/worker"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt 只使用前 72 bytes，超過的密碼直接拒絕而不是默默截斷
const maxPasswordBytes = 72

var (
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
	ErrEmptyPassword   = errors.New("password is empty")
)

// 測試替換用
var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// Hasher 產生與驗證密碼雜湊
type Hasher interface {
	Hash(ctx context.Context, plain string) (string, error)
	// Verify 對空的 hash 仍會做一次比對，讓未知帳號與錯誤密碼花費相同時間
	Verify(ctx context.Context, plain, hash string) bool
}

// BcryptHasher 在 worker pool 上執行 bcrypt；pool 為 nil 時直接在呼叫端 goroutine 執行
type BcryptHasher struct {
	cost  int
	pool  worker.Pool
	decoy []byte
}

func NewBcryptHasher(cost int, pool worker.Pool) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	decoy, err := bcryptGenerateFromPassword([]byte("decoy-password-for-unknown-accounts"), cost)
	if err != nil {
		return nil, fmt.Errorf("generate decoy hash: %w", err)
	}
	return &BcryptHasher{cost: cost, pool: pool, decoy: decoy}, nil
}

// Hash 接收明文密碼，回傳 bcrypt 哈希字串
func (h *BcryptHasher) Hash(ctx context.Context, plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	if len(plain) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	var (
		hashBytes []byte
		err       error
	)
	if runErr := h.run(ctx, func() {
		hashBytes, err = bcryptGenerateFromPassword([]byte(plain), h.cost)
	}); runErr != nil {
		return "", runErr
	}
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hashBytes), nil
}

// Verify 比對明文密碼與 bcrypt 哈希；格式錯誤的 hash 一律視為不符
func (h *BcryptHasher) Verify(ctx context.Context, plain, hash string) bool {
	target := []byte(hash)
	if hash == "" {
		target = h.decoy
	}

	var err error
	if runErr := h.run(ctx, func() {
		err = bcryptCompareHashAndPassword(target, []byte(plain))
	}); runErr != nil {
		return false
	}
	return err == nil && hash != "" && plain != "" && len(plain) <= maxPasswordBytes
}

func (h *BcryptHasher) run(ctx context.Context, fn func()) error {
	if h.pool == nil {
		fn()
		return ctx.Err()
	}
	return worker.Do(ctx, h.pool, fn)
}
