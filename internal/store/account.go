// File: internal/store/account.go
package store

import (
	"context"
	"fmt"
	"time"

	"account-service/internal/database"
	"account-service/internal/model"
)

// AccountStore 持有 users / addresses 兩張表的讀寫；連線池由呼叫端注入並管理生命週期
type AccountStore struct {
	db      database.DB
	timeout time.Duration
}

func NewAccountStore(db database.DB, timeout time.Duration) *AccountStore {
	return &AccountStore{db: db, timeout: timeout}
}

// 每個操作都套用上限逾時，逾時歸類為 ErrUnavailable
func (s *AccountStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *AccountStore) CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u := &model.User{Username: username, Email: email}
	row := s.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		username,
		email,
		passwordHash,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", classify(err))
	}
	return u, nil
}

func (s *AccountStore) FindUserByID(ctx context.Context, id int) (*model.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRow(ctx,
		`SELECT id, username, email, created_at
		 FROM users WHERE id = $1`,
		id,
	)
	u := &model.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("FindUserByID: %w", classify(err))
	}
	return u, nil
}

// FindUserByEmail 連同密碼雜湊一起回傳，僅供登入驗證
func (s *AccountStore) FindUserByEmail(ctx context.Context, email string) (*model.UserWithHash, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRow(ctx,
		`SELECT id, username, email, password, created_at
		 FROM users WHERE email = $1`,
		email,
	)
	u := &model.UserWithHash{}
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("FindUserByEmail: %w", classify(err))
	}
	return u, nil
}
