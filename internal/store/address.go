// File: internal/store/address.go
package store

import (
	"context"
	"fmt"

	"account-service/internal/database"
	"account-service/internal/model"

	"github.com/jackc/pgx/v5"
)

// CreateUserWithAddress 在同一交易內依序寫入 user 與 address，任一步失敗即整筆 rollback
func (s *AccountStore) CreateUserWithAddress(ctx context.Context, username, email, passwordHash string, addr model.AddressInput) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var userID int
	err := database.WithTx(ctx, s.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO users (username, email, password)
			 VALUES ($1, $2, $3)
			 RETURNING id`,
			username,
			email,
			passwordHash,
		).Scan(&userID); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO addresses (user_id, city, country, street, pincode)
			 VALUES ($1, $2, $3, $4, $5)`,
			userID,
			addr.City,
			addr.Country,
			addr.Street,
			addr.Pincode,
		); err != nil {
			return fmt.Errorf("insert address: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("CreateUserWithAddress: %w", classify(err))
	}
	return userID, nil
}

// FindAddressByUserID 一個使用者可能有多筆地址，回傳最新的一筆
func (s *AccountStore) FindAddressByUserID(ctx context.Context, userID int) (*model.Address, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRow(ctx,
		`SELECT id, user_id, city, country, street, pincode, created_at
		 FROM addresses WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`,
		userID,
	)
	a := &model.Address{}
	if err := row.Scan(&a.ID, &a.UserID, &a.City, &a.Country, &a.Street, &a.Pincode, &a.CreatedAt); err != nil {
		return nil, fmt.Errorf("FindAddressByUserID: %w", classify(err))
	}
	return a, nil
}

// FindUserWithAddress 為 INNER JOIN：沒有地址的使用者同樣回傳 ErrNotFound
func (s *AccountStore) FindUserWithAddress(ctx context.Context, userID int) (*model.UserDetails, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRow(ctx,
		`SELECT u.id, u.username, u.email, u.created_at,
		        a.id, a.city, a.country, a.street, a.pincode, a.created_at
		 FROM users u
		 INNER JOIN addresses a ON u.id = a.user_id
		 WHERE u.id = $1
		 ORDER BY a.created_at DESC, a.id DESC
		 LIMIT 1`,
		userID,
	)
	d := &model.UserDetails{}
	if err := row.Scan(
		&d.User.ID,
		&d.User.Username,
		&d.User.Email,
		&d.User.CreatedAt,
		&d.Address.ID,
		&d.Address.City,
		&d.Address.Country,
		&d.Address.Street,
		&d.Address.Pincode,
		&d.Address.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("FindUserWithAddress: %w", classify(err))
	}
	d.Address.UserID = d.User.ID
	return d, nil
}
