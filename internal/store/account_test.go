// File: internal/store/account_test.go
package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"account-service/internal/database"
	"account-service/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

/* ---------- 假實作 ---------- */

// fakeRow 依 dest 數量填值：
// 1 → CreateUserWithAddress (id)
// 2 → CreateUser (id, created_at)
// 4 → FindUserByID
// 5 → FindUserByEmail
type fakeRow struct {
	scanErr error
	user    *model.UserWithHash
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	u := r.user
	switch len(dest) {
	case 1:
		*dest[0].(*int) = u.ID
	case 2:
		*dest[0].(*int) = u.ID
		*dest[1].(*time.Time) = u.CreatedAt
	case 4:
		*dest[0].(*int) = u.ID
		*dest[1].(*string) = u.Username
		*dest[2].(*string) = u.Email
		*dest[3].(*time.Time) = u.CreatedAt
	case 5:
		*dest[0].(*int) = u.ID
		*dest[1].(*string) = u.Username
		*dest[2].(*string) = u.Email
		*dest[3].(*string) = u.PasswordHash
		*dest[4].(*time.Time) = u.CreatedAt
	default:
		panic("fakeRow.Scan: unexpected dest count")
	}
	return nil
}

func rowDB(row pgx.Row, gotArgs *[]any) *database.FakeDB {
	return &database.FakeDB{
		QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			if gotArgs != nil {
				*gotArgs = args
			}
			return row
		},
	}
}

/* ---------- 測試 ---------- */

func TestAccountStoreUsers(t *testing.T) {
	now := time.Now().UTC()
	sample := &model.UserWithHash{
		User:         model.User{ID: 7, Username: "alice", Email: "alice@x.com", CreatedAt: now},
		PasswordHash: "$2a$10$hash",
	}

	t.Run("CreateUser success", func(t *testing.T) {
		var args []any
		s := NewAccountStore(rowDB(&fakeRow{user: sample}, &args), time.Second)
		u, err := s.CreateUser(context.Background(), "alice", "alice@x.com", "$2a$10$hash")
		require.NoError(t, err)
		require.Equal(t, 7, u.ID)
		require.Equal(t, "alice", u.Username)
		require.Equal(t, "alice@x.com", u.Email)
		require.WithinDuration(t, now, u.CreatedAt, time.Second)
		require.Equal(t, []any{"alice", "alice@x.com", "$2a$10$hash"}, args)
	})

	t.Run("CreateUser duplicate", func(t *testing.T) {
		s := NewAccountStore(rowDB(&fakeRow{scanErr: &pgconn.PgError{Code: "23505"}}, nil), time.Second)
		u, err := s.CreateUser(context.Background(), "alice", "alice@x.com", "h")
		require.ErrorIs(t, err, ErrDuplicateKey)
		require.Nil(t, u)
	})

	t.Run("CreateUser applies timeout", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(ctx context.Context, _ string, _ ...any) pgx.Row {
				deadline, ok := ctx.Deadline()
				require.True(t, ok)
				require.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
				return &fakeRow{user: sample}
			},
		}
		_, err := NewAccountStore(db, time.Minute).CreateUser(context.Background(), "a", "b", "c")
		require.NoError(t, err)
	})

	t.Run("FindUserByID success", func(t *testing.T) {
		var args []any
		s := NewAccountStore(rowDB(&fakeRow{user: sample}, &args), time.Second)
		u, err := s.FindUserByID(context.Background(), 7)
		require.NoError(t, err)
		require.Equal(t, sample.User, *u)
		require.Equal(t, []any{7}, args)
	})

	t.Run("FindUserByID not found", func(t *testing.T) {
		s := NewAccountStore(rowDB(&fakeRow{scanErr: pgx.ErrNoRows}, nil), time.Second)
		u, err := s.FindUserByID(context.Background(), 999)
		require.ErrorIs(t, err, ErrNotFound)
		require.Nil(t, u)
	})

	t.Run("FindUserByID timeout", func(t *testing.T) {
		s := NewAccountStore(rowDB(&fakeRow{scanErr: context.DeadlineExceeded}, nil), time.Second)
		_, err := s.FindUserByID(context.Background(), 1)
		require.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("FindUserByEmail success", func(t *testing.T) {
		s := NewAccountStore(rowDB(&fakeRow{user: sample}, nil), 0)
		u, err := s.FindUserByEmail(context.Background(), "alice@x.com")
		require.NoError(t, err)
		require.Equal(t, "$2a$10$hash", u.PasswordHash)
		require.Equal(t, 7, u.ID)
	})

	t.Run("FindUserByEmail not found", func(t *testing.T) {
		s := NewAccountStore(rowDB(&fakeRow{scanErr: pgx.ErrNoRows}, nil), 0)
		_, err := s.FindUserByEmail(context.Background(), "nobody@x.com")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("FindUserByEmail other error", func(t *testing.T) {
		s := NewAccountStore(rowDB(&fakeRow{scanErr: errors.New("boom")}, nil), 0)
		_, err := s.FindUserByEmail(context.Background(), "a@x.com")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNotFound)
	})
}
