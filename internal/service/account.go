// File: internal/service/account.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"account-service/internal/events"
	"account-service/internal/model"
	"account-service/internal/store"
	"account-service/internal/worker"

	"github.com/sirupsen/logrus"
)

const (
	MsgSignupRequired   = "Username, email, and password are required"
	MsgSigninRequired   = "Email and password are required"
	MsgRegisterRequired = "Username, email, password, city, country, street, and pincode are required"
)

// AccountStore 為 service 所需的持久層操作，*store.AccountStore 直接實作
type AccountStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error)
	CreateUserWithAddress(ctx context.Context, username, email, passwordHash string, addr model.AddressInput) (int, error)
	FindUserByID(ctx context.Context, id int) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.UserWithHash, error)
	FindAddressByUserID(ctx context.Context, userID int) (*model.Address, error)
	FindUserWithAddress(ctx context.Context, userID int) (*model.UserDetails, error)
}

type ProfileCache interface {
	GetProfile(ctx context.Context, id int) (*model.User, bool, error)
	PutProfile(ctx context.Context, u *model.User) error
}

// Deps 為建立 AccountService 所需的協作者；Cache、Events 可為 nil。
// Events 在請求路徑上同步呼叫，必須不阻塞 (正式環境包一層 events.Queue)
type Deps struct {
	Store  AccountStore
	Hasher Hasher
	Cache  ProfileCache
	Events events.Publisher
	Log    logrus.FieldLogger
}

// AccountService 串接 Hasher 與 Store，本身不持有請求狀態
type AccountService struct {
	store  AccountStore
	hasher Hasher
	cache  ProfileCache
	events events.Publisher
	log    logrus.FieldLogger
}

func NewAccountService(d Deps) *AccountService {
	s := &AccountService{
		store:  d.Store,
		hasher: d.Hasher,
		cache:  d.Cache,
		events: d.Events,
		log:    d.Log,
	}
	if s.events == nil {
		s.events = events.Noop{}
	}
	if s.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		s.log = l
	}
	return s
}

// Signup 建立帳號並回傳公開欄位
func (s *AccountService) Signup(ctx context.Context, username, email, password string) (*model.User, error) {
	if err := checkInput(signupInput{Username: username, Email: email, Password: password}, MsgSignupRequired); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(ctx, password)
	if err != nil {
		return nil, err
	}

	u, err := s.store.CreateUser(ctx, username, email, hash)
	if err != nil {
		return nil, s.storeError("signup", err)
	}

	s.publishRegistered(ctx, u.ID, u.Username, u.Email, false)
	return u, nil
}

// Signin 未知 email 與密碼錯誤回傳同一個 ErrInvalidCredentials
func (s *AccountService) Signin(ctx context.Context, email, password string) (*model.User, error) {
	if err := checkInput(signinInput{Email: email, Password: password}, MsgSigninRequired); err != nil {
		return nil, err
	}

	u, err := s.store.FindUserByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// 仍執行一次比對，讓回應時間不洩漏帳號是否存在
		s.hasher.Verify(ctx, password, "")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, ctxErr)
		}
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, s.storeError("signin", err)
	}

	if !s.hasher.Verify(ctx, password, u.PasswordHash) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, ctxErr)
		}
		return nil, ErrInvalidCredentials
	}
	public := u.User
	return &public, nil
}

// RegisterWithAddress 在單一交易內建立使用者與地址，回傳新使用者 id
func (s *AccountService) RegisterWithAddress(ctx context.Context, in RegisterInput) (int, error) {
	if err := checkInput(in, MsgRegisterRequired); err != nil {
		return 0, err
	}

	hash, err := s.hashPassword(ctx, in.Password)
	if err != nil {
		return 0, err
	}

	id, err := s.store.CreateUserWithAddress(ctx, in.Username, in.Email, hash, model.AddressInput{
		City:    in.City,
		Country: in.Country,
		Street:  in.Street,
		Pincode: in.Pincode,
	})
	if err != nil {
		return 0, s.storeError("register with address", err)
	}

	s.publishRegistered(ctx, id, in.Username, in.Email, true)
	return id, nil
}

// GetUser 先查快取，未命中再查資料庫並回填；快取錯誤只記錄不影響結果
func (s *AccountService) GetUser(ctx context.Context, id int) (*model.User, error) {
	if s.cache != nil {
		u, ok, err := s.cache.GetProfile(ctx, id)
		if err != nil {
			s.log.WithError(err).WithField("user_id", id).Warn("profile cache get failed")
		}
		if ok {
			return u, nil
		}
	}

	u, err := s.store.FindUserByID(ctx, id)
	if err != nil {
		return nil, s.storeError("get user", err)
	}

	if s.cache != nil {
		if err := s.cache.PutProfile(ctx, u); err != nil {
			s.log.WithError(err).WithField("user_id", id).Warn("profile cache put failed")
		}
	}
	return u, nil
}

func (s *AccountService) GetAddress(ctx context.Context, userID int) (*model.Address, error) {
	a, err := s.store.FindAddressByUserID(ctx, userID)
	if err != nil {
		return nil, s.storeError("get address", err)
	}
	return a, nil
}

func (s *AccountService) GetUserDetails(ctx context.Context, userID int) (*model.UserDetails, error) {
	d, err := s.store.FindUserWithAddress(ctx, userID)
	if err != nil {
		return nil, s.storeError("get user details", err)
	}
	return d, nil
}

func (s *AccountService) hashPassword(ctx context.Context, password string) (string, error) {
	hash, err := s.hasher.Hash(ctx, password)
	switch {
	case err == nil:
		return hash, nil
	case errors.Is(err, ErrPasswordTooLong):
		return "", invalid("password must be at most 72 bytes")
	case errors.Is(err, ErrEmptyPassword):
		return "", invalid("password is required")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled), errors.Is(err, worker.ErrStopped):
		s.log.WithError(err).Warn("password hashing aborted")
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		s.log.WithError(err).Error("password hashing failed")
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}
}

// storeError 將 store 錯誤對應到 service 錯誤；非預期錯誤會記錄原因，但不回傳給呼叫端
func (s *AccountService) storeError(op string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrDuplicateKey):
		return ErrConflict
	case errors.Is(err, store.ErrUnavailable):
		s.log.WithError(err).WithField("op", op).Warn("store unavailable")
		return fmt.Errorf("%w: %s", ErrUnavailable, op)
	default:
		s.log.WithError(err).WithField("op", op).Error("store failure")
		return fmt.Errorf("%w: %s", ErrInternal, op)
	}
}

// publishRegistered 交給 events 排程後即返回，失敗 (含佇列已滿) 只記錄
func (s *AccountService) publishRegistered(ctx context.Context, id int, username, email string, withAddress bool) {
	if _, noop := s.events.(events.Noop); noop {
		return
	}
	ev := events.Registered{
		UserID:      id,
		Username:    username,
		Email:       email,
		WithAddress: withAddress,
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.events.PublishRegistered(ctx, ev); err != nil {
		s.log.WithError(err).WithField("user_id", id).Warn("publish registered event dropped")
	}
}
