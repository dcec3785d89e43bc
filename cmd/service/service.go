// @title        Account Service API
// @version      1.0
// @description  帳號註冊、登入與地址查詢 API
// @host         localhost:3000
// @BasePath     /api
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"account-service/internal/cache"
	"account-service/internal/config"
	"account-service/internal/database"
	"account-service/internal/events"
	"account-service/internal/logger"
	appmw "account-service/internal/middleware"
	"account-service/internal/router"
	"account-service/internal/service"
	"account-service/internal/store"
	"account-service/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	_ "account-service/docs" // 引入 swag 產出的 docs
)

const (
	shutdownTimeout = 10 * time.Second
	// publishTimeout 單筆事件送往 broker 的上限
	publishTimeout  = 5 * time.Second
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = func() (*config.Config, error) { return config.Load() }
	newLogger       = logger.New
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	newPublisher    = newAMQPPublisher
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer  = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	newWorkerPool   = worker.NewPool
	exitFunc        = os.Exit
)

func newAMQPPublisher(url, exchange string) (events.Publisher, error) {
	p, err := events.NewAMQPPublisher(url, exchange)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}

	log, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("logger 建立失敗: %w", err)
	}

	db, err := newPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	// Redis 與 AMQP 皆為選用，未設定時改用 no-op 實作
	var rdb cache.Cache
	var profiles service.ProfileCache = cache.NoopProfiles{}
	if cfg.Redis.Addr != "" {
		rdb, err = newRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %w", err)
		}
		defer rdb.Close()
		profiles = cache.NewProfiles(rdb, cfg.CacheTTL)
	} else {
		log.Info("REDIS_ADDR not set, profile cache disabled")
	}

	var pub events.Publisher = events.Noop{}
	if cfg.AMQP.URL != "" {
		amqpPub, err := newPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			return fmt.Errorf("AMQP 連線失敗: %w", err)
		}
		// 事件走獨立佇列，broker 卡住不會佔用 hashing worker
		q := events.NewQueue(amqpPub, cfg.AMQP.QueueSize, publishTimeout, log)
		defer q.Close()
		pub = q
	} else {
		log.Info("AMQP_URL not set, registration events disabled")
	}

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	hasher, err := service.NewBcryptHasher(cfg.BcryptCost, wp)
	if err != nil {
		return fmt.Errorf("hasher 建立失敗: %w", err)
	}

	svc := service.NewAccountService(service.Deps{
		Store:  store.NewAccountStore(db, cfg.StoreTimeout),
		Hasher: hasher,
		Cache:  profiles,
		Events: pub,
		Log:    log,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Recover())
	e.Use(appmw.RequestID())
	e.Use(appmw.RequestLogger(log))

	router.Setup(e, db, rdb, svc)

	return serve(ctx, e, cfg.HTTPAddr, log)
}

// serve 啟動 HTTP 服務，ctx 結束時優雅關閉
func serve(ctx context.Context, e *echo.Echo, addr string, log logrus.FieldLogger) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("http server listening")
		errCh <- startServer(e, addr)
	}()

	select {
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP 服務失敗: %w", err)
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := shutdownServer(shutdownCtx, e)
		// 等待 Start 返回，確保連線已處理完畢
		select {
		case <-errCh:
		case <-shutdownCtx.Done():
		}
		if err != nil {
			return fmt.Errorf("HTTP 服務關閉失敗: %w", err)
		}
		return nil
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logrus.WithError(err).Error("service exited")
		exitFunc(1)
	}
}
