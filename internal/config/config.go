// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config 服務設定，全部來自環境變數 (可選擇由 .env 預先載入)
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":3000"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Database Database `envPrefix:"DB_"`
	Redis    Redis    `envPrefix:"REDIS_"`
	AMQP     AMQP     `envPrefix:"AMQP_"`

	BcryptCost   int           `env:"BCRYPT_COST" envDefault:"10"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
	WorkerCount  int           `env:"WORKER_COUNT"` // 未設定時為 runtime.NumCPU()
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

// Database 連線池設定
type Database struct {
	MaxConns int32 `env:"MAX_CONNS" envDefault:"10"`
	MinConns int32 `env:"MIN_CONNS" envDefault:"1"`
}

// Redis 為空位址時停用 profile 快取
type Redis struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// AMQP 為空 URL 時停用註冊事件
type AMQP struct {
	URL       string `env:"URL"`
	Exchange  string `env:"EXCHANGE" envDefault:"accounts"`
	QueueSize int    `env:"QUEUE_SIZE" envDefault:"64"`
}

var loadDotEnv = func(files ...string) error { return godotenv.Load(files...) }

// Load 讀取 .env (若存在) 後解析環境變數
func Load(files ...string) (*Config, error) {
	if err := loadDotEnv(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if _, ok := os.LookupEnv("WORKER_COUNT"); !ok {
		cfg.WorkerCount = runtime.NumCPU()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.WorkerCount <= 0 {
		return fmt.Errorf("invalid WORKER_COUNT: %d", c.WorkerCount)
	}
	if c.AMQP.QueueSize <= 0 {
		return fmt.Errorf("invalid AMQP_QUEUE_SIZE: %d", c.AMQP.QueueSize)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("invalid STORE_TIMEOUT: %s", c.StoreTimeout)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.Database.MinConns, c.Database.MaxConns)
	}
	return nil
}
