// Package db はgormによるデータベース接続を提供します。
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	retryInterval = 3 * time.Second
)

// ErrUnsupportedDriver は未対応のドライバーが指定された場合のエラーです。
var ErrUnsupportedDriver = errors.New("unsupported db driver")

// Config はデータベース接続設定です。
type Config struct {
	Driver         string        `env:"DRIVER" envDefault:"sqlite"`
	DSN            string        `env:"DSN"`
	SQLitePath     string        `env:"SQLITE_PATH" envDefault:"stock_insight.db"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"60s"`
}

// LoadConfig は DB_ プレフィックスの環境変数から設定を読み込みます。
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "DB_"}); err != nil {
		return Config{}, fmt.Errorf("parse db config: %w", err)
	}
	return cfg, nil
}

// BuildDialector は設定に応じたgormのDialectorを返します。
// postgresのDSNは接続前にpgxで検証します。
func BuildDialector(cfg Config) (gorm.Dialector, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverSQLite:
		path := cfg.SQLitePath
		if cfg.DSN != "" {
			path = cfg.DSN
		}
		return sqlite.Open(path), nil
	case DriverPostgres, "postgresql":
		if _, err := pgx.ParseConfig(cfg.DSN); err != nil {
			return nil, fmt.Errorf("invalid postgres dsn: %w", err)
		}
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Opener はDialectorからDBを開く関数です。テストで差し替えます。
type Opener func(d gorm.Dialector) (*gorm.DB, error)

func defaultOpener(d gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(d, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
}

// ConnectWithRetry は timeout が経過するまで retryInterval 間隔で接続を再試行します。
func ConnectWithRetry(d gorm.Dialector, timeout time.Duration, open Opener) (*gorm.DB, error) {
	return connectWithRetry(d, timeout, retryInterval, open)
}

func connectWithRetry(d gorm.Dialector, timeout, interval time.Duration, open Opener) (*gorm.DB, error) {
	if open == nil {
		open = defaultOpener
	}
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(d)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "driver", d.Name(), "error", err)
		time.Sleep(interval)
	}
}

// OpenDB は接続を確立し、指定されたモデルをマイグレーションします。
func OpenDB(cfg Config, models ...any) (*gorm.DB, error) {
	d, err := BuildDialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(d, cfg.ConnectTimeout, nil)
	if err != nil {
		return nil, err
	}
	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return db, nil
}
