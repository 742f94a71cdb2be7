// Package config はアプリケーション全体の設定を環境変数から読み込みます。
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"stock_insight/internal/feature/insight/domain/entity"
	"stock_insight/internal/feature/insight/usecase"
	"stock_insight/internal/platform/db"
	"stock_insight/internal/platform/externalapi/twelvedata"
	"stock_insight/internal/platform/logger"
)

// App はサーバーとCLIに共通するアプリケーション設定です。
type App struct {
	Port             int `env:"PORT" envDefault:"8080"`
	MaxSymbols       int `env:"MAX_SYMBOLS"`
	FetchConcurrency int `env:"FETCH_CONCURRENCY"`
}

// Config はすべての設定をまとめたものです。
type Config struct {
	App    App
	Log    logger.Config
	Market twelvedata.Config
	DB     db.Config
}

// LoadDotEnv はカレントディレクトリの .env を読み込みます。ファイルがなければ何もしません。
// 既に設定済みの環境変数は上書きしません。
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				slog.Debug("dotenv file not found", "path", p)
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load は各パッケージの LoadConfig を呼び出して設定を組み立てます。
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg.App, env.Options{Prefix: "APP_"}); err != nil {
		return Config{}, fmt.Errorf("parse app config: %w", err)
	}
	if cfg.App.MaxSymbols <= 0 {
		cfg.App.MaxSymbols = entity.DefaultMaxSymbols
	}
	if cfg.App.FetchConcurrency <= 0 {
		cfg.App.FetchConcurrency = usecase.DefaultFetchConcurrency
	}

	var err error
	if cfg.Log, err = logger.LoadConfig(); err != nil {
		return Config{}, err
	}
	if cfg.Market, err = twelvedata.LoadConfig(); err != nil {
		return Config{}, err
	}
	if cfg.DB, err = db.LoadConfig(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// InsightOptions は分析ユースケースの設定を返します。
func (c Config) InsightOptions() usecase.Options {
	return usecase.Options{MaxSymbols: c.App.MaxSymbols, FetchConcurrency: c.App.FetchConcurrency}
}

// Addr はHTTPサーバーの待ち受けアドレスを返します。
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}
