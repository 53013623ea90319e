// Package config assembles the job configuration once at startup.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"stock_quotes/internal/platform/db"
	"stock_quotes/internal/platform/externalapi/alphavantage"
	"stock_quotes/internal/platform/lock"
	"stock_quotes/internal/platform/logger"
	"stock_quotes/internal/platform/redis"
	"stock_quotes/internal/shared/ratelimiter"
)

// DefaultSymbols is used when STOCK_SYMBOLS is unset.
const DefaultSymbols = "MSFT"

// lockMargin covers the insert and process start-up on top of the fetch loop.
const lockMargin = time.Minute

// Config is built once in main and passed to every component explicitly.
type Config struct {
	AlphaVantage alphavantage.Config
	DB           db.Config
	Redis        redis.Config
	Log          logger.Config
	Symbols      []string
	FetchDelay   time.Duration
	RunLockTTL   time.Duration
}

// LoadDotEnv loads variables from .env files without overriding the real environment.
// It reports whether a file was loaded.
func LoadDotEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// Load reads the configuration from the environment.
// A missing API key is not an error here; the run reports it.
func Load() (Config, error) {
	cfg := Config{
		AlphaVantage: alphavantage.LoadConfig(),
		DB:           db.LoadConfigFromEnv(),
		Redis:        redis.LoadConfig(),
		Log:          logger.LoadConfig(),
		Symbols:      ParseSymbols(getenv("STOCK_SYMBOLS", DefaultSymbols)),
	}

	var err error
	if cfg.FetchDelay, err = durationEnv("FETCH_DELAY", ratelimiter.DefaultDelay); err != nil {
		return cfg, err
	}
	if cfg.RunLockTTL, err = durationEnv("RUN_LOCK_TTL", lock.DefaultTTL); err != nil {
		return cfg, err
	}
	if err := cfg.DB.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LockTTL はランロックの有効期限を返します。
//
// ロックは延長されないため、全銘柄の取得（各リクエストのタイムアウトと銘柄間の待機）が
// RUN_LOCK_TTL を超えうる場合は、その最悪実行時間まで延ばします。
func (c Config) LockTTL() time.Duration {
	n := time.Duration(len(c.Symbols))
	if n == 0 {
		return c.RunLockTTL
	}
	worst := (n-1)*c.FetchDelay + n*c.AlphaVantage.Timeout + lockMargin
	return max(c.RunLockTTL, worst)
}

// ParseSymbols splits a comma-separated list, trimming blanks and dropping empty entries.
func ParseSymbols(csv string) []string {
	var out []string
	for _, s := range strings.Split(csv, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("config: invalid %s %q", key, v)
	}
	return d, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
