// Package db はクォート保存先PostgreSQLへのgorm接続を提供します。
package db

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config はPostgreSQLの接続設定です。
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string
}

// Opener はDSNからgorm DBを開きます。テストではドライバを差し替えます。
type Opener func(dsn string) (*gorm.DB, error)

// Connector は呼び出しごとに新しい接続を返します。呼び出し側が Close する責任を持ちます。
type Connector func(ctx context.Context) (*gorm.DB, error)

// LoadConfigFromEnv は環境変数 POSTGRES_* から設定を読み込みます。
// 未設定の項目はスケジューラ同梱DBのデフォルト値を使います。
func LoadConfigFromEnv() Config {
	return Config{
		User:     getenv("POSTGRES_USER", "airflow"),
		Password: getenv("POSTGRES_PASSWORD", "airflow_pass"),
		Name:     getenv("POSTGRES_DB", "airflow_db"),
		Host:     getenv("POSTGRES_HOST", "postgres"),
		Port:     getenv("POSTGRES_PORT", "5432"),
		SSLMode:  getenv("POSTGRES_SSLMODE", "disable"),
	}
}

// Validate は有効なDSNを組み立てられる設定かを検証します。
func (c Config) Validate() error {
	if c.Host == "" || c.Name == "" || c.User == "" {
		return fmt.Errorf("db config: host, name and user are required")
	}
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("db config: invalid port %q", c.Port)
	}
	return nil
}

// BuildDSN はpgx向けのkey=value形式のDSNを生成します。
func BuildDSN(cfg Config) string {
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, sslmode)
}

// OpenPostgres は本番用のOpenerです。
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		// 呼び出し側で明示的にトランザクションを張る
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Default.LogMode(logger.Warn),
	})
}

// NewConnector は呼び出しごとに接続数1のプールを開き、pingで疎通確認してから返すConnectorを生成します。
func NewConnector(cfg Config, open Opener) Connector {
	dsn := BuildDSN(cfg)
	return func(ctx context.Context) (*gorm.DB, error) {
		gdb, err := open(dsn)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("ping database %s:%s: %w", cfg.Host, cfg.Port, err)
		}
		return gdb, nil
	}
}

// Close はgorm DBの接続プールを閉じます。
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
