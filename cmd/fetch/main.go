package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	redisv9 "github.com/redis/go-redis/v9"

	"stock_quotes/internal/app/config"
	"stock_quotes/internal/app/di"
	"stock_quotes/internal/platform/logger"
	infraredis "stock_quotes/internal/platform/redis"
)

func main() {
	os.Exit(run())
}

// run は1回分のジョブを実行し、プロセスの終了コードを返します。
func run() int {
	// .envを読み込む
	dotenv := config.LoadDotEnv(".env")

	// ログ設定はLoadがエラーを返しても埋められている
	cfg, err := config.Load()
	slog.SetDefault(logger.New(os.Stdout, cfg.Log))
	if !dotenv {
		slog.Info(".env not found; using system environment variables")
	}
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis（任意）
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Running without run lock.", "addr", cfg.Redis.Addr(), "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	uc := di.NewFetchUsecase(cfg, rdb)

	report, err := uc.Run(ctx)
	if err != nil {
		slog.Error("run failed", "error", err)
		return 1
	}
	if skipped := report.Skipped(); len(skipped) > 0 {
		slog.Info("symbols without a stored quote", "symbols", skipped)
	}
	return 0
}
