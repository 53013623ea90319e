// Package logger はプロセス全体で使う構造化ロガーを生成します。
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config はログレベルと出力形式の設定です。
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json or text
}

// LoadConfig は LOG_LEVEL と LOG_FORMAT を読み込みます。
func LoadConfig() Config {
	return Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	}
}

// New は w に出力するロガーを生成します。
// 不明なレベルは info、不明な形式は JSON として扱います。
func New(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel はレベル名を slog.Level に変換します。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
