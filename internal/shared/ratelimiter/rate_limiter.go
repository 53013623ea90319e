package ratelimiter

import (
	"context"
	"log/slog"
	"time"
)

// DefaultDelay は無料プランのレート制限（1分あたり5回）に収まる待機時間です。
const DefaultDelay = 12 * time.Second

// FixedDelay は呼び出しのたびに一定時間ブロックして待機します。
// エラーに応じた調整は行いません。
type FixedDelay struct {
	delay time.Duration
}

// NewFixedDelay は新しいFixedDelayのインスタンスを生成します。0以下の場合は待機しません。
func NewFixedDelay(delay time.Duration) *FixedDelay {
	return &FixedDelay{delay: delay}
}

// Delay は設定された待機時間を返します。
func (f *FixedDelay) Delay() time.Duration {
	return f.delay
}

// Wait は設定された時間だけ待機します。コンテキストがキャンセルされた場合はそのエラーを返します。
func (f *FixedDelay) Wait(ctx context.Context) error {
	if f.delay <= 0 {
		return nil
	}
	slog.Debug("waiting before next request", "delay", f.delay)

	t := time.NewTimer(f.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
