// Package lock は取得ジョブの多重実行を防ぐRedisロックを提供します。
package lock

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_quotes/internal/feature/quotes/usecase"
)

const (
	// DefaultKey は実行中のランIDを保持するキーです。
	DefaultKey = "stock_quotes:run-lock"
	// DefaultTTL はロックの既定の有効期限です。異常終了したランのロックもいずれ解放されます。
	DefaultTTL = 10 * time.Minute
)

// releaseScript はキーが呼び出し元のIDを保持している場合のみ削除します。
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// RedisLock は SET NX と比較付き削除で usecase.RunLocker を実装します。
type RedisLock struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

var _ usecase.RunLocker = (*RedisLock)(nil)

// NewRedisLock はロックを生成します。ttl が0以下なら DefaultTTL、key が空なら DefaultKey を使います。
func NewRedisLock(rdb *redis.Client, key string, ttl time.Duration) *RedisLock {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if key == "" {
		key = DefaultKey
	}
	return &RedisLock{rdb: rdb, key: key, ttl: ttl}
}

// Acquire は owner としてロックを取得します。他のランが保持中の場合は false を返します。
func (l *RedisLock) Acquire(ctx context.Context, owner string) (bool, error) {
	ok, err := l.rdb.SetNX(ctx, l.key, owner, l.ttl).Result()
	if err != nil {
		return false, err
	}
	if !ok {
		holder, err := l.rdb.Get(ctx, l.key).Result()
		if err == nil {
			slog.Info("run lock is held", "key", l.key, "holder", holder)
		}
	}
	return ok, nil
}

// Release は owner がまだ保持している場合のみロックを解放します。
func (l *RedisLock) Release(ctx context.Context, owner string) error {
	n, err := l.rdb.Eval(ctx, releaseScript, []string{l.key}, owner).Int64()
	if err != nil {
		return err
	}
	if n == 0 {
		// TTL 切れで他の実行に奪われた
		slog.Warn("run lock expired before release", "key", l.key, "owner", owner)
	}
	return nil
}
