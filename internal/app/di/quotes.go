// Package di provides dependency injection factories for creating application components.
package di

import (
	goredis "github.com/redis/go-redis/v9"

	"stock_quotes/internal/app/config"
	"stock_quotes/internal/feature/quotes/adapters"
	"stock_quotes/internal/feature/quotes/usecase"
	"stock_quotes/internal/platform/db"
	"stock_quotes/internal/platform/externalapi/alphavantage"
	infrahttp "stock_quotes/internal/platform/http"
	"stock_quotes/internal/platform/lock"
	"stock_quotes/internal/shared/ratelimiter"
)

// NewFetcher creates an Alpha Vantage client with a tuned HTTP client.
func NewFetcher(cfg alphavantage.Config) *alphavantage.Client {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return alphavantage.NewClient(cfg, httpClient)
}

// NewFetchUsecase wires the fetch-and-persist run. rdb may be nil, in which case
// runs are not guarded by a lock.
func NewFetchUsecase(cfg config.Config, rdb *goredis.Client) *usecase.FetchUsecase {
	fetcher := NewFetcher(cfg.AlphaVantage)
	quotes := adapters.NewQuoteRepository(db.NewConnector(cfg.DB, db.OpenPostgres))
	pacer := ratelimiter.NewFixedDelay(cfg.FetchDelay)

	uc := usecase.NewFetchUsecase(usecase.Config{
		APIKey:  cfg.AlphaVantage.APIKey,
		Symbols: cfg.Symbols,
	}, fetcher, quotes, pacer)

	if rdb != nil {
		uc.WithRunLock(lock.NewRedisLock(rdb, lock.DefaultKey, cfg.LockTTL()))
	}
	return uc
}
