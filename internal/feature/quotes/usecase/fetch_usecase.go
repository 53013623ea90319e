// Package usecase は株価クォートの取得と永続化のビジネスロジックを実装します。
package usecase

//go:generate mockgen -source=fetch_usecase.go -destination=mock_fetch_usecase_test.go -package=usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"stock_quotes/internal/feature/quotes/domain"
	"stock_quotes/internal/feature/quotes/domain/entity"
)

// QuoteFetcher は外部APIから1銘柄分のクォートを取得するインターフェースです。
// 失敗は error ではなく FetchResult の Outcome で表現されます。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, symbol string) entity.FetchResult
}

// QuoteRepository はクォートを一括で永続化するインターフェースです。
type QuoteRepository interface {
	// InsertBatch は1回のINSERTで全行を保存し、保存した行数を返します。
	InsertBatch(ctx context.Context, quotes []entity.Quote) (int, error)
}

// Pacer は銘柄ごとのリクエスト間隔を制御します。
type Pacer interface {
	Wait(ctx context.Context) error
}

// RunLocker は同時に1つの実行だけを許可するロックです。
type RunLocker interface {
	Acquire(ctx context.Context, owner string) (bool, error)
	Release(ctx context.Context, owner string) error
}

// Config は FetchUsecase の実行設定です。
type Config struct {
	APIKey  string
	Symbols []string
}

// FetchUsecase は設定された全銘柄のクォートを取得し、価格のある行をデータベースに保存します。
type FetchUsecase struct {
	cfg      Config
	fetcher  QuoteFetcher
	quotes   QuoteRepository
	pacer    Pacer
	locker   RunLocker
	newRunID func() string
}

// NewFetchUsecase は新しい FetchUsecase を作成します。
func NewFetchUsecase(cfg Config, fetcher QuoteFetcher, quotes QuoteRepository, pacer Pacer) *FetchUsecase {
	return &FetchUsecase{
		cfg:      cfg,
		fetcher:  fetcher,
		quotes:   quotes,
		pacer:    pacer,
		newRunID: uuid.NewString,
	}
}

// WithRunLock は実行前にロックを取得するよう設定します。nil の場合はロックなしで実行します。
func (fu *FetchUsecase) WithRunLock(locker RunLocker) *FetchUsecase {
	fu.locker = locker
	return fu
}

// Run は1回分の取得・永続化を実行します。
//
// 銘柄ごとの取得失敗はログに出力して次の銘柄へ進みます。
// 永続化の失敗のみ error として返し、スケジューラ側のリトライに委ねます。
func (fu *FetchUsecase) Run(ctx context.Context) (report *entity.RunReport, err error) {
	runID := fu.newRunID()
	log := slog.With("run_id", runID)

	if fu.cfg.APIKey == "" {
		log.Error("API key not set. Set ALPHA_VANTAGE_API_KEY in environment.")
		return nil, domain.ErrMissingAPIKey
	}

	if fu.locker != nil {
		ok, err := fu.locker.Acquire(ctx, runID)
		if err != nil {
			return nil, fmt.Errorf("acquire run lock: %w", err)
		}
		if !ok {
			log.Warn("another run holds the run lock, skipping")
			return nil, domain.ErrRunInProgress
		}
		defer func() {
			// キャンセル後でもロックは解放する
			if err := fu.locker.Release(context.WithoutCancel(ctx), runID); err != nil {
				log.Warn("failed to release run lock", "error", err)
			}
		}()
	}

	report = &entity.RunReport{RunID: runID}
	report.Results, err = fu.fetchAll(ctx, log)
	if err != nil {
		return report, err
	}

	report.Rows = pricedQuotes(report.Results, log)
	n, err := fu.quotes.InsertBatch(ctx, report.Rows)
	if err != nil {
		log.Error("failed to persist quotes", "rows", len(report.Rows), "error", err)
		return report, fmt.Errorf("persist quotes: %w", err)
	}
	report.Inserted = n

	log.Info("run finished",
		"symbols", len(fu.cfg.Symbols),
		"fetched", report.Count(entity.OutcomeFetched),
		"no_data", report.Count(entity.OutcomeNoData),
		"failed", report.Count(entity.OutcomeFailed),
		"inserted", n,
	)
	return report, nil
}

// fetchAll は銘柄を順番に取得し、次の銘柄の前に一定時間待機します。
func (fu *FetchUsecase) fetchAll(ctx context.Context, log *slog.Logger) ([]entity.FetchResult, error) {
	results := make([]entity.FetchResult, 0, len(fu.cfg.Symbols))
	for i, s := range fu.cfg.Symbols {
		log.Info("fetching quote", "symbol", s)
		results = append(results, fu.fetcher.FetchQuote(ctx, s))

		if i == len(fu.cfg.Symbols)-1 {
			break
		}
		if err := fu.pacer.Wait(ctx); err != nil {
			return results, fmt.Errorf("wait before next symbol: %w", err)
		}
	}
	return results, nil
}

// pricedQuotes は取得できたクォートのうち価格を持つものだけを返します。
func pricedQuotes(results []entity.FetchResult, log *slog.Logger) []entity.Quote {
	rows := make([]entity.Quote, 0, len(results))
	for _, r := range results {
		if r.Outcome != entity.OutcomeFetched || r.Quote == nil {
			continue
		}
		if !r.Quote.HasPrice() {
			log.Warn("dropping quote without price", "symbol", r.Symbol)
			continue
		}
		rows = append(rows, *r.Quote)
	}
	return rows
}
