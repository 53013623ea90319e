// Package adapters はquotesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stock_quotes/internal/feature/quotes/domain/entity"
	"stock_quotes/internal/feature/quotes/usecase"
	"stock_quotes/internal/platform/db"
)

type quotePostgres struct {
	connect db.Connector
}

var _ usecase.QuoteRepository = (*quotePostgres)(nil)

// NewQuoteRepository は呼び出しごとに connect で接続を開くリポジトリを生成します。
func NewQuoteRepository(connect db.Connector) *quotePostgres {
	return &quotePostgres{connect: connect}
}

// StockDataModel は既存の stock_data テーブルの1行です。テーブルはこのジョブでは作成しません。
type StockDataModel struct {
	Symbol    string              `gorm:"size:16;not null"`
	Price     decimal.NullDecimal `gorm:"type:numeric(18,4)"`
	Volume    *int64
	FetchedAt time.Time `gorm:"not null"`
}

func (StockDataModel) TableName() string {
	return "stock_data"
}

func toModel(e entity.Quote) StockDataModel {
	return StockDataModel{
		Symbol:    e.Symbol,
		Price:     e.Price,
		Volume:    e.Volume,
		FetchedAt: e.FetchedAt,
	}
}

// InsertBatch は全行を1つのトランザクション内の複数行INSERTで保存します。
// 空の入力では接続もSQLの発行も行いません。
// 失敗時はロールバックし、接続を閉じてからエラーを返します。
func (r *quotePostgres) InsertBatch(ctx context.Context, quotes []entity.Quote) (int, error) {
	if len(quotes) == 0 {
		slog.Info("no rows to persist")
		return 0, nil
	}

	conn, err := r.connect(ctx)
	if err != nil {
		return 0, fmt.Errorf("connect: %w", err)
	}
	defer func() {
		if err := db.Close(conn); err != nil {
			slog.Warn("failed to close database connection", "error", err)
		}
	}()

	ms := make([]StockDataModel, 0, len(quotes))
	for _, q := range quotes {
		ms = append(ms, toModel(q))
	}

	err = conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&ms).Error
	})
	if err != nil {
		logInsertFailure(err, len(ms))
		return 0, fmt.Errorf("insert stock_data: %w", err)
	}

	slog.Info("inserted rows", "count", len(ms))
	return len(ms), nil
}

func logInsertFailure(err error, rows int) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		slog.Error("DB insert failed", "rows", rows, "sqlstate", pgErr.Code, "table", pgErr.TableName, "error", pgErr.Message)
		return
	}
	slog.Error("DB insert failed", "rows", rows, "error", err)
}
