package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stock_quotes/internal/feature/quotes/domain/entity"
	"stock_quotes/internal/feature/quotes/usecase"
	"stock_quotes/internal/platform/externalapi/alphavantage/dto"
)

// tradingDayLayout is the layout of the "07. latest trading day" field.
const tradingDayLayout = "2006-01-02"

// Client はAlpha Vantage APIから最新クォートを取得するQuoteFetcher実装です。
type Client struct {
	cfg    Config
	client *http.Client
	now    func() time.Time
}

// ClientがQuoteFetcherを実装していることをコンパイル時に検証します。
var _ usecase.QuoteFetcher = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client, now: time.Now}
}

// FetchQuote は1銘柄のGLOBAL_QUOTEを取得します。
//
// 通信・ステータス・JSONの失敗は OutcomeFailed、価格が含まれない応答は OutcomeNoData として返し、
// 呼び出し元にエラーを伝播させません。価格が数値でない場合は価格なしのクォートを返します。
func (c *Client) FetchQuote(ctx context.Context, symbol string) entity.FetchResult {
	body, err := c.getGlobalQuote(ctx, symbol)
	if err != nil {
		slog.Error("failed to fetch quote", "symbol", symbol, "error", err)
		return entity.FetchResult{Symbol: symbol, Outcome: entity.OutcomeFailed, Err: err}
	}

	if strings.TrimSpace(body.GlobalQuote.Price) == "" {
		msg := body.Message()
		slog.Warn("no price in response", "symbol", symbol, "message", msg)
		return entity.FetchResult{Symbol: symbol, Outcome: entity.OutcomeNoData, Reason: msg}
	}

	q := c.toQuote(symbol, body.GlobalQuote)
	return entity.FetchResult{Symbol: symbol, Outcome: entity.OutcomeFetched, Quote: &q}
}

func (c *Client) getGlobalQuote(ctx context.Context, symbol string) (*dto.GlobalQuoteResponse, error) {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", symbol)
	q.Set("apikey", c.cfg.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("alphavantage http %d", res.StatusCode)
	}

	var body dto.GlobalQuoteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode global quote: %w", err)
	}
	return &body, nil
}

// toQuote は文字列フィールドを型付きの値に変換します。変換できない値は既定値に置き換えます。
func (c *Client) toQuote(symbol string, gq dto.GlobalQuote) entity.Quote {
	q := entity.Quote{Symbol: symbol}

	// 価格をパース
	if p, err := decimal.NewFromString(strings.TrimSpace(gq.Price)); err == nil {
		q.Price = decimal.NewNullDecimal(p)
	} else {
		slog.Warn("price is not numeric", "symbol", symbol, "price", gq.Price)
	}

	// 出来高をパース
	if v := strings.TrimSpace(gq.Volume); v != "" {
		if vol, err := strconv.ParseInt(v, 10, 64); err == nil {
			q.Volume = &vol
		} else {
			slog.Warn("volume is not an integer", "symbol", symbol, "volume", gq.Volume)
		}
	}

	// 最終取引日をパース
	q.FetchedAt = c.now().UTC()
	if d := strings.TrimSpace(gq.LatestTradingDay); d != "" {
		if tm, err := time.Parse(tradingDayLayout, d); err == nil {
			q.FetchedAt = tm
		} else {
			slog.Warn("latest trading day is not a date", "symbol", symbol, "value", gq.LatestTradingDay)
		}
	}

	return q
}
