// Package entity defines the domain models for the quotes feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote represents a point-in-time price/volume snapshot for a stock symbol.
// It maps one-to-one onto a row of the stock_data table.
type Quote struct {
	Symbol    string              // Stock ticker symbol (e.g., "MSFT")
	Price     decimal.NullDecimal // Latest price; invalid when the upstream value was not numeric
	Volume    *int64              // Trading volume; nil when absent or not an integer
	FetchedAt time.Time           // Latest trading day, or the fetch time when that is unknown
}

// HasPrice reports whether the quote carries a usable price.
// Quotes without a price are never persisted.
func (q Quote) HasPrice() bool {
	return q.Price.Valid
}
