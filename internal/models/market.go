package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is a single daily close in a price history series.
type PricePoint struct {
	Date  time.Time       `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// MarketSnapshot is a point-in-time view of a public company's market
// metrics. Every field is individually optional: a public company may have an
// incomplete profile, and the snapshot as a whole is absent for private
// companies or when the data fetch failed.
type MarketSnapshot struct {
	Ticker string `json:"ticker"`

	Price            *float64 `json:"price,omitempty"`
	MarketCap        *float64 `json:"market_cap,omitempty"`
	YearReturn       *float64 `json:"year_return,omitempty"`
	PERatio          *float64 `json:"pe_ratio,omitempty"`
	ForwardPE        *float64 `json:"forward_pe,omitempty"`
	FiftyTwoWeekLow  *float64 `json:"fifty_two_week_low,omitempty"`
	FiftyTwoWeekHigh *float64 `json:"fifty_two_week_high,omitempty"`
	DividendYield    *float64 `json:"dividend_yield,omitempty"`
	Beta             *float64 `json:"beta,omitempty"`
	Revenue          *float64 `json:"revenue,omitempty"`
	ProfitMargin     *float64 `json:"profit_margin,omitempty"`
	Employees        *int64   `json:"employees,omitempty"`

	Sector   string `json:"sector,omitempty"`
	Industry string `json:"industry,omitempty"`

	// Exchange and CurrencySymbol are already mapped to display form;
	// unrecognized codes pass through unchanged.
	Exchange       string `json:"exchange,omitempty"`
	Currency       string `json:"currency,omitempty"`
	CurrencySymbol string `json:"currency_symbol,omitempty"`

	LastTradeTime *time.Time `json:"last_trade_time,omitempty"`

	// History holds up to one year of daily closes, oldest first.
	History []PricePoint `json:"history,omitempty"`
}

// TickerDisplay returns "EXCHANGE: SYMBOL" with the Yahoo suffix stripped,
// e.g. "TSX: SHOP" for SHOP.TO. Without an exchange name it returns the bare
// symbol.
func (m *MarketSnapshot) TickerDisplay() string {
	symbol, _, _ := strings.Cut(m.Ticker, ".")
	if m.Exchange == "" {
		return symbol
	}
	return m.Exchange + ": " + symbol
}

// Float returns a pointer to v, for building optional metric fields.
func Float(v float64) *float64 { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }
