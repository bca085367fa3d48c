// Package models defines data structures for GreenInvest
package models

import "time"

// Company holds the profile for a single listed company. One row per ticker;
// re-ingestion replaces the row (latest write wins, no history).
type Company struct {
	Ticker    string    `json:"ticker"`
	Name      string    `json:"name"`
	Sector    string    `json:"sector"`
	Industry  string    `json:"industry"`
	Country   string    `json:"country"`
	Website   string    `json:"website"`
	Employees int64     `json:"employees"`
	MarketCap float64   `json:"market_cap"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StockPrice is a single day's OHLCV bar for a ticker. Append-only.
type StockPrice struct {
	Ticker string    `json:"ticker" csv:"ticker"`
	Date   time.Time `json:"date" csv:"-"`
	Open   float64   `json:"open" csv:"open"`
	High   float64   `json:"high" csv:"high"`
	Low    float64   `json:"low" csv:"low"`
	Close  float64   `json:"close" csv:"close"`
	Volume int64     `json:"volume" csv:"volume"`

	// DateString carries the date through CSV flat files (RFC 3339 date).
	DateString string `json:"-" csv:"date"`
}

// CompanyProfile is the raw profile shape written by the profile collector
// to {TICKER}_company_info.json and read back by the integrator.
type CompanyProfile struct {
	Ticker    string  `json:"ticker"`
	ShortName string  `json:"shortName"`
	Sector    string  `json:"sector"`
	Industry  string  `json:"industry"`
	Country   string  `json:"country"`
	Website   string  `json:"website"`
	Employees int64   `json:"fullTimeEmployees"`
	MarketCap float64 `json:"marketCap"`
}
