package models

import "time"

// ReportText holds the concatenated plain text extracted from all downloaded
// report documents for a ticker. At most one row per ticker; overwritten on
// re-ingestion.
type ReportText struct {
	Ticker    string    `json:"ticker"`
	Text      string    `json:"report_text"`
	UpdatedAt time.Time `json:"updated_at"`
}
