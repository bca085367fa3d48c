package models

import "time"

// NewsItem is a single article reference returned by the news collector.
// Rows are append-only in the news table.
type NewsItem struct {
	Ticker    string    `json:"ticker" csv:"ticker"`
	Title     string    `json:"title" csv:"title"`
	URL       string    `json:"url" csv:"url"`
	Source    string    `json:"source" csv:"source"`
	SeenDate  string    `json:"seendate" csv:"seendate"`
	Collected time.Time `json:"collected" csv:"-"`
}

// NewsContent holds free text sampled from a retrieved article. Multiple
// rows per ticker are permitted (append-only).
type NewsContent struct {
	Ticker  string `json:"ticker" csv:"ticker"`
	URL     string `json:"url" csv:"url"`
	Content string `json:"content" csv:"content"`
}
