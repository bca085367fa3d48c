package interfaces

import (
	"context"

	"github.com/bobmcallan/greeninvest/internal/models"
)

// ProfileClient provides access to company profile and price history data.
type ProfileClient interface {
	// GetProfile retrieves the company profile for a ticker.
	GetProfile(ctx context.Context, ticker string) (*models.CompanyProfile, error)

	// GetPriceHistory retrieves roughly a year of daily bars.
	GetPriceHistory(ctx context.Context, ticker string) ([]models.StockPrice, error)
}

// NewsClient provides access to a news article index.
type NewsClient interface {
	// SearchNews returns recent article references mentioning the company.
	SearchNews(ctx context.Context, companyName string) ([]models.NewsItem, error)

	// FetchArticleText downloads one article page and extracts its paragraph
	// text. Empty string when nothing useful could be extracted.
	FetchArticleText(ctx context.Context, url string) (string, error)
}

// SentimentClient classifies sentences as positive or negative.
type SentimentClient interface {
	// ClassifySentences returns one bool per input sentence (true = positive).
	ClassifySentences(ctx context.Context, sentences []string) ([]bool, error)
}
