// Package collector fetches raw company, news, and report data from external
// sources and writes flat files under the raw data path.
package collector

import (
	"context"
	"net/http"
	"time"

	"github.com/bobmcallan/greeninvest/internal/common"
	"github.com/bobmcallan/greeninvest/internal/interfaces"
	"github.com/bobmcallan/greeninvest/internal/models"
	"github.com/bobmcallan/greeninvest/internal/rawfiles"
)

// Service implements interfaces.CollectorService.
type Service struct {
	profile    interfaces.ProfileClient
	news       interfaces.NewsClient
	raw        rawfiles.Dir
	sampleSize int
	httpClient *http.Client
	logger     *common.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithHTTPClient overrides the HTTP client used for report page and PDF
// downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.httpClient = client
	}
}

// NewService creates a new collector service. sampleSize bounds how many
// article pages are fetched for content per ticker.
func NewService(profile interfaces.ProfileClient, news interfaces.NewsClient, raw rawfiles.Dir, sampleSize int, logger *common.Logger, opts ...Option) *Service {
	s := &Service{
		profile:    profile,
		news:       news,
		raw:        raw,
		sampleSize: sampleSize,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CollectCompanyData fetches the profile and a year of daily bars for a
// ticker and writes the raw files. A missing price history is logged and
// skipped; the profile alone still counts as collected.
func (s *Service) CollectCompanyData(ctx context.Context, ticker string) (bool, error) {
	s.logger.Info().Str("ticker", ticker).Msg("Collecting company data")

	profile, err := s.profile.GetProfile(ctx, ticker)
	if err != nil {
		return false, err
	}
	if err := s.raw.WriteCompanyProfile(ticker, profile); err != nil {
		return false, err
	}

	prices, err := s.profile.GetPriceHistory(ctx, ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Price history unavailable")
		return true, nil
	}
	if err := s.raw.WritePrices(ticker, prices); err != nil {
		return false, err
	}

	s.logger.Info().Str("ticker", ticker).Int("bars", len(prices)).Msg("Company data collected")
	return true, nil
}

// CollectNewsData fetches the article index for a company and samples a
// bounded number of article pages for content. The search query comes from
// the raw profile's company name, falling back to the ticker.
func (s *Service) CollectNewsData(ctx context.Context, ticker string) (bool, error) {
	companyName := ticker
	if profile, err := s.raw.ReadCompanyProfile(ticker); err == nil && profile.ShortName != "" {
		companyName = profile.ShortName
	}

	s.logger.Info().Str("ticker", ticker).Str("company", companyName).Msg("Collecting news data")

	items, err := s.news.SearchNews(ctx, companyName)
	if err != nil {
		return false, err
	}
	if len(items) == 0 {
		s.logger.Info().Str("ticker", ticker).Msg("No news found")
		return false, nil
	}

	now := time.Now()
	for i := range items {
		items[i].Ticker = ticker
		items[i].Collected = now
	}
	if err := s.raw.WriteNews(ticker, items); err != nil {
		return false, err
	}

	contents := s.sampleArticleContent(ctx, ticker, items)
	if len(contents) > 0 {
		if err := s.raw.WriteNewsContent(ticker, contents); err != nil {
			return false, err
		}
	}

	s.logger.Info().
		Str("ticker", ticker).
		Int("articles", len(items)).
		Int("sampled", len(contents)).
		Msg("News data collected")
	return true, nil
}

// sampleArticleContent fetches up to sampleSize article pages. Pages that
// fail or yield no text are skipped.
func (s *Service) sampleArticleContent(ctx context.Context, ticker string, items []models.NewsItem) []models.NewsContent {
	limit := s.sampleSize
	if limit <= 0 || limit > len(items) {
		limit = len(items)
	}

	var contents []models.NewsContent
	for _, item := range items[:limit] {
		text, err := s.news.FetchArticleText(ctx, item.URL)
		if err != nil {
			s.logger.Warn().Err(err).Str("url", item.URL).Msg("Failed to fetch article text")
			continue
		}
		if text == "" {
			continue
		}
		contents = append(contents, models.NewsContent{
			Ticker:  ticker,
			URL:     item.URL,
			Content: text,
		})
	}
	return contents
}

// Compile-time check
var _ interfaces.CollectorService = (*Service)(nil)
