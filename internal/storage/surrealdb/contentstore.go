package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/bobmcallan/greeninvest/internal/common"
	"github.com/bobmcallan/greeninvest/internal/models"
)

// ContentStore manages the news, news_content, and reports tables.
type ContentStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewContentStore(db *surrealdb.DB, logger *common.Logger) *ContentStore {
	return &ContentStore{db: db, logger: logger}
}

func (s *ContentStore) AppendNews(ctx context.Context, items []models.NewsItem) error {
	if len(items) == 0 {
		return nil
	}

	sql := "INSERT INTO news $data"
	vars := map[string]any{"data": items}

	if _, err := surrealdb.Query[[]models.NewsItem](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to append news: %w", err)
	}
	return nil
}

func (s *ContentStore) GetNews(ctx context.Context, ticker string) ([]models.NewsItem, error) {
	sql := "SELECT * FROM news WHERE ticker = $ticker ORDER BY seendate DESC"
	vars := map[string]any{"ticker": ticker}

	results, err := surrealdb.Query[[]models.NewsItem](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to get news: %w", err)
	}

	if results != nil && len(*results) > 0 {
		return (*results)[0].Result, nil
	}
	return nil, nil
}

func (s *ContentStore) AppendNewsContent(ctx context.Context, contents []models.NewsContent) error {
	if len(contents) == 0 {
		return nil
	}

	sql := "INSERT INTO news_content $data"
	vars := map[string]any{"data": contents}

	if _, err := surrealdb.Query[[]models.NewsContent](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to append news content: %w", err)
	}
	return nil
}

func (s *ContentStore) GetNewsContent(ctx context.Context, ticker string) ([]models.NewsContent, error) {
	sql := "SELECT * FROM news_content WHERE ticker = $ticker"
	vars := map[string]any{"ticker": ticker}

	results, err := surrealdb.Query[[]models.NewsContent](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to get news content: %w", err)
	}

	if results != nil && len(*results) > 0 {
		return (*results)[0].Result, nil
	}
	return nil, nil
}

// SaveReportText stores the single report-text row for a ticker,
// overwriting any prior row.
func (s *ContentStore) SaveReportText(ctx context.Context, report *models.ReportText) error {
	sql := "UPSERT $rid CONTENT $data"
	vars := map[string]any{
		"rid":  surrealmodels.NewRecordID("reports", report.Ticker),
		"data": report,
	}

	if _, err := surrealdb.Query[[]models.ReportText](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save report text for %s: %w", report.Ticker, err)
	}
	return nil
}

func (s *ContentStore) GetReportText(ctx context.Context, ticker string) (*models.ReportText, error) {
	data, err := surrealdb.Select[models.ReportText](ctx, s.db, surrealmodels.NewRecordID("reports", ticker))
	if err != nil {
		return nil, fmt.Errorf("failed to select report text: %w", err)
	}
	if data == nil || data.Ticker == "" {
		return nil, fmt.Errorf("report text for %s not found", ticker)
	}
	return data, nil
}
