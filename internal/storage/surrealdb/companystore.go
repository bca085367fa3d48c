package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/bobmcallan/greeninvest/internal/common"
	"github.com/bobmcallan/greeninvest/internal/models"
)

// CompanyStore manages the companies and stock_prices tables.
type CompanyStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewCompanyStore(db *surrealdb.DB, logger *common.Logger) *CompanyStore {
	return &CompanyStore{db: db, logger: logger}
}

// SaveCompany upserts the single row for a ticker. Latest write wins.
func (s *CompanyStore) SaveCompany(ctx context.Context, company *models.Company) error {
	sql := "UPSERT $rid CONTENT $data"
	vars := map[string]any{
		"rid":  surrealmodels.NewRecordID("companies", company.Ticker),
		"data": company,
	}

	if _, err := surrealdb.Query[[]models.Company](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save company %s: %w", company.Ticker, err)
	}
	return nil
}

func (s *CompanyStore) GetCompany(ctx context.Context, ticker string) (*models.Company, error) {
	data, err := surrealdb.Select[models.Company](ctx, s.db, surrealmodels.NewRecordID("companies", ticker))
	if err != nil {
		return nil, fmt.Errorf("failed to select company: %w", err)
	}
	if data == nil || data.Ticker == "" {
		return nil, fmt.Errorf("company %s not found", ticker)
	}
	return data, nil
}

func (s *CompanyStore) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	sql := "SELECT * FROM companies ORDER BY ticker"
	results, err := surrealdb.Query[[]models.Company](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	var companies []*models.Company
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			companies = append(companies, &(*results)[0].Result[i])
		}
	}
	return companies, nil
}

// AppendPrices appends bars to stock_prices. Append-only; no dedup at the
// storage layer.
func (s *CompanyStore) AppendPrices(ctx context.Context, prices []models.StockPrice) error {
	if len(prices) == 0 {
		return nil
	}

	sql := "INSERT INTO stock_prices $data"
	vars := map[string]any{"data": prices}

	if _, err := surrealdb.Query[[]models.StockPrice](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to append stock prices: %w", err)
	}
	return nil
}

func (s *CompanyStore) GetPrices(ctx context.Context, ticker string) ([]models.StockPrice, error) {
	sql := "SELECT * FROM stock_prices WHERE ticker = $ticker ORDER BY date"
	vars := map[string]any{"ticker": ticker}

	results, err := surrealdb.Query[[]models.StockPrice](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock prices: %w", err)
	}

	if results != nil && len(*results) > 0 {
		return (*results)[0].Result, nil
	}
	return nil, nil
}
