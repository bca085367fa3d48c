package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/bobmcallan/greeninvest/internal/common"
	"github.com/bobmcallan/greeninvest/internal/models"
)

// PortfolioStore manages the portfolio table. Writes are wholesale replaces;
// merge-by-ticker happens in memory before a write reaches here.
type PortfolioStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewPortfolioStore(db *surrealdb.DB, logger *common.Logger) *PortfolioStore {
	return &PortfolioStore{db: db, logger: logger}
}

func (s *PortfolioStore) ReplacePortfolio(ctx context.Context, positions []models.PortfolioPosition) error {
	if _, err := surrealdb.Query[any](ctx, s.db, "DELETE portfolio", nil); err != nil {
		return fmt.Errorf("failed to clear portfolio: %w", err)
	}

	if len(positions) == 0 {
		return nil
	}

	sql := "INSERT INTO portfolio $data"
	vars := map[string]any{"data": positions}
	if _, err := surrealdb.Query[[]models.PortfolioPosition](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}

	s.logger.Debug().Int("positions", len(positions)).Msg("Portfolio replaced")
	return nil
}

func (s *PortfolioStore) GetPortfolio(ctx context.Context) ([]models.PortfolioPosition, error) {
	sql := "SELECT * FROM portfolio ORDER BY ticker"
	results, err := surrealdb.Query[[]models.PortfolioPosition](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}

	if results != nil && len(*results) > 0 {
		return (*results)[0].Result, nil
	}
	return nil, nil
}
