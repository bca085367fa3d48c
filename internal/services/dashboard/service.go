// Package dashboard serves read-only portfolio views and rendered charts.
package dashboard

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/bobmcallan/greeninvest/internal/common"
	"github.com/bobmcallan/greeninvest/internal/interfaces"
	"github.com/bobmcallan/greeninvest/internal/models"
)

const chartCategory = "charts"

// Service implements interfaces.DashboardService. There is no live quote
// feed; current prices are simulated as a uniform draw in [0.8, 1.2] times
// the purchase price.
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
	rng     *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithRand injects a seeded random source so price simulation becomes
// deterministic.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) {
		s.rng = rng
	}
}

// NewService creates a new dashboard service.
func NewService(storage interfaces.StorageManager, logger *common.Logger, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		logger:  logger,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PortfolioSummary computes the value-weighted ESG view of the portfolio.
// Positions without a persisted score are excluded from the weighted
// averages but still appear in the position list.
func (s *Service) PortfolioSummary(ctx context.Context) (*models.PortfolioSummary, error) {
	positions, err := s.storage.PortfolioStore().GetPortfolio(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	summary := &models.PortfolioSummary{}
	if len(positions) == 0 {
		return summary, nil
	}

	weights := make([]models.PositionWeight, len(positions))
	for i, p := range positions {
		current := s.simulateCurrentPrice(p.PurchasePrice)
		value := p.Shares * current
		weights[i] = models.PositionWeight{
			Ticker:       p.Ticker,
			Shares:       p.Shares,
			CurrentPrice: current,
			Value:        value,
		}
		summary.TotalValue += value
	}
	for i := range weights {
		if summary.TotalValue > 0 {
			weights[i].Weight = weights[i].Value / summary.TotalValue
		}
	}
	summary.Positions = weights

	var scoredValue, env, social, gov, overall float64
	for _, w := range weights {
		score, err := s.storage.ESGStore().GetScore(ctx, w.Ticker)
		if err != nil {
			s.logger.Debug().Str("ticker", w.Ticker).Msg("No ESG score for position")
			continue
		}
		scoredValue += w.Value
		env += w.Value * score.Environmental
		social += w.Value * score.Social
		gov += w.Value * score.Governance
		overall += w.Value * score.Overall
	}
	if scoredValue > 0 {
		summary.Environmental = env / scoredValue
		summary.Social = social / scoredValue
		summary.Governance = gov / scoredValue
		summary.Overall = overall / scoredValue
	}

	return summary, nil
}

// simulateCurrentPrice draws a uniform price in [0.8, 1.2] times purchase.
func (s *Service) simulateCurrentPrice(purchase float64) float64 {
	return purchase * (0.8 + 0.4*s.rng.Float64())
}

// RenderPortfolioChart renders the per-ticker overall score bar chart and
// caches the PNG in the file store.
func (s *Service) RenderPortfolioChart(ctx context.Context) ([]byte, error) {
	scores, err := s.storage.ESGStore().ListScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ESG scores: %w", err)
	}

	png, err := renderScoreBars(scores)
	if err != nil {
		return nil, err
	}

	if err := s.storage.FileStore().SaveFile(ctx, chartCategory, "portfolio.png", png, "image/png"); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to cache portfolio chart")
	}
	return png, nil
}

// RenderComparisonChart renders company-vs-benchmark bars for one ticker and
// caches the PNG in the file store.
func (s *Service) RenderComparisonChart(ctx context.Context, ticker string) ([]byte, error) {
	ticker = strings.ToUpper(ticker)

	comparisons, err := s.storage.ESGStore().ListComparisons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load comparisons: %w", err)
	}

	for _, c := range comparisons {
		if c.Ticker != ticker {
			continue
		}
		png, err := renderComparisonBars(c)
		if err != nil {
			return nil, err
		}
		key := fmt.Sprintf("comparison_%s.png", ticker)
		if err := s.storage.FileStore().SaveFile(ctx, chartCategory, key, png, "image/png"); err != nil {
			s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Failed to cache comparison chart")
		}
		return png, nil
	}

	return nil, fmt.Errorf("no comparison available for %s", ticker)
}

// Compile-time check
var _ interfaces.DashboardService = (*Service)(nil)
