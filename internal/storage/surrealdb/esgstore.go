package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/bobmcallan/greeninvest/internal/common"
	"github.com/bobmcallan/greeninvest/internal/models"
)

// ESGStore manages esg_scores, sector_benchmarks, and
// company_benchmark_comparisons.
type ESGStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewESGStore(db *surrealdb.DB, logger *common.Logger) *ESGStore {
	return &ESGStore{db: db, logger: logger}
}

// SaveScore upserts the single logical row for a ticker. The record ID is
// the ticker, so delete-then-insert collapses into an idempotent UPSERT.
func (s *ESGStore) SaveScore(ctx context.Context, score *models.ESGScore) error {
	sql := "UPSERT $rid CONTENT $data"
	vars := map[string]any{
		"rid":  surrealmodels.NewRecordID("esg_scores", score.Ticker),
		"data": score,
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.ESGScore](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to save ESG score after retries: %w", lastErr)
}

func (s *ESGStore) GetScore(ctx context.Context, ticker string) (*models.ESGScore, error) {
	data, err := surrealdb.Select[models.ESGScore](ctx, s.db, surrealmodels.NewRecordID("esg_scores", ticker))
	if err != nil {
		return nil, fmt.Errorf("failed to select ESG score: %w", err)
	}
	if data == nil || data.Ticker == "" {
		return nil, fmt.Errorf("ESG score for %s not found", ticker)
	}
	return data, nil
}

func (s *ESGStore) ListScores(ctx context.Context) ([]*models.ESGScore, error) {
	sql := "SELECT * FROM esg_scores ORDER BY ticker"
	results, err := surrealdb.Query[[]models.ESGScore](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list ESG scores: %w", err)
	}

	var scores []*models.ESGScore
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			scores = append(scores, &(*results)[0].Result[i])
		}
	}
	return scores, nil
}

// ReplaceBenchmarks deletes all sector_benchmarks rows, then inserts the new
// set. Full replace, never incremental.
func (s *ESGStore) ReplaceBenchmarks(ctx context.Context, benchmarks []models.SectorBenchmark) error {
	if _, err := surrealdb.Query[any](ctx, s.db, "DELETE sector_benchmarks", nil); err != nil {
		return fmt.Errorf("failed to clear sector benchmarks: %w", err)
	}

	if len(benchmarks) == 0 {
		return nil
	}

	sql := "INSERT INTO sector_benchmarks $data"
	vars := map[string]any{"data": benchmarks}
	if _, err := surrealdb.Query[[]models.SectorBenchmark](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to insert sector benchmarks: %w", err)
	}
	return nil
}

func (s *ESGStore) ListBenchmarks(ctx context.Context) ([]models.SectorBenchmark, error) {
	sql := "SELECT * FROM sector_benchmarks ORDER BY sector"
	results, err := surrealdb.Query[[]models.SectorBenchmark](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list sector benchmarks: %w", err)
	}

	if results != nil && len(*results) > 0 {
		return (*results)[0].Result, nil
	}
	return nil, nil
}

// ReplaceComparisons deletes all comparison rows, then inserts the new set.
func (s *ESGStore) ReplaceComparisons(ctx context.Context, comparisons []models.BenchmarkComparison) error {
	if _, err := surrealdb.Query[any](ctx, s.db, "DELETE company_benchmark_comparisons", nil); err != nil {
		return fmt.Errorf("failed to clear comparisons: %w", err)
	}

	if len(comparisons) == 0 {
		return nil
	}

	sql := "INSERT INTO company_benchmark_comparisons $data"
	vars := map[string]any{"data": comparisons}
	if _, err := surrealdb.Query[[]models.BenchmarkComparison](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to insert comparisons: %w", err)
	}
	return nil
}

func (s *ESGStore) ListComparisons(ctx context.Context) ([]models.BenchmarkComparison, error) {
	sql := "SELECT * FROM company_benchmark_comparisons ORDER BY ticker"
	results, err := surrealdb.Query[[]models.BenchmarkComparison](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list comparisons: %w", err)
	}

	if results != nil && len(*results) > 0 {
		return (*results)[0].Result, nil
	}
	return nil, nil
}
