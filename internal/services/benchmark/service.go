// Package benchmark generates synthetic sector benchmarks and joins company
// scores against them.
package benchmark

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/bobmcallan/greeninvest/internal/common"
	"github.com/bobmcallan/greeninvest/internal/interfaces"
	"github.com/bobmcallan/greeninvest/internal/models"
)

// Service implements interfaces.BenchmarkService.
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
	rng     *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithRand injects a seeded random source so benchmark generation becomes
// deterministic. Production runs use the unseeded default.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) {
		s.rng = rng
	}
}

// NewService creates a new benchmark service.
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

// GenerateSectorBenchmarks draws fresh scores for every known sector and
// fully replaces the sector_benchmarks table.
func (s *Service) GenerateSectorBenchmarks(ctx context.Context) (map[string]models.SectorBenchmark, error) {
	benchmarks := make(map[string]models.SectorBenchmark, len(Sectors))
	rows := make([]models.SectorBenchmark, 0, len(Sectors))

	for _, sector := range Sectors {
		b := s.drawBenchmark(sector)
		benchmarks[sector] = b
		rows = append(rows, b)
	}

	if err := s.storage.ESGStore().ReplaceBenchmarks(ctx, rows); err != nil {
		return nil, fmt.Errorf("failed to persist sector benchmarks: %w", err)
	}

	s.logger.Info().Int("sectors", len(rows)).Msg("Sector benchmarks regenerated")
	return benchmarks, nil
}

// drawBenchmark samples one sector's scores from its class distribution.
func (s *Service) drawBenchmark(sector string) models.SectorBenchmark {
	p := profileFor(sector)

	env := clamp(s.rng.NormFloat64()*p.envStdDev + p.envMean)
	social := clamp(s.rng.NormFloat64()*p.socialStdDev + p.socialMean)
	gov := clamp(s.rng.NormFloat64()*p.govStdDev + p.govMean)

	return models.SectorBenchmark{
		Sector:        sector,
		Environmental: env,
		Social:        social,
		Governance:    gov,
		Overall:       models.OverallScore(env, social, gov),
	}
}

// GenerateComparisons joins every scored company against its sector's
// benchmark and fully replaces the comparisons table. Any error aborts the
// run with nothing persisted.
func (s *Service) GenerateComparisons(ctx context.Context) ([]models.BenchmarkComparison, error) {
	scores, err := s.storage.ESGStore().ListScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ESG scores: %w", err)
	}

	companies, err := s.storage.CompanyStore().ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load companies: %w", err)
	}
	sectorByTicker := make(map[string]string, len(companies))
	for _, c := range companies {
		sectorByTicker[c.Ticker] = c.Sector
	}

	benchmarks, err := s.storage.ESGStore().ListBenchmarks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sector benchmarks: %w", err)
	}
	if len(benchmarks) == 0 {
		return nil, fmt.Errorf("no sector benchmarks available")
	}
	benchBySector := make(map[string]models.SectorBenchmark, len(benchmarks))
	for _, b := range benchmarks {
		benchBySector[b.Sector] = b
	}
	fallback := meanBenchmark(benchmarks)

	var comparisons []models.BenchmarkComparison
	for _, score := range scores {
		sector, ok := sectorByTicker[score.Ticker]
		if !ok {
			s.logger.Debug().Str("ticker", score.Ticker).Msg("Scored ticker has no company row, excluded from join")
			continue
		}

		bench, ok := benchBySector[sector]
		if !ok {
			s.logger.Warn().Str("ticker", score.Ticker).Str("sector", sector).Msg("Sector has no benchmark, using cross-sector mean")
			bench = fallback
		}

		comparisons = append(comparisons, models.BenchmarkComparison{
			Ticker: score.Ticker,
			Sector: sector,

			CompanyEnvironmental:   score.Environmental,
			BenchmarkEnvironmental: bench.Environmental,
			EnvironmentalDiff:      score.Environmental - bench.Environmental,

			CompanySocial:   score.Social,
			BenchmarkSocial: bench.Social,
			SocialDiff:      score.Social - bench.Social,

			CompanyGovernance:   score.Governance,
			BenchmarkGovernance: bench.Governance,
			GovernanceDiff:      score.Governance - bench.Governance,

			CompanyOverall:   score.Overall,
			BenchmarkOverall: bench.Overall,
			OverallDiff:      score.Overall - bench.Overall,
		})
	}

	if err := s.storage.ESGStore().ReplaceComparisons(ctx, comparisons); err != nil {
		return nil, fmt.Errorf("failed to persist comparisons: %w", err)
	}

	s.logger.Info().Int("comparisons", len(comparisons)).Msg("Benchmark comparisons recomputed")
	return comparisons, nil
}

// meanBenchmark computes the column-wise mean across all benchmark rows,
// used when a company's sector has no benchmark of its own.
func meanBenchmark(benchmarks []models.SectorBenchmark) models.SectorBenchmark {
	var mean models.SectorBenchmark
	n := float64(len(benchmarks))
	for _, b := range benchmarks {
		mean.Environmental += b.Environmental / n
		mean.Social += b.Social / n
		mean.Governance += b.Governance / n
		mean.Overall += b.Overall / n
	}
	return mean
}

// Compile-time check
var _ interfaces.BenchmarkService = (*Service)(nil)
