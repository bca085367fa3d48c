package benchmark

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/greeninvest/internal/common"
	"github.com/bobmcallan/greeninvest/internal/interfaces"
	"github.com/bobmcallan/greeninvest/internal/models"
)

type mockStorageManager struct {
	company *mockCompanyStore
	esg     *mockESGStore
}

func (m *mockStorageManager) CompanyStore() interfaces.CompanyStore     { return m.company }
func (m *mockStorageManager) ContentStore() interfaces.ContentStore     { return nil }
func (m *mockStorageManager) ESGStore() interfaces.ESGStore             { return m.esg }
func (m *mockStorageManager) PortfolioStore() interfaces.PortfolioStore { return nil }
func (m *mockStorageManager) FileStore() interfaces.FileStore           { return nil }
func (m *mockStorageManager) RawPath() string                           { return "" }
func (m *mockStorageManager) Close() error                              { return nil }

type mockCompanyStore struct {
	companies []*models.Company
}

func (m *mockCompanyStore) SaveCompany(_ context.Context, _ *models.Company) error { return nil }
func (m *mockCompanyStore) GetCompany(_ context.Context, _ string) (*models.Company, error) {
	return nil, errors.New("not found")
}
func (m *mockCompanyStore) ListCompanies(_ context.Context) ([]*models.Company, error) {
	return m.companies, nil
}
func (m *mockCompanyStore) AppendPrices(_ context.Context, _ []models.StockPrice) error { return nil }
func (m *mockCompanyStore) GetPrices(_ context.Context, _ string) ([]models.StockPrice, error) {
	return nil, nil
}

type mockESGStore struct {
	scores      []*models.ESGScore
	benchmarks  []models.SectorBenchmark
	comparisons []models.BenchmarkComparison

	replaceComparisonsErr error
	comparisonsReplaced   bool
}

func (m *mockESGStore) SaveScore(_ context.Context, _ *models.ESGScore) error { return nil }
func (m *mockESGStore) GetScore(_ context.Context, _ string) (*models.ESGScore, error) {
	return nil, errors.New("not found")
}
func (m *mockESGStore) ListScores(_ context.Context) ([]*models.ESGScore, error) {
	return m.scores, nil
}

func (m *mockESGStore) ReplaceBenchmarks(_ context.Context, benchmarks []models.SectorBenchmark) error {
	m.benchmarks = benchmarks
	return nil
}

func (m *mockESGStore) ListBenchmarks(_ context.Context) ([]models.SectorBenchmark, error) {
	return m.benchmarks, nil
}

func (m *mockESGStore) ReplaceComparisons(_ context.Context, comparisons []models.BenchmarkComparison) error {
	if m.replaceComparisonsErr != nil {
		return m.replaceComparisonsErr
	}
	m.comparisons = comparisons
	m.comparisonsReplaced = true
	return nil
}

func (m *mockESGStore) ListComparisons(_ context.Context) ([]models.BenchmarkComparison, error) {
	return m.comparisons, nil
}

func newTestService(storage *mockStorageManager, seed int64) *Service {
	return NewService(storage, common.NewSilentLogger(), WithRand(rand.New(rand.NewSource(seed))))
}

func TestGenerateSectorBenchmarksCoversAllSectors(t *testing.T) {
	esg := &mockESGStore{}
	svc := newTestService(&mockStorageManager{esg: esg}, 1)

	benchmarks, err := svc.GenerateSectorBenchmarks(context.Background())
	require.NoError(t, err)
	require.Len(t, benchmarks, len(Sectors))
	require.Len(t, esg.benchmarks, len(Sectors))

	for _, sector := range Sectors {
		b, ok := benchmarks[sector]
		require.True(t, ok, "missing sector %s", sector)
		assert.InDelta(t, models.OverallScore(b.Environmental, b.Social, b.Governance), b.Overall, 1e-9)
	}
}

func TestGenerateSectorBenchmarksDeterministicWithSeed(t *testing.T) {
	first, err := newTestService(&mockStorageManager{esg: &mockESGStore{}}, 42).GenerateSectorBenchmarks(context.Background())
	require.NoError(t, err)
	second, err := newTestService(&mockStorageManager{esg: &mockESGStore{}}, 42).GenerateSectorBenchmarks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDrawBenchmarkClampInvariant(t *testing.T) {
	svc := newTestService(&mockStorageManager{esg: &mockESGStore{}}, 7)

	for _, sector := range []string{"Technology", "Energy", "Utilities"} {
		for i := 0; i < 10000; i++ {
			b := svc.drawBenchmark(sector)
			for _, v := range []float64{b.Environmental, b.Social, b.Governance, b.Overall} {
				if v < 0 || v > 100 {
					t.Fatalf("sector %s draw %d out of range: %+v", sector, i, b)
				}
			}
		}
	}
}

func TestGenerateComparisonsDifferenceInvariant(t *testing.T) {
	esg := &mockESGStore{
		scores: []*models.ESGScore{
			{Ticker: "ACME", Environmental: 40, Social: 60, Governance: 70, Overall: models.OverallScore(40, 60, 70)},
		},
		benchmarks: []models.SectorBenchmark{
			{Sector: "Technology", Environmental: 75, Social: 80, Governance: 70, Overall: models.OverallScore(75, 80, 70)},
		},
	}
	company := &mockCompanyStore{companies: []*models.Company{{Ticker: "ACME", Sector: "Technology"}}}
	svc := newTestService(&mockStorageManager{esg: esg, company: company}, 1)

	comparisons, err := svc.GenerateComparisons(context.Background())
	require.NoError(t, err)
	require.Len(t, comparisons, 1)

	c := comparisons[0]
	assert.InDelta(t, c.CompanyEnvironmental-c.BenchmarkEnvironmental, c.EnvironmentalDiff, 1e-9)
	assert.InDelta(t, c.CompanySocial-c.BenchmarkSocial, c.SocialDiff, 1e-9)
	assert.InDelta(t, c.CompanyGovernance-c.BenchmarkGovernance, c.GovernanceDiff, 1e-9)
	assert.InDelta(t, c.CompanyOverall-c.BenchmarkOverall, c.OverallDiff, 1e-9)
	assert.True(t, esg.comparisonsReplaced)
}

func TestGenerateComparisonsMissingSectorUsesMean(t *testing.T) {
	esg := &mockESGStore{
		scores: []*models.ESGScore{
			{Ticker: "ODD", Environmental: 50, Social: 50, Governance: 50, Overall: 50},
		},
		benchmarks: []models.SectorBenchmark{
			{Sector: "Technology", Environmental: 80, Social: 60, Governance: 40, Overall: 62},
			{Sector: "Energy", Environmental: 40, Social: 40, Governance: 60, Overall: 46},
		},
	}
	company := &mockCompanyStore{companies: []*models.Company{{Ticker: "ODD", Sector: "Shipping"}}}
	svc := newTestService(&mockStorageManager{esg: esg, company: company}, 1)

	comparisons, err := svc.GenerateComparisons(context.Background())
	require.NoError(t, err)
	require.Len(t, comparisons, 1)

	c := comparisons[0]
	assert.InDelta(t, 60.0, c.BenchmarkEnvironmental, 1e-9)
	assert.InDelta(t, 50.0, c.BenchmarkSocial, 1e-9)
	assert.InDelta(t, 50.0, c.BenchmarkGovernance, 1e-9)
	assert.InDelta(t, 54.0, c.BenchmarkOverall, 1e-9)
}

func TestGenerateComparisonsPersistFailureReturnsNothing(t *testing.T) {
	esg := &mockESGStore{
		scores: []*models.ESGScore{
			{Ticker: "ACME", Environmental: 40, Social: 60, Governance: 70, Overall: 55},
		},
		benchmarks: []models.SectorBenchmark{
			{Sector: "Technology", Environmental: 75, Social: 80, Governance: 70, Overall: 74},
		},
		replaceComparisonsErr: errors.New("store unreachable"),
	}
	company := &mockCompanyStore{companies: []*models.Company{{Ticker: "ACME", Sector: "Technology"}}}
	svc := newTestService(&mockStorageManager{esg: esg, company: company}, 1)

	comparisons, err := svc.GenerateComparisons(context.Background())
	require.Error(t, err)
	assert.Nil(t, comparisons)
	assert.False(t, esg.comparisonsReplaced)
}

func TestGenerateComparisonsNoBenchmarksAborts(t *testing.T) {
	esg := &mockESGStore{
		scores: []*models.ESGScore{{Ticker: "ACME"}},
	}
	company := &mockCompanyStore{companies: []*models.Company{{Ticker: "ACME", Sector: "Technology"}}}
	svc := newTestService(&mockStorageManager{esg: esg, company: company}, 1)

	_, err := svc.GenerateComparisons(context.Background())
	require.Error(t, err)
}
