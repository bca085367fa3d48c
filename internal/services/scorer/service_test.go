package scorer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/greeninvest/internal/common"
	"github.com/bobmcallan/greeninvest/internal/interfaces"
	"github.com/bobmcallan/greeninvest/internal/models"
)

type mockStorageManager struct {
	content *mockContentStore
	esg     *mockESGStore
}

func (m *mockStorageManager) CompanyStore() interfaces.CompanyStore     { return nil }
func (m *mockStorageManager) ContentStore() interfaces.ContentStore     { return m.content }
func (m *mockStorageManager) ESGStore() interfaces.ESGStore             { return m.esg }
func (m *mockStorageManager) PortfolioStore() interfaces.PortfolioStore { return nil }
func (m *mockStorageManager) FileStore() interfaces.FileStore           { return nil }
func (m *mockStorageManager) RawPath() string                           { return "" }
func (m *mockStorageManager) Close() error                              { return nil }

type mockContentStore struct {
	reports  map[string]string
	news     map[string][]string
	storeErr error
}

func (m *mockContentStore) AppendNews(_ context.Context, _ []models.NewsItem) error { return nil }
func (m *mockContentStore) GetNews(_ context.Context, _ string) ([]models.NewsItem, error) {
	return nil, nil
}
func (m *mockContentStore) AppendNewsContent(_ context.Context, _ []models.NewsContent) error {
	return nil
}

func (m *mockContentStore) GetNewsContent(_ context.Context, ticker string) ([]models.NewsContent, error) {
	if m.storeErr != nil {
		return nil, m.storeErr
	}
	var contents []models.NewsContent
	for _, text := range m.news[ticker] {
		contents = append(contents, models.NewsContent{Ticker: ticker, Content: text})
	}
	return contents, nil
}

func (m *mockContentStore) SaveReportText(_ context.Context, _ *models.ReportText) error { return nil }

func (m *mockContentStore) GetReportText(_ context.Context, ticker string) (*models.ReportText, error) {
	if m.storeErr != nil {
		return nil, m.storeErr
	}
	text, ok := m.reports[ticker]
	if !ok {
		return nil, errors.New("not found")
	}
	return &models.ReportText{Ticker: ticker, Text: text}, nil
}

type mockESGStore struct {
	saved    map[string]*models.ESGScore
	failFor  string
	saveErrs int
}

func (m *mockESGStore) SaveScore(_ context.Context, score *models.ESGScore) error {
	if score.Ticker == m.failFor {
		m.saveErrs++
		return errors.New("save failed")
	}
	if m.saved == nil {
		m.saved = make(map[string]*models.ESGScore)
	}
	m.saved[score.Ticker] = score
	return nil
}

func (m *mockESGStore) GetScore(_ context.Context, ticker string) (*models.ESGScore, error) {
	score, ok := m.saved[ticker]
	if !ok {
		return nil, errors.New("not found")
	}
	return score, nil
}

func (m *mockESGStore) ListScores(_ context.Context) ([]*models.ESGScore, error) { return nil, nil }
func (m *mockESGStore) ReplaceBenchmarks(_ context.Context, _ []models.SectorBenchmark) error {
	return nil
}
func (m *mockESGStore) ListBenchmarks(_ context.Context) ([]models.SectorBenchmark, error) {
	return nil, nil
}
func (m *mockESGStore) ReplaceComparisons(_ context.Context, _ []models.BenchmarkComparison) error {
	return nil
}
func (m *mockESGStore) ListComparisons(_ context.Context) ([]models.BenchmarkComparison, error) {
	return nil, nil
}

type mockSentimentClient struct {
	positive bool
	err      error
	calls    int
}

func (m *mockSentimentClient) ClassifySentences(_ context.Context, sentences []string) ([]bool, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	labels := make([]bool, len(sentences))
	for i := range labels {
		labels[i] = m.positive
	}
	return labels, nil
}

func newTestService(content *mockContentStore, esg *mockESGStore, sentiment *mockSentimentClient) *Service {
	storage := &mockStorageManager{content: content, esg: esg}
	return NewService(storage, sentiment, common.NewSilentLogger())
}

func TestScoreCompanyEnvironmentalKeywords(t *testing.T) {
	content := &mockContentStore{
		reports: map[string]string{
			"ACME": "Our carbon emission and renewable energy programs continue to expand",
		},
	}
	esg := &mockESGStore{}
	svc := newTestService(content, esg, &mockSentimentClient{positive: true})

	score, err := svc.ScoreCompany(context.Background(), "ACME")
	require.NoError(t, err)

	assert.Equal(t, 30.0, score.Environmental)
	assert.Equal(t, 0.0, score.Social)
	assert.Equal(t, 0.0, score.Governance)
	assert.Equal(t, 12.0, score.Overall)
	require.Contains(t, esg.saved, "ACME")
}

func TestScoreCompanyNoTextYieldsNeutral(t *testing.T) {
	content := &mockContentStore{reports: map[string]string{}}
	esg := &mockESGStore{}
	svc := newTestService(content, esg, &mockSentimentClient{})

	score, err := svc.ScoreCompany(context.Background(), "GHOST")
	require.NoError(t, err)

	assert.Equal(t, 50.0, score.Environmental)
	assert.Equal(t, 50.0, score.Social)
	assert.Equal(t, 50.0, score.Governance)
	assert.Equal(t, 50.0, score.Sentiment)
	assert.Equal(t, 50.0, score.Overall)
	require.Contains(t, esg.saved, "GHOST")
}

func TestScoreCompanyStoreFailureSurfacesError(t *testing.T) {
	content := &mockContentStore{storeErr: errors.New("store unreachable")}
	esg := &mockESGStore{}
	svc := newTestService(content, esg, &mockSentimentClient{})

	score, err := svc.ScoreCompany(context.Background(), "ACME")
	require.Error(t, err)
	assert.Nil(t, score)

	// A store outage must not fabricate a neutral score.
	assert.Empty(t, esg.saved)
}

func TestScorePortfolioSkipsStoreFailures(t *testing.T) {
	content := &mockContentStore{storeErr: errors.New("store unreachable")}
	esg := &mockESGStore{}
	svc := newTestService(content, esg, &mockSentimentClient{})

	scores, err := svc.ScorePortfolio(context.Background(), []string{"ACME", "GLOBEX"})
	require.NoError(t, err)
	assert.Empty(t, scores)
	assert.Empty(t, esg.saved)
}

func TestScoreCompanyCombinesReportAndNews(t *testing.T) {
	content := &mockContentStore{
		reports: map[string]string{"ACME": "Strong governance and board oversight"},
		news: map[string][]string{
			"ACME": {"New diversity and inclusion targets announced"},
		},
	}
	esg := &mockESGStore{}
	svc := newTestService(content, esg, &mockSentimentClient{positive: true})

	score, err := svc.ScoreCompany(context.Background(), "ACME")
	require.NoError(t, err)

	assert.Equal(t, 20.0, score.Governance)
	assert.Equal(t, 20.0, score.Social)
}

func TestScoreCompanySentimentClassifierFailureDefaultsNeutral(t *testing.T) {
	content := &mockContentStore{
		reports: map[string]string{"ACME": "Carbon reduction on track. Waste programs grew."},
	}
	esg := &mockESGStore{}
	svc := newTestService(content, esg, &mockSentimentClient{err: errors.New("quota exceeded")})

	score, err := svc.ScoreCompany(context.Background(), "ACME")
	require.NoError(t, err)
	assert.Equal(t, 50.0, score.Sentiment)
}

func TestScoreCompanySentimentFraction(t *testing.T) {
	content := &mockContentStore{
		reports: map[string]string{"ACME": "Carbon down. Growth up. Staff happy. Audit clean."},
	}
	esg := &mockESGStore{}
	sentiment := &mockSentimentClient{positive: true}
	svc := newTestService(content, esg, sentiment)

	score, err := svc.ScoreCompany(context.Background(), "ACME")
	require.NoError(t, err)
	assert.Equal(t, 100.0, score.Sentiment)
	assert.Equal(t, 1, sentiment.calls)
}

func TestScoreCompanySentimentBatching(t *testing.T) {
	sentences := make([]string, 25)
	for i := range sentences {
		sentences[i] = "Carbon levels fell again"
	}
	content := &mockContentStore{
		reports: map[string]string{"ACME": strings.Join(sentences, ". ") + "."},
	}
	sentiment := &mockSentimentClient{positive: false}
	svc := newTestService(content, &mockESGStore{}, sentiment)

	score, err := svc.ScoreCompany(context.Background(), "ACME")
	require.NoError(t, err)
	assert.Equal(t, 3, sentiment.calls)
	assert.Equal(t, 0.0, score.Sentiment)
}

func TestScorePortfolioSkipsFailures(t *testing.T) {
	content := &mockContentStore{
		reports: map[string]string{
			"A": "Carbon programs",
			"B": "Board governance",
		},
	}
	esg := &mockESGStore{failFor: "A"}
	svc := newTestService(content, esg, &mockSentimentClient{positive: true})

	scores, err := svc.ScorePortfolio(context.Background(), []string{"A", "B"})
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "B", scores[0].Ticker)
	assert.Equal(t, 1, esg.saveErrs)
}

func TestKeywordScoreSaturates(t *testing.T) {
	text := strings.Join(environmentalKeywords, " ")
	assert.Equal(t, 100.0, keywordScore(text, environmentalKeywords))
}

func TestKeywordScoreCountsPresenceNotOccurrences(t *testing.T) {
	text := "carbon carbon carbon carbon"
	assert.Equal(t, 10.0, keywordScore(text, environmentalKeywords))
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("One. Two! Three? ")
	assert.Equal(t, []string{"One", "Two", "Three"}, got)

	assert.Empty(t, splitSentences("   "))
	assert.Equal(t, []string{"No terminator"}, splitSentences("No terminator"))
}
