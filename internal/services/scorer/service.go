// Package scorer computes per-company ESG scores from ingested text.
package scorer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bobmcallan/greeninvest/internal/common"
	"github.com/bobmcallan/greeninvest/internal/interfaces"
	"github.com/bobmcallan/greeninvest/internal/models"
)

const sentimentBatchSize = 10

// Service implements interfaces.ScorerService.
type Service struct {
	storage   interfaces.StorageManager
	sentiment interfaces.SentimentClient
	logger    *common.Logger
}

// NewService creates a new scorer service.
func NewService(storage interfaces.StorageManager, sentiment interfaces.SentimentClient, logger *common.Logger) *Service {
	return &Service{
		storage:   storage,
		sentiment: sentiment,
		logger:    logger,
	}
}

// ScoreCompany scores one ticker from its report text and news content and
// persists the result. A ticker with no text at all gets the fixed neutral
// record.
func (s *Service) ScoreCompany(ctx context.Context, ticker string) (*models.ESGScore, error) {
	s.logger.Info().Str("ticker", ticker).Msg("Scoring company")

	blob, err := s.gatherText(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to gather text for %s: %w", ticker, err)
	}
	if strings.TrimSpace(blob) == "" {
		s.logger.Warn().Str("ticker", ticker).Msg("No text available, using neutral score")
		neutral := models.NeutralScore(ticker)
		if err := s.storage.ESGStore().SaveScore(ctx, neutral); err != nil {
			return nil, err
		}
		return neutral, nil
	}

	env := keywordScore(blob, environmentalKeywords)
	social := keywordScore(blob, socialKeywords)
	gov := keywordScore(blob, governanceKeywords)
	sentiment := s.sentimentScore(ctx, blob)

	score := &models.ESGScore{
		Ticker:        ticker,
		Environmental: env,
		Social:        social,
		Governance:    gov,
		Sentiment:     sentiment,
		Overall:       models.OverallScore(env, social, gov),
		ScoredAt:      time.Now(),
	}

	if err := s.storage.ESGStore().SaveScore(ctx, score); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("ticker", ticker).
		Float64("environmental", env).
		Float64("social", social).
		Float64("governance", gov).
		Float64("sentiment", sentiment).
		Float64("overall", score.Overall).
		Msg("Company scored")

	return score, nil
}

// ScorePortfolio scores each ticker in turn. A failing ticker is logged and
// skipped; the batch always runs to completion.
func (s *Service) ScorePortfolio(ctx context.Context, tickers []string) ([]*models.ESGScore, error) {
	scores := make([]*models.ESGScore, 0, len(tickers))
	for _, ticker := range tickers {
		score, err := s.ScoreCompany(ctx, ticker)
		if err != nil {
			s.logger.Error().Err(err).Str("ticker", ticker).Msg("Failed to score company, skipping")
			continue
		}
		scores = append(scores, score)
	}
	return scores, nil
}

// gatherText concatenates the report text and all news content rows for a
// ticker. A missing row contributes nothing; a store failure surfaces as an
// error so the caller never scores on partial text.
func (s *Service) gatherText(ctx context.Context, ticker string) (string, error) {
	var parts []string

	report, err := s.storage.ContentStore().GetReportText(ctx, ticker)
	switch {
	case err == nil:
		if report.Text != "" {
			parts = append(parts, report.Text)
		}
	case isNotFoundError(err):
		s.logger.Debug().Err(err).Str("ticker", ticker).Msg("No report text")
	default:
		return "", err
	}

	contents, err := s.storage.ContentStore().GetNewsContent(ctx, ticker)
	if err != nil {
		if !isNotFoundError(err) {
			return "", err
		}
		s.logger.Debug().Err(err).Str("ticker", ticker).Msg("No news content")
	} else {
		for _, c := range contents {
			if c.Content != "" {
				parts = append(parts, c.Content)
			}
		}
	}

	return strings.Join(parts, " "), nil
}

// isNotFoundError distinguishes a missing row from a store failure.
func isNotFoundError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "no record")
}

// sentimentScore classifies the blob's sentences in fixed-size batches and
// returns the positive fraction scaled to [0,100]. No sentences, or a
// classifier failure, yields the neutral 50.
func (s *Service) sentimentScore(ctx context.Context, blob string) float64 {
	if s.sentiment == nil {
		s.logger.Debug().Msg("No sentiment classifier configured, defaulting to neutral")
		return 50
	}

	sentences := splitSentences(blob)
	if len(sentences) == 0 {
		return 50
	}

	positives := 0
	for _, batch := range batchSentences(sentences, sentimentBatchSize) {
		labels, err := s.sentiment.ClassifySentences(ctx, batch)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Sentiment classification failed, defaulting to neutral")
			return 50
		}
		for _, positive := range labels {
			if positive {
				positives++
			}
		}
	}

	return 100 * float64(positives) / float64(len(sentences))
}

// Compile-time check
var _ interfaces.ScorerService = (*Service)(nil)
