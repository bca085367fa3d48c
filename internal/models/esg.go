package models

import "time"

// Overall score weighting. Sentiment is computed and stored but does not
// enter the weighted overall.
const (
	WeightEnvironmental = 0.4
	WeightSocial        = 0.3
	WeightGovernance    = 0.3
)

// OverallScore combines the three dimension scores with the fixed weighting.
func OverallScore(env, social, gov float64) float64 {
	return env*WeightEnvironmental + social*WeightSocial + gov*WeightGovernance
}

// ESGScore holds per-company scores, each in [0,100]. Exactly one logical
// row per ticker; superseded on rescoring.
type ESGScore struct {
	Ticker        string    `json:"ticker"`
	Environmental float64   `json:"environmental_score"`
	Social        float64   `json:"social_score"`
	Governance    float64   `json:"governance_score"`
	Sentiment     float64   `json:"sentiment_score"`
	Overall       float64   `json:"overall_esg_score"`
	ScoredAt      time.Time `json:"scored_at"`
}

// NeutralScore returns the fixed neutral record used when a ticker has no
// report text and no news content.
func NeutralScore(ticker string) *ESGScore {
	return &ESGScore{
		Ticker:        ticker,
		Environmental: 50,
		Social:        50,
		Governance:    50,
		Sentiment:     50,
		Overall:       50,
		ScoredAt:      time.Now(),
	}
}

// SectorBenchmark holds synthetic reference scores for one sector, each in
// [0,100]. One row per sector; the table is fully replaced on regeneration.
type SectorBenchmark struct {
	Sector        string  `json:"sector"`
	Environmental float64 `json:"environmental_benchmark"`
	Social        float64 `json:"social_benchmark"`
	Governance    float64 `json:"governance_benchmark"`
	Overall       float64 `json:"overall_benchmark"`
}

// BenchmarkComparison joins a company's scores against its sector benchmark
// with signed differences (company minus benchmark). Fully recomputed on
// each run.
type BenchmarkComparison struct {
	Ticker string `json:"ticker"`
	Sector string `json:"sector"`

	CompanyEnvironmental   float64 `json:"company_env_score"`
	BenchmarkEnvironmental float64 `json:"sector_env_benchmark"`
	EnvironmentalDiff      float64 `json:"env_difference"`

	CompanySocial   float64 `json:"company_social_score"`
	BenchmarkSocial float64 `json:"sector_social_benchmark"`
	SocialDiff      float64 `json:"social_difference"`

	CompanyGovernance   float64 `json:"company_gov_score"`
	BenchmarkGovernance float64 `json:"sector_gov_benchmark"`
	GovernanceDiff      float64 `json:"gov_difference"`

	CompanyOverall   float64 `json:"company_overall_score"`
	BenchmarkOverall float64 `json:"sector_overall_benchmark"`
	OverallDiff      float64 `json:"overall_difference"`
}
