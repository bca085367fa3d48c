package models

// PortfolioPosition is a user-supplied holding. The portfolio table is
// replaced wholesale on edit; single-position edits are merged in memory
// (update-or-append by ticker) before the replace.
type PortfolioPosition struct {
	Ticker        string  `json:"ticker"`
	Shares        float64 `json:"shares"`
	PurchasePrice float64 `json:"purchase_price"`
}

// MergePosition returns positions with pos updated in place if its ticker
// already exists, or appended otherwise. The input slice is not modified.
func MergePosition(positions []PortfolioPosition, pos PortfolioPosition) []PortfolioPosition {
	merged := make([]PortfolioPosition, len(positions))
	copy(merged, positions)
	for i := range merged {
		if merged[i].Ticker == pos.Ticker {
			merged[i] = pos
			return merged
		}
	}
	return append(merged, pos)
}

// PortfolioSummary is the value-weighted ESG view of the portfolio served by
// the dashboard.
type PortfolioSummary struct {
	TotalValue    float64          `json:"total_value"`
	Positions     []PositionWeight `json:"positions"`
	Environmental float64          `json:"weighted_environmental"`
	Social        float64          `json:"weighted_social"`
	Governance    float64          `json:"weighted_governance"`
	Overall       float64          `json:"weighted_overall"`
}

// PositionWeight is one holding with its simulated market value and weight.
type PositionWeight struct {
	Ticker       string  `json:"ticker"`
	Shares       float64 `json:"shares"`
	CurrentPrice float64 `json:"current_price"`
	Value        float64 `json:"value"`
	Weight       float64 `json:"weight"`
}
