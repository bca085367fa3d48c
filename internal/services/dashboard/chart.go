package dashboard

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/greeninvest/internal/models"
)

var (
	companyBarColor   = drawing.ColorFromHex("16a34a") // green-600
	benchmarkBarColor = drawing.ColorFromHex("9ca3af") // gray-400
)

// renderScoreBars renders one bar per ticker with its overall ESG score.
// Returns raw PNG bytes.
func renderScoreBars(scores []*models.ESGScore) ([]byte, error) {
	if len(scores) == 0 {
		return nil, fmt.Errorf("no scores to chart")
	}

	bars := make([]chart.Value, len(scores))
	for i, s := range scores {
		bars[i] = chart.Value{
			Label: s.Ticker,
			Value: s.Overall,
			Style: chart.Style{FillColor: companyBarColor, StrokeColor: companyBarColor},
		}
	}

	graph := chart.BarChart{
		Title:    "Portfolio ESG Scores",
		Width:    900,
		Height:   400,
		BarWidth: 50,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// renderComparisonBars renders paired company/benchmark bars for one
// company's four score dimensions. Returns raw PNG bytes.
func renderComparisonBars(c models.BenchmarkComparison) ([]byte, error) {
	pair := func(label string, company, bench float64) []chart.Value {
		return []chart.Value{
			{Label: label, Value: company, Style: chart.Style{FillColor: companyBarColor, StrokeColor: companyBarColor}},
			{Label: label + " sector", Value: bench, Style: chart.Style{FillColor: benchmarkBarColor, StrokeColor: benchmarkBarColor}},
		}
	}

	var bars []chart.Value
	bars = append(bars, pair("Env", c.CompanyEnvironmental, c.BenchmarkEnvironmental)...)
	bars = append(bars, pair("Social", c.CompanySocial, c.BenchmarkSocial)...)
	bars = append(bars, pair("Gov", c.CompanyGovernance, c.BenchmarkGovernance)...)
	bars = append(bars, pair("Overall", c.CompanyOverall, c.BenchmarkOverall)...)

	graph := chart.BarChart{
		Title:    fmt.Sprintf("%s vs %s benchmark", c.Ticker, c.Sector),
		Width:    900,
		Height:   400,
		BarWidth: 40,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
