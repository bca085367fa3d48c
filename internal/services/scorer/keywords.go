package scorer

import "strings"

// Fixed keyword vocabularies for the three ESG dimensions. Scoring counts
// which keywords appear in the text at all, not how often.
var (
	environmentalKeywords = []string{
		"climate", "carbon", "emission", "renewable", "sustainable",
		"green", "environment", "pollution", "waste", "recycle",
		"energy efficiency",
	}

	socialKeywords = []string{
		"diversity", "inclusion", "community", "employee", "human rights",
		"fair wage", "health", "safety", "welfare", "education",
		"training", "equality",
	}

	governanceKeywords = []string{
		"governance", "board", "executive", "compliance", "ethics",
		"risk management", "transparency", "accountability", "shareholder",
		"audit", "compensation", "responsibility",
	}
)

// keywordScore counts how many vocabulary keywords occur in text
// (case-insensitive substring match, at most one hit per keyword) and
// saturates linearly at ten hits.
func keywordScore(text string, keywords []string) float64 {
	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	score := float64(10 * hits)
	if score > 100 {
		return 100
	}
	return score
}
