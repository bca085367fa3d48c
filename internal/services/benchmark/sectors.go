package benchmark

// Sectors is the fixed set of sector names benchmarks are generated for.
var Sectors = []string{
	"Technology",
	"Healthcare",
	"Financial Services",
	"Consumer Cyclical",
	"Industrials",
	"Communication Services",
	"Energy",
	"Basic Materials",
	"Consumer Defensive",
	"Utilities",
	"Real Estate",
}

// sectorProfile holds the normal-distribution parameters used to draw one
// sector's benchmark scores.
type sectorProfile struct {
	envMean, envStdDev       float64
	socialMean, socialStdDev float64
	govMean, govStdDev       float64
}

// Sector classes: tech and health sectors sit higher, extractive sectors
// lower with more spread, everything else in the middle.
var (
	highProfile = sectorProfile{
		envMean: 75, envStdDev: 10,
		socialMean: 80, socialStdDev: 8,
		govMean: 75, govStdDev: 12,
	}
	lowProfile = sectorProfile{
		envMean: 50, envStdDev: 15,
		socialMean: 60, socialStdDev: 10,
		govMean: 65, govStdDev: 10,
	}
	midProfile = sectorProfile{
		envMean: 65, envStdDev: 12,
		socialMean: 70, socialStdDev: 10,
		govMean: 70, govStdDev: 8,
	}
)

// profileFor maps a sector name to its distribution class.
func profileFor(sector string) sectorProfile {
	switch sector {
	case "Technology", "Healthcare":
		return highProfile
	case "Energy", "Basic Materials":
		return lowProfile
	default:
		return midProfile
	}
}

// clamp bounds a score to [0,100].
func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
