package stats

import (
	"fmt"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
)

// UnitsPerFoot converts court units to feet
const UnitsPerFoot = 10.0

// Aggregate summarizes a shot table. Percentages are 0 when there are no
// attempts in the denominator.
func Aggregate(table models.ShotTable) models.AggregateStats {
	var out models.AggregateStats
	var distanceSum float64

	for _, shot := range table.Shots {
		out.TotalAttempts++
		distanceSum += shot.Distance
		if shot.Made {
			out.MadeCount++
		}
		if shot.ShotType == models.ThreePoint {
			out.ThreePointAttempts++
			if shot.Made {
				out.ThreePointMade++
			}
		}
	}

	out.TwoPointAttempts = out.TotalAttempts - out.ThreePointAttempts
	out.FGPercent = percent(out.MadeCount, out.TotalAttempts)
	out.ThreePointPercent = percent(out.ThreePointMade, out.ThreePointAttempts)
	if out.TotalAttempts > 0 {
		out.AverageDistance = distanceSum / float64(out.TotalAttempts)
	}

	return out
}

func percent(made, attempts int) float64 {
	if attempts == 0 {
		return 0
	}
	return 100 * float64(made) / float64(attempts)
}

// FormatLines renders the annotation block shown under the basket
func FormatLines(s models.AggregateStats) []string {
	return []string{
		fmt.Sprintf("Total Attempts: %d", s.TotalAttempts),
		fmt.Sprintf("FG%%: %.1f%%", s.FGPercent),
		fmt.Sprintf("3P%%: %.1f%%", s.ThreePointPercent),
		fmt.Sprintf("Avg Distance: %.1f ft", s.AverageDistance/UnitsPerFoot),
	}
}
