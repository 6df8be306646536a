// Package scoring holds the pure candidate scoring and list filter/sort
// logic. Nothing here touches the database or the network; every function
// works over an in-memory snapshot and returns a new value.
package scoring

import (
	"math"

	"github.com/ca-vahid/hiring-manager/internal/models"
)

// Overall computes the weighted mean of the category scores, normalized by
// the sum of the weights actually applied and rounded to one decimal place.
// Categories without a matching weight are ignored, not zero-weighted. If no
// category carries a weight the result is 0.
func Overall(scores models.CategoryScores, weights models.CategoryWeights) float64 {
	var sum, total float64
	for name, score := range scores {
		weight, ok := weights[name]
		if !ok {
			continue
		}
		sum += float64(score) * weight
		total += weight
	}
	if total == 0 {
		return 0
	}
	return round1(sum / total)
}

// round1 rounds to one decimal digit, half away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ClampScore forces a raw score into the valid 0-10 category range.
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
