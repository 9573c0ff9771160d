// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"math"
	"sort"
	"strconv"

	"github.com/danielhkuo/classpulse/models"
)

// Statuses shown verbatim as a learner's estimate even though they carry no
// number
var displayedNonEstimates = map[string]bool{
	models.StatusAway:     true,
	models.StatusCoffee:   true,
	models.StatusQuestion: true,
	models.StatusHandUp:   true,
}

// Poker computes the planning poker view over active learners. Only
// statuses from the estimate deck feed the statistics.
func Poker(learners []models.Learner) models.PokerView {
	view := models.PokerView{
		Estimates: []models.LearnerEstimate{},
	}

	var values []float64
	for _, learner := range learners {
		if !learner.IsActive {
			continue
		}
		view.ActiveCount++

		view.Estimates = append(view.Estimates, models.LearnerEstimate{
			LearnerID: learner.ID,
			Name:      learner.Name,
			Estimate:  displayEstimate(learner.Status),
		})

		if learner.Status.Kind == models.StatusEstimate {
			values = append(values, learner.Status.Value)
		}
	}

	if len(values) == 0 {
		return view
	}

	sort.Float64s(values)

	sorted := make([]models.Estimate, len(values))
	for i, v := range values {
		sorted[i] = models.Estimate(v)
	}

	view.Stats = &models.PokerStats{
		Min:     models.Estimate(values[0]),
		Max:     models.Estimate(values[len(values)-1]),
		Count:   len(values),
		Average: roundTo(mean(values), 1),
		Values:  sorted,
	}

	// Consensus needs at least two matching votes
	votes := modeCount(values)
	if votes > 1 {
		view.Consensus = int(math.RoundToEven(float64(votes) / float64(len(values)) * 100))
		view.ConsensusVotes = votes
	}

	return view
}

func displayEstimate(status models.Status) string {
	if status.Kind == models.StatusEstimate || displayedNonEstimates[status.Raw] {
		return status.Raw
	}
	return ""
}

// mean calculates the arithmetic mean
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// modeCount returns the highest frequency of any single value
func modeCount(values []float64) int {
	counts := make(map[float64]int, len(values))
	highest := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > highest {
			highest = counts[v]
		}
	}
	return highest
}

// roundTo rounds to the given number of decimals using the exact binary
// value of v, so only true ties go to the even digit
func roundTo(v float64, decimals int) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}
