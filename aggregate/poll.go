// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"sort"

	"github.com/danielhkuo/classpulse/models"
)

// Poll tallies the statuses of active learners. Empty statuses are not
// counted.
func Poll(learners []models.Learner) models.PollTally {
	tally := models.PollTally{
		Counts:  make(map[string]int),
		Ordered: []models.StatusCount{},
	}

	kinds := make(map[string]models.Status)
	for _, learner := range learners {
		if !learner.IsActive || learner.Status.IsEmpty() {
			continue
		}
		tally.Counts[learner.Status.Raw]++
		kinds[learner.Status.Raw] = learner.Status
	}

	for status, count := range tally.Counts {
		if count > tally.MaxCount {
			tally.MaxCount = count
		}
		tally.Ordered = append(tally.Ordered, models.StatusCount{Status: status, Count: count})
	}

	// Numbers first by value, so "2" sorts before "13"; then tokens
	// lexicographically
	sort.Slice(tally.Ordered, func(i, j int) bool {
		a, b := kinds[tally.Ordered[i].Status], kinds[tally.Ordered[j].Status]

		if a.Numeric != b.Numeric {
			return a.Numeric
		}
		if a.Numeric && a.Value != b.Value {
			return a.Value < b.Value
		}
		return a.Raw < b.Raw
	})

	return tally
}
