// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"html"
	"sort"

	"github.com/danielhkuo/classpulse/models"
)

// RosterOrder selects how Roster sorts its entries
type RosterOrder int

const (
	// OrderJoined lists learners by join time
	OrderJoined RosterOrder = iota
	// OrderHandQueue lists raised hands first, by rank, then everyone else by join time
	OrderHandQueue
)

const blankGlyph = "&nbsp;"

var glyphs = map[string]string{
	models.StatusTick:   `<i class="fas fa-check-circle tick"></i>`,
	models.StatusCross:  `<i class="fas fa-times-circle cross"></i>`,
	models.StatusCoffee: `<i class="fas fa-mug-hot coffee"></i>`,
	models.StatusAway:   `<i class="fas fa-clock away"></i>`,
	models.StatusSmile:  `<i class="fas fa-smile smile"></i>`,
	models.StatusHandUp: `<i class="far fa-hand-paper"></i>`,
	models.StatusHappy:  `<i class="fas fa-grin-stars happy"></i><i class="fas fa-grin-stars happy"></i>`,
}

// Glyph returns the display markup for a status. Unknown tokens are escaped
// and bolded.
func Glyph(status models.Status) string {
	if status.IsEmpty() {
		return blankGlyph
	}
	if glyph, ok := glyphs[status.Raw]; ok {
		return glyph
	}
	return "<b>" + html.EscapeString(status.Raw) + "</b>"
}

// Roster lists the active learners with their glyphs
func Roster(learners []models.Learner, order RosterOrder) []models.RosterEntry {
	active := activeLearners(learners)

	sort.SliceStable(active, func(i, j int) bool {
		a, b := active[i], active[j]

		if order == OrderHandQueue {
			aUp, bUp := isHandUp(a), isHandUp(b)
			if aUp != bUp {
				return aUp
			}
			if aUp && a.HandUpRank != b.HandUpRank {
				return a.HandUpRank < b.HandUpRank
			}
		}

		if !a.JoinedAt.Equal(b.JoinedAt) {
			return a.JoinedAt.Before(b.JoinedAt)
		}
		return a.ID < b.ID
	})

	entries := make([]models.RosterEntry, 0, len(active))
	for _, learner := range active {
		entries = append(entries, models.RosterEntry{
			Learner: learner,
			Glyph:   Glyph(learner.Status),
		})
	}

	return entries
}

// HandQueue lists only the raised hands, first raised first
func HandQueue(learners []models.Learner) []models.RosterEntry {
	roster := Roster(learners, OrderHandQueue)

	queue := []models.RosterEntry{}
	for _, entry := range roster {
		if !isHandUp(entry.Learner) {
			break
		}
		queue = append(queue, entry)
	}

	return queue
}

func activeLearners(learners []models.Learner) []models.Learner {
	active := make([]models.Learner, 0, len(learners))
	for _, learner := range learners {
		if learner.IsActive {
			active = append(active, learner)
		}
	}
	return active
}

func isHandUp(learner models.Learner) bool {
	return learner.Status.Is(models.StatusHandUp)
}
