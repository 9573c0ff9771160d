// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package aggregate projects a room's learners into the tutor's views.

Every function takes a learner snapshot (store.Room.Learners) and ignores
inactive learners. None of them mutate their input or touch the store.

# Roster

	entries := aggregate.Roster(learners, aggregate.OrderJoined)
	queue := aggregate.HandQueue(learners)

Each entry carries a glyph: icon markup for the known reactions, the token
escaped and bolded for anything else, and &nbsp; for no status.
OrderHandQueue puts raised hands first in rank order.

# Poll Tally

	tally := aggregate.Poll(learners)

Counts learners per exact status token and reports the highest count.
Ordered lists numeric tokens first by value (2 before 13), then the rest by
byte-wise comparison (away, coffee, tick).

# Planning Poker

	view := aggregate.Poker(learners)

Only the deck values 0, 0.5, 1, 2, 3, 5, 8, 13, 20 count. When at least one
is present, Stats holds min, max, count, the average rounded to one decimal
and the sorted values. Consensus is the share of votes on the most common
value, rounded to a whole percent; when every vote differs it is 0 with 0
votes. ActiveCount includes learners who have not voted, so a view can show
"3 of 5 responded".
*/
package aggregate
