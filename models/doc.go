// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, view, request and response types for the API.

# Domain Types

  - Learner: one participant record in a room (never deleted, only deactivated)
  - Status: a learner's reaction token, classified once when stored
  - RoomInfo: immutable room metadata (code, description, created_at)
  - RoomSummary: diagnostic listing row with the active learner count
  - RoomDump: full copy of a room used by the state export

# Status Classification

ParseStatus resolves a raw token into one of four kinds:

	StatusEmpty    ""
	StatusNamed    tick, cross, coffee, away, smile, hand-up, happy, ?
	StatusEstimate 0, 0.5, 1, 2, 3, 5, 8, 13, 20
	StatusOther    anything else, kept verbatim

Status values marshal to JSON as their raw token.

# View Types

  - RosterEntry: learner plus display glyph
  - PollTally: counts per status, highest count, ordered pairs
  - PokerView: optional PokerStats, consensus and per-learner estimates

Estimate marshals whole numbers without a fractional part, so a minimum of 1
encodes as 1 and a minimum of 0.5 as 0.5.

# Request Types

LearnerUpdate carries optional name, status and answer. A nil field is left
unchanged by the update.
*/
package models
