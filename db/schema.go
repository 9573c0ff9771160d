// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates the export tables.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema sticks to types and defaults both SQLite and PostgreSQL accept.
const schema = `
-- Rooms
CREATE TABLE IF NOT EXISTS room (
    code TEXT PRIMARY KEY,
    description TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    active_learners INTEGER NOT NULL DEFAULT 0,
    exported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Learners
CREATE TABLE IF NOT EXISTS learner (
    room_code TEXT NOT NULL REFERENCES room(code) ON DELETE CASCADE,
    learner_id TEXT NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT '',
    status_kind TEXT NOT NULL DEFAULT 'empty',
    answer TEXT NOT NULL DEFAULT '',
    hand_up_rank INTEGER NOT NULL DEFAULT 0,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    joined_at TIMESTAMP NOT NULL,
    last_communication TIMESTAMP NOT NULL,
    exported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (room_code, learner_id)
);

CREATE INDEX IF NOT EXISTS idx_learner_room_code ON learner(room_code);
CREATE INDEX IF NOT EXISTS idx_learner_hand_up ON learner(room_code, hand_up_rank);
`
