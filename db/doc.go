// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db exports room state to a SQL database for diagnostics.

The service keeps all state in memory. When DATABASE_URL is set, main
opens a connection and runs an Exporter that writes a copy of every room
and learner on a fixed interval and once more on shutdown. Nothing is
ever read back; a restart starts empty.

# Schema Creation

CreateSchema initializes the export tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - room: code, description, created_at, active_learners, exported_at
  - learner: one row per (room_code, learner_id), with status, status_kind,
    answer, hand_up_rank, is_active and timestamps

	room 1──* learner

# Exporting

	exporter := db.NewExporter(conn, cfg.DatabaseType, st)
	go exporter.Run(ctx, cfg.ExportInterval)

Each export runs in one transaction and upserts every row, so exports are
idempotent. Queries are written with ? placeholders and rebound to $n for
PostgreSQL.

# Drivers

  - sqlite: modernc.org/sqlite (pure Go, default)
  - postgres: github.com/lib/pq
*/
package db
