// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/classpulse/models"
)

// Source is anything that can produce a point-in-time copy of every room.
// *store.Store satisfies it.
type Source interface {
	Dump() []models.RoomDump
}

// ExportStats reports what one export wrote
type ExportStats struct {
	Rooms    int
	Learners int
}

// Exporter copies in-memory state into a SQL database. It never reads the
// state back.
type Exporter struct {
	conn   *sql.DB
	driver string
	source Source
	now    func() time.Time
}

// NewExporter returns an exporter for conn. driver is "sqlite" or
// "postgres" and selects the placeholder style.
func NewExporter(conn *sql.DB, driver string, source Source) *Exporter {
	return &Exporter{
		conn:   conn,
		driver: driver,
		source: source,
		now:    time.Now,
	}
}

const upsertRoomSQL = `
INSERT INTO room (code, description, created_at, active_learners, exported_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (code) DO UPDATE SET
    description = excluded.description,
    active_learners = excluded.active_learners,
    exported_at = excluded.exported_at`

const upsertLearnerSQL = `
INSERT INTO learner (room_code, learner_id, name, status, status_kind, answer,
    hand_up_rank, is_active, joined_at, last_communication, exported_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (room_code, learner_id) DO UPDATE SET
    name = excluded.name,
    status = excluded.status,
    status_kind = excluded.status_kind,
    answer = excluded.answer,
    hand_up_rank = excluded.hand_up_rank,
    is_active = excluded.is_active,
    last_communication = excluded.last_communication,
    exported_at = excluded.exported_at`

// Export writes the current state in a single transaction. Rows are
// upserted, so repeated exports of unchanged state are idempotent.
func (e *Exporter) Export(ctx context.Context) (ExportStats, error) {
	var stats ExportStats
	rooms := e.source.Dump()
	exportedAt := e.now().UTC()

	tx, err := e.conn.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("failed to begin export: %w", err)
	}
	defer tx.Rollback()

	roomStmt, err := tx.PrepareContext(ctx, e.rebind(upsertRoomSQL))
	if err != nil {
		return stats, fmt.Errorf("failed to prepare room upsert: %w", err)
	}
	defer roomStmt.Close()

	learnerStmt, err := tx.PrepareContext(ctx, e.rebind(upsertLearnerSQL))
	if err != nil {
		return stats, fmt.Errorf("failed to prepare learner upsert: %w", err)
	}
	defer learnerStmt.Close()

	for _, dump := range rooms {
		active := 0
		for _, l := range dump.Learners {
			if l.IsActive {
				active++
			}
		}

		_, err := roomStmt.ExecContext(ctx,
			dump.Room.Code,
			dump.Room.Description,
			dump.Room.CreatedAt.UTC(),
			active,
			exportedAt,
		)
		if err != nil {
			return stats, fmt.Errorf("failed to export room %s: %w", dump.Room.Code, err)
		}
		stats.Rooms++

		for _, l := range dump.Learners {
			_, err := learnerStmt.ExecContext(ctx,
				dump.Room.Code,
				l.ID,
				l.Name,
				l.Status.Raw,
				l.Status.Kind.String(),
				l.Answer,
				l.HandUpRank,
				l.IsActive,
				l.JoinedAt.UTC(),
				l.LastCommunication.UTC(),
				exportedAt,
			)
			if err != nil {
				return stats, fmt.Errorf("failed to export learner %s in room %s: %w", l.ID, dump.Room.Code, err)
			}
			stats.Learners++
		}
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("failed to commit export: %w", err)
	}

	return stats, nil
}

// Run exports every interval until ctx is cancelled, then performs one
// final export with a fresh deadline.
func (e *Exporter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.exportAndLog(ctx)
		case <-ctx.Done():
			final, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			e.exportAndLog(final)
			cancel()
			return
		}
	}
}

func (e *Exporter) exportAndLog(ctx context.Context) {
	start := time.Now()
	stats, err := e.Export(ctx)
	if err != nil {
		slog.Error("state export failed", "error", err)
		return
	}
	slog.Debug("state exported",
		"rooms", stats.Rooms,
		"learners", stats.Learners,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// rebind rewrites ? placeholders as $1, $2, ... for PostgreSQL
func (e *Exporter) rebind(query string) string {
	if e.driver != "postgres" {
		return query
	}

	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
