// Package postgres backs the analytics engine with the events table,
// exposing each event's time span start as the row timestamp and its
// status and tag labels as categorical features.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/eventhawk-lab/eventhawk/internal/analytics"
	"github.com/eventhawk-lab/eventhawk/internal/core/dataset"
)

// queryBarDataset loads every event with a known time span start,
// oldest first. Events without one cannot be bucketed and are skipped.
const queryBarDataset = `
	SELECT event_start, status, tag
	FROM events
	WHERE event_start IS NOT NULL
	ORDER BY event_start ASC
`

// Source implements analytics.DataSource over a PostgreSQL events table.
// The line series has no relational backing; those loads are delegated to
// the fallback source when one is configured.
type Source struct {
	db       *sql.DB
	fallback analytics.DataSource
}

func New(db *sql.DB, fallback analytics.DataSource) *Source {
	return &Source{db: db, fallback: fallback}
}

func (s *Source) Load(ctx context.Context, kind analytics.Kind) (*dataset.Dataset, error) {
	switch kind {
	case analytics.KindBar:
		return s.loadBar(ctx)
	case analytics.KindLine:
		if s.fallback == nil {
			return nil, fmt.Errorf("no backing source for dataset kind %q", kind)
		}
		return s.fallback.Load(ctx, kind)
	default:
		return nil, fmt.Errorf("unknown dataset kind %q", kind)
	}
}

func (s *Source) loadBar(ctx context.Context) (*dataset.Dataset, error) {
	rows, err := s.db.QueryContext(ctx, queryBarDataset)
	if err != nil {
		return nil, fmt.Errorf("failed to query bar dataset: %w", err)
	}
	defer rows.Close()

	var (
		times    []time.Time
		statuses []string
		tags     []string
	)
	for rows.Next() {
		var ts time.Time
		var status, tag string
		if err := rows.Scan(&ts, &status, &tag); err != nil {
			return nil, fmt.Errorf("failed to scan bar dataset row: %w", err)
		}
		times = append(times, ts.UTC())
		statuses = append(statuses, status)
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bar dataset rows: %w", err)
	}

	slog.Debug("[Postgres] Loaded bar dataset", "rows", len(times))

	return dataset.NewBuilder().
		AddTime(dataset.TimestampColumn, times).
		AddString("status", statuses).
		AddString("tag", tags).
		Build()
}
