package postgres

import (
	"database/sql"
	"fmt"
	"time"

	v1 "github.com/eventhawk-lab/eventhawk/internal/api/v1"
)

// nullableTime converts an optional time into its SQL representation,
// producing NULL for absent values.
func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanEventRow scans one row into an Event. Compatible with both sql.Row
// and sql.Rows.
func scanEventRow(row scanner) (*v1.Event, error) {
	var evt v1.Event
	var start, end sql.NullTime

	err := row.Scan(
		&evt.ID,
		&evt.Name,
		&evt.Summary,
		&evt.Status,
		&evt.Tag,
		&evt.Time,
		&evt.Description,
		&start,
		&end,
	)
	if err != nil {
		return nil, err
	}

	if start.Valid {
		t := start.Time
		evt.EventStart = &t
	}
	if end.Valid {
		t := end.Time
		evt.EventEnd = &t
	}
	return &evt, nil
}

func scanEventRows(rows *sql.Rows) ([]*v1.Event, error) {
	var events []*v1.Event
	for rows.Next() {
		event, err := scanEventRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}
