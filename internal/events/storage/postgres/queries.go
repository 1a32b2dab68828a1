package postgres

// SQL queries for the events table. "time" is quoted everywhere because it
// collides with the SQL type name.

const (
	eventColumns = `id, name, summary, status, tag, "time", description, event_start, event_end`

	// querySaveEvent inserts an event. ON CONFLICT DO NOTHING affects zero
	// rows for a duplicate ID, which the adapter maps to storage.ErrDuplicate.
	querySaveEvent = `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`

	queryGetEvent = `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`

	queryUpdateEvent = `
		UPDATE events
		SET name = $2, summary = $3, status = $4, tag = $5, "time" = $6,
		    description = $7, event_start = $8, event_end = $9
		WHERE id = $1
	`

	queryDeleteEvent = `
		DELETE FROM events
		WHERE id = $1
	`

	queryListEvents = `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`

	queryCountEvents = `
		SELECT COUNT(*) FROM events
	`

	// searchPredicate matches the dashboard's free-text search across every
	// text field, case-insensitively.
	searchPredicate = `
		(name ILIKE $1 OR summary ILIKE $1 OR status ILIKE $1 OR tag ILIKE $1
		 OR "time" ILIKE $1 OR description ILIKE $1)
	`

	queryListEventsSearch = `
		SELECT ` + eventColumns + `
		FROM events
		WHERE ` + searchPredicate + `
		ORDER BY id ASC
		LIMIT $2 OFFSET $3
	`

	queryCountEventsSearch = `
		SELECT COUNT(*) FROM events
		WHERE ` + searchPredicate

	queryListEventsByStatus = `
		SELECT ` + eventColumns + `
		FROM events
		WHERE status = $1
		ORDER BY id ASC
	`

	queryListEventsByTag = `
		SELECT ` + eventColumns + `
		FROM events
		WHERE tag = $1
		ORDER BY id ASC
	`

	queryCountEventsByStatus = `
		SELECT status, COUNT(*)
		FROM events
		GROUP BY status
	`
)
