package storage

import (
	"context"
	"errors"

	v1 "github.com/eventhawk-lab/eventhawk/internal/api/v1"
)

var (
	// ErrDuplicate is returned when an event with the same ID already exists.
	ErrDuplicate = errors.New("event already exists")

	// ErrNotFound is returned when no event with the given ID exists.
	ErrNotFound = errors.New("event not found")
)

// ListParams controls pagination and free-text search for event listings.
type ListParams struct {
	Limit  int
	Offset int

	// Search, when non-empty, restricts the listing to events whose text
	// fields contain the term (case-insensitive).
	Search string
}

// EventStore defines the persistence contract for dashboard events.
type EventStore interface {
	SaveEvent(ctx context.Context, event *v1.Event) error
	GetEvent(ctx context.Context, id int64) (*v1.Event, error)

	// ListEvents returns one page of events ordered by ID, plus the total
	// number of events matching the search term.
	ListEvents(ctx context.Context, params ListParams) ([]*v1.Event, int64, error)

	UpdateEvent(ctx context.Context, event *v1.Event) error
	DeleteEvent(ctx context.Context, id int64) error

	ListEventsByStatus(ctx context.Context, status string) ([]*v1.Event, error)
	ListEventsByTag(ctx context.Context, tag string) ([]*v1.Event, error)

	// CountEventsByStatus returns the number of events per distinct status.
	CountEventsByStatus(ctx context.Context) (map[string]int64, error)
}
