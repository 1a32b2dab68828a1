package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/eventhawk-lab/eventhawk/internal/api/v1"
	"github.com/eventhawk-lab/eventhawk/internal/events/storage"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Service implements the event record operations over an EventStore.
type Service struct {
	store storage.EventStore
}

func NewService(store storage.EventStore) *Service {
	return &Service{store: store}
}

// EventUpdate is a partial update: nil fields are left unchanged.
type EventUpdate struct {
	Name        *string    `json:"name"`
	Summary     *string    `json:"summary"`
	Status      *string    `json:"status"`
	Tag         *string    `json:"tag"`
	Time        *string    `json:"time"`
	Description *string    `json:"description"`
	EventStart  *time.Time `json:"event_start"`
	EventEnd    *time.Time `json:"event_end"`
}

// CreateEvent validates and persists a new event.
func (s *Service) CreateEvent(ctx context.Context, event *v1.Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidEvent, err)
	}
	if err := s.store.SaveEvent(ctx, event); err != nil {
		return err
	}
	slog.Info("Created event", "event_id", event.ID, "status", event.Status, "tag", event.Tag)
	return nil
}

// GetEvent fetches a single event by ID.
func (s *Service) GetEvent(ctx context.Context, id int64) (*v1.Event, error) {
	return s.store.GetEvent(ctx, id)
}

// ListEvents returns one page of events plus the total count. Limits are
// clamped to the allowed page size range.
func (s *Service) ListEvents(ctx context.Context, offset, limit int, search string) ([]*v1.Event, int64, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	events, total, err := s.store.ListEvents(ctx, storage.ListParams{
		Limit:  limit,
		Offset: offset,
		Search: search,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

// UpdateEvent applies a partial update to an existing event and returns the
// updated record.
func (s *Service) UpdateEvent(ctx context.Context, id int64, update EventUpdate) (*v1.Event, error) {
	event, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		event.Name = *update.Name
	}
	if update.Summary != nil {
		event.Summary = *update.Summary
	}
	if update.Status != nil {
		event.Status = *update.Status
	}
	if update.Tag != nil {
		event.Tag = *update.Tag
	}
	if update.Time != nil {
		event.Time = *update.Time
	}
	if update.Description != nil {
		event.Description = *update.Description
	}
	if update.EventStart != nil {
		event.EventStart = update.EventStart
	}
	if update.EventEnd != nil {
		event.EventEnd = update.EventEnd
	}

	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEvent, err)
	}
	if err := s.store.UpdateEvent(ctx, event); err != nil {
		return nil, err
	}

	slog.Info("Updated event", "event_id", event.ID)
	return event, nil
}

// DeleteEvent removes an event by ID.
func (s *Service) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.store.DeleteEvent(ctx, id); err != nil {
		return err
	}
	slog.Info("Deleted event", "event_id", id)
	return nil
}

// EventsByStatus returns every event with the given status.
func (s *Service) EventsByStatus(ctx context.Context, status string) ([]*v1.Event, error) {
	return s.store.ListEventsByStatus(ctx, status)
}

// EventsByTag returns every event with the given tag.
func (s *Service) EventsByTag(ctx context.Context, tag string) ([]*v1.Event, error) {
	return s.store.ListEventsByTag(ctx, tag)
}

// CountsByStatus tallies events per status value.
func (s *Service) CountsByStatus(ctx context.Context) (map[string]int64, error) {
	return s.store.CountEventsByStatus(ctx)
}
