// Package demo provides a deterministic in-memory DataSource for local
// development and dashboard demos. Every load regenerates the datasets
// relative to the current time, mimicking a live analytics backend.
package demo

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/eventhawk-lab/eventhawk/internal/analytics"
	"github.com/eventhawk-lab/eventhawk/internal/core/dataset"
)

const (
	lineDays = 50
	barDays  = 30
)

// Categorical vocabularies of the generated bar dataset.
var (
	statuses   = []string{"active", "pending", "completed", "failed", "cancelled"}
	priorities = []string{"low", "medium", "high", "critical"}
	categories = []string{"meeting", "review", "workshop", "planning", "break", "deployment"}
	users      = []string{"alice", "bob", "charlie", "diana", "eve", "frank"}
	locations  = []string{"office", "remote", "meeting_room", "conference_center"}
)

// Source generates demo datasets from a fixed seed, so repeated loads within
// one process produce the same categorical distribution.
type Source struct {
	seed  int64
	nowFn func() time.Time
}

func New(seed int64) *Source {
	return &Source{
		seed: seed,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (s *Source) Load(_ context.Context, kind analytics.Kind) (*dataset.Dataset, error) {
	switch kind {
	case analytics.KindLine:
		return s.lineDataset()
	case analytics.KindBar:
		return s.barDataset()
	default:
		return nil, fmt.Errorf("unknown dataset kind %q", kind)
	}
}

// lineDataset builds numeric series over one timestamp per day, newest first.
func (s *Source) lineDataset() (*dataset.Dataset, error) {
	now := s.nowFn()

	times := make([]time.Time, lineDays)
	for i := range times {
		times[i] = now.AddDate(0, 0, -i)
	}

	return dataset.NewBuilder().
		AddTime(dataset.TimestampColumn, times).
		AddFloat("x", repeat([]float64{1, 2, 3, 4, 5}, lineDays)).
		AddFloat("y", repeat([]float64{1, 7, 2, 4, 7}, lineDays)).
		AddFloat("z", repeat([]float64{3, 2, 1, 2, 3}, lineDays)).
		AddFloat("j", repeat([]float64{6, 1, 8, 5, 6}, lineDays)).
		Build()
}

// barDataset builds 30 days of categorical rows drawn from fixed vocabularies.
func (s *Source) barDataset() (*dataset.Dataset, error) {
	now := s.nowFn()
	rng := rand.New(rand.NewSource(s.seed))

	times := make([]time.Time, barDays)
	for i := range times {
		times[i] = now.AddDate(0, 0, -i)
	}

	return dataset.NewBuilder().
		AddTime(dataset.TimestampColumn, times).
		AddString("status", pick(rng, statuses, barDays)).
		AddString("priority", pick(rng, priorities, barDays)).
		AddString("category", pick(rng, categories, barDays)).
		AddString("user", pick(rng, users, barDays)).
		AddString("location", pick(rng, locations, barDays)).
		Build()
}

func repeat(pattern []float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = pattern[i%len(pattern)]
	}
	return out
}

func pick(rng *rand.Rand, vocab []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = vocab[rng.Intn(len(vocab))]
	}
	return out
}
