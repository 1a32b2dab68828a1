package analytics

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/eventhawk-lab/eventhawk/internal/core/dataset"
)

// Service is the analytics engine's public surface: cached line/bar dataset
// access, bucketed histogram aggregation, and cache administration.
type Service struct {
	cache *Cache
}

// NewService creates an analytics service over the given source, with the
// given slot TTL.
func NewService(source DataSource, ttl time.Duration) *Service {
	return &Service{cache: NewCache(source, ttl)}
}

// BarQuery is a histogram request: a required feature column, an optional
// inclusive date window, and a bin size.
type BarQuery struct {
	Feature   string
	StartDate string
	EndDate   string
	BinSize   string
}

// LineData returns the cached line chart dataset, refreshing it on expiry.
// The query token is opaque to the engine; it is routed to the data source's
// domain and only logged here.
func (s *Service) LineData(ctx context.Context, query string) (*dataset.Dataset, error) {
	slog.Debug("Line data requested", "query", query)
	return s.cache.GetOrRefresh(ctx, KindLine)
}

// BarData serves a histogram: the cached bar dataset is narrowed to the
// requested date window, then grouped into time buckets counting the
// feature's values per bucket.
func (s *Service) BarData(ctx context.Context, q BarQuery) ([]BucketCount, error) {
	if q.Feature == "" {
		return nil, invalidArgumentf("feature is required")
	}

	snapshot, err := s.cache.GetOrRefresh(ctx, KindBar)
	if err != nil {
		return nil, err
	}

	filtered, err := FilterRange(snapshot, q.StartDate, q.EndDate, q.Feature)
	if err != nil {
		return nil, err
	}

	return AggregateByBucket(filtered, q.Feature, GranularityForBinSize(q.BinSize))
}

// AvailableFeatures lists the categorical columns of the bar dataset.
func (s *Service) AvailableFeatures(ctx context.Context) ([]string, error) {
	snapshot, err := s.cache.GetOrRefresh(ctx, KindBar)
	if err != nil {
		return nil, err
	}
	return snapshot.Features(), nil
}

// ClearCache invalidates every slot unconditionally. The next access to a
// slot reloads it. Idempotent.
func (s *Service) ClearCache() {
	s.cache.InvalidateAll()
}

// SlotReport is one slot's freshness as exposed to the dashboard. LastLoad
// and AgeMinutes are nil for a slot that has never loaded.
type SlotReport struct {
	Fresh      bool     `json:"fresh"`
	LastLoad   *string  `json:"last_load"`
	AgeMinutes *float64 `json:"age_minutes"`
}

// CacheStatusReport aggregates every slot's freshness plus the shared TTL,
// in minutes for display.
type CacheStatusReport struct {
	LineCache  SlotReport `json:"line_cache"`
	BarCache   SlotReport `json:"bar_cache"`
	TTLMinutes float64    `json:"cache_duration_minutes"`
}

// CacheStatus reports per-slot freshness and the shared TTL. Pure read; it
// never triggers a refresh.
func (s *Service) CacheStatus() CacheStatusReport {
	return CacheStatusReport{
		LineCache:  s.slotReport(KindLine),
		BarCache:   s.slotReport(KindBar),
		TTLMinutes: s.cache.TTL().Minutes(),
	}
}

func (s *Service) slotReport(kind Kind) SlotReport {
	status := s.cache.Status(kind)
	if !status.Loaded {
		return SlotReport{}
	}

	lastLoad := status.LoadedAt.Format("2006-01-02 15:04:05")
	age := math.Round(status.Age.Minutes()*10) / 10

	return SlotReport{
		Fresh:      status.Fresh,
		LastLoad:   &lastLoad,
		AgeMinutes: &age,
	}
}
