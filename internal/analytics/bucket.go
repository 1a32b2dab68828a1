package analytics

import (
	"fmt"
	"time"

	"github.com/eventhawk-lab/eventhawk/internal/core/dataset"
)

// Granularity selects the time bucket a row's timestamp collapses into.
type Granularity int

const (
	GranularityHour Granularity = iota
	GranularityDay
	GranularityWeek
	GranularityMonth
	GranularityQuarter
)

func (g Granularity) String() string {
	switch g {
	case GranularityHour:
		return "hour"
	case GranularityDay:
		return "day"
	case GranularityWeek:
		return "week"
	case GranularityMonth:
		return "month"
	case GranularityQuarter:
		return "quarter"
	default:
		return "unknown"
	}
}

// GranularityForBinSize maps a wire bin size to a granularity. Unrecognized
// values fall back to daily buckets; that is the documented default for the
// dashboard, not an error.
func GranularityForBinSize(binSize string) Granularity {
	switch binSize {
	case "1H":
		return GranularityHour
	case "1D":
		return GranularityDay
	case "1W":
		return GranularityWeek
	case "1M":
		return GranularityMonth
	case "3M":
		return GranularityQuarter
	default:
		return GranularityDay
	}
}

// BucketKey derives the bucket identifier for a timestamp. Distinct
// granularities produce unrelated key spaces.
func (g Granularity) BucketKey(t time.Time) string {
	switch g {
	case GranularityHour:
		return t.Format("2006-01-02 15:00")
	case GranularityWeek:
		// Monday on or before t (ISO week start).
		monday := t.AddDate(0, 0, -((int(t.Weekday()) + 6) % 7))
		return monday.Format("2006-01-02")
	case GranularityMonth:
		return t.Format("2006-01")
	case GranularityQuarter:
		return fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
	default:
		return t.Format("2006-01-02")
	}
}

// BucketCount is one observed (bucket, feature value) pair and its count.
// Pairs with zero occurrences are never emitted.
type BucketCount struct {
	Date  string `json:"date"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

// AggregateByBucket groups dataset rows into time buckets and counts the
// occurrences of each distinct value of the feature column per bucket.
// Results are emitted in first-seen order of buckets, then of values within
// a bucket. An empty dataset yields an empty result, not an error.
func AggregateByBucket(ds *dataset.Dataset, feature string, g Granularity) ([]BucketCount, error) {
	col, ok := ds.Column(feature)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFeatureNotFound, feature)
	}
	if col.Kind() != dataset.KindString {
		return nil, invalidArgumentf("feature %q is not categorical (kind %s)", feature, col.Kind())
	}

	values := col.Strings()

	type valueCounts struct {
		order  []string
		counts map[string]int
	}

	var bucketOrder []string
	buckets := make(map[string]*valueCounts)

	for i, ts := range ds.Timestamps() {
		key := g.BucketKey(ts)
		vc, exists := buckets[key]
		if !exists {
			vc = &valueCounts{counts: make(map[string]int)}
			buckets[key] = vc
			bucketOrder = append(bucketOrder, key)
		}

		value := values[i]
		if _, seen := vc.counts[value]; !seen {
			vc.order = append(vc.order, value)
		}
		vc.counts[value]++
	}

	result := make([]BucketCount, 0, len(bucketOrder))
	for _, key := range bucketOrder {
		vc := buckets[key]
		for _, value := range vc.order {
			result = append(result, BucketCount{Date: key, Value: value, Count: vc.counts[value]})
		}
	}

	return result, nil
}
