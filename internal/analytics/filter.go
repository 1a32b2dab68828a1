package analytics

import (
	"fmt"
	"time"

	"github.com/eventhawk-lab/eventhawk/internal/core/dataset"
)

// dateBoundLayouts are accepted formats for start/end date bounds. Clients
// send plain calendar dates; timestamps with a time-of-day component are
// tolerated, though the end bound is always widened to the full day.
var dateBoundLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func parseDateBound(field, value string) (time.Time, error) {
	for _, layout := range dateBoundLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, invalidArgumentf("malformed date in %s: %q", field, value)
}

// FilterRange narrows a dataset to rows whose timestamp falls inside the
// inclusive [startDate, endDate] window, keeping only the timestamp and
// feature columns. The end bound is extended to 23:59:59 of its calendar
// day. If either bound is empty the input dataset is returned unchanged.
func FilterRange(ds *dataset.Dataset, startDate, endDate, feature string) (*dataset.Dataset, error) {
	if startDate == "" || endDate == "" {
		return ds, nil
	}

	if _, ok := ds.Column(feature); !ok {
		return nil, fmt.Errorf("%w: %q", ErrFeatureNotFound, feature)
	}

	start, err := parseDateBound("start_date", startDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDateBound("end_date", endDate)
	if err != nil {
		return nil, err
	}

	// Inclusive through the last instant of the end day, regardless of any
	// time-of-day component the caller supplied.
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())

	var rows []int
	for i, ts := range ds.Timestamps() {
		if !ts.Before(start) && !ts.After(end) {
			rows = append(rows, i)
		}
	}

	return ds.Select(rows, feature)
}
