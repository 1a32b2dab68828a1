package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventhawk-lab/eventhawk/internal/core/dataset"
)

// Kind names a dataset slot. The engine serves two: the raw time series
// behind the line chart and the categorical dataset behind the histogram.
type Kind string

const (
	KindLine Kind = "line"
	KindBar  Kind = "bar"
)

// Kinds lists every slot the cache manages, in display order.
var Kinds = []Kind{KindLine, KindBar}

var (
	// ErrSourceUnavailable marks failures of the external data source.
	// The cache slot is left untouched when a load fails with this.
	ErrSourceUnavailable = errors.New("data source unavailable")

	// ErrFeatureNotFound marks a requested feature column that does not
	// exist in the dataset.
	ErrFeatureNotFound = errors.New("feature not found")

	// ErrInvalidArgument marks caller-fixable request errors, such as a
	// malformed date bound or a missing required parameter.
	ErrInvalidArgument = errors.New("invalid argument")
)

// DataSource supplies a fresh snapshot for a dataset kind. It is the only
// point where external I/O enters the engine; every other component is pure.
type DataSource interface {
	Load(ctx context.Context, kind Kind) (*dataset.Dataset, error)
}

func invalidArgumentf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
