package postgres

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/eventhawk-lab/eventhawk/internal/analytics"
	"github.com/eventhawk-lab/eventhawk/internal/core/dataset"
	"github.com/stretchr/testify/require"
)

func TestSource_LoadBar(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start1 := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	start2 := time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(queryBarDataset)).
		WillReturnRows(sqlmock.NewRows([]string{"event_start", "status", "tag"}).
			AddRow(start1, "active", "meeting").
			AddRow(start2, "failed", "deployment"))

	src := New(db, nil)
	ds, err := src.Load(context.Background(), analytics.KindBar)
	require.NoError(t, err)

	require.Equal(t, 2, ds.NumRows())
	require.Equal(t, []string{"status", "tag"}, ds.Features())
	require.Equal(t, []time.Time{start1, start2}, ds.Timestamps())

	col, _ := ds.Column("tag")
	require.Equal(t, []string{"meeting", "deployment"}, col.Strings())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSource_LoadBar_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryBarDataset)).
		WillReturnError(fmt.Errorf("connection reset"))

	src := New(db, nil)
	_, err = src.Load(context.Background(), analytics.KindBar)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

type stubLineSource struct {
	ds *dataset.Dataset
}

func (s *stubLineSource) Load(context.Context, analytics.Kind) (*dataset.Dataset, error) {
	return s.ds, nil
}

func TestSource_LineDelegatesToFallback(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	lineDS, err := dataset.NewBuilder().
		AddTime(dataset.TimestampColumn, []time.Time{time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)}).
		AddFloat("x", []float64{1}).
		Build()
	require.NoError(t, err)

	src := New(db, &stubLineSource{ds: lineDS})
	ds, err := src.Load(context.Background(), analytics.KindLine)
	require.NoError(t, err)
	require.Same(t, lineDS, ds)

	// Without a fallback, line loads fail.
	src = New(db, nil)
	_, err = src.Load(context.Background(), analytics.KindLine)
	require.Error(t, err)
}
