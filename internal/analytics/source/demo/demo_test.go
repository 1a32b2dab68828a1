package demo

import (
	"context"
	"testing"
	"time"

	"github.com/eventhawk-lab/eventhawk/internal/analytics"
	"github.com/eventhawk-lab/eventhawk/internal/core/dataset"
	"github.com/stretchr/testify/require"
)

func TestSource_LoadBar(t *testing.T) {
	src := New(42)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	src.nowFn = func() time.Time { return now }

	ds, err := src.Load(context.Background(), analytics.KindBar)
	require.NoError(t, err)

	require.Equal(t, 30, ds.NumRows())
	require.Equal(t, []string{"status", "priority", "category", "user", "location"}, ds.Features())
	require.Equal(t, now, ds.Timestamps()[0])
	require.Equal(t, now.AddDate(0, 0, -29), ds.Timestamps()[29])

	col, ok := ds.Column("status")
	require.True(t, ok)
	for _, v := range col.Strings() {
		require.Contains(t, statuses, v)
	}
}

func TestSource_LoadBarIsDeterministicPerSeed(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	load := func(seed int64) *dataset.Dataset {
		src := New(seed)
		src.nowFn = func() time.Time { return now }
		ds, err := src.Load(context.Background(), analytics.KindBar)
		require.NoError(t, err)
		return ds
	}

	first, _ := load(7).Column("status")
	second, _ := load(7).Column("status")
	require.Equal(t, first.Strings(), second.Strings())
}

func TestSource_LoadLine(t *testing.T) {
	src := New(42)
	ds, err := src.Load(context.Background(), analytics.KindLine)
	require.NoError(t, err)

	require.Equal(t, 50, ds.NumRows())
	require.Empty(t, ds.Features()) // all series are numeric

	col, ok := ds.Column("x")
	require.True(t, ok)
	require.Equal(t, dataset.KindFloat, col.Kind())
	require.Equal(t, []float64{1, 2, 3, 4, 5}, col.Floats()[:5])
}

func TestSource_UnknownKind(t *testing.T) {
	src := New(42)
	_, err := src.Load(context.Background(), analytics.Kind("pie"))
	require.Error(t, err)
}
