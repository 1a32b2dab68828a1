package analytics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc.RegisterRoutes(r)
	return r
}

func TestHandleBarData_StatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		prepare        func(source *fakeSource)
		expectedStatus int
	}{
		{
			name:           "valid request returns 200",
			query:          "feature=status&bin_size=1D",
			prepare:        func(_ *fakeSource) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing feature returns 400",
			query:          "bin_size=1D",
			prepare:        func(_ *fakeSource) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed date returns 400",
			query:          "feature=status&start_date=yesterday&end_date=2024-01-02",
			prepare:        func(_ *fakeSource) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown feature returns 404",
			query:          "feature=nope",
			prepare:        func(_ *fakeSource) {},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:  "source failure returns 503",
			query: "feature=status",
			prepare: func(source *fakeSource) {
				source.setError(fmt.Errorf("upstream timeout"))
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			source := newFakeSource(t)
			tc.prepare(source)
			router := newTestRouter(NewService(source, 600*time.Second))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/events/analytics/bar-data?"+tc.query, nil)
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)
		})
	}
}

func TestHandleBarData_ResponseShape(t *testing.T) {
	source := newFakeSource(t)
	base := time.Date(2024, 8, 20, 0, 0, 0, 0, time.UTC)
	source.datasets[KindBar] = barDataset(t,
		[]time.Time{base, base.AddDate(0, 0, 1)},
		[]string{"active", "active"},
	)
	router := newTestRouter(NewService(source, 600*time.Second))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events/analytics/bar-data?feature=status&bin_size=3M", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data    []BucketCount `json:"data"`
		Feature string        `json:"feature"`
		BinSize string        `json:"bin_size"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "status", body.Feature)
	require.Equal(t, "3M", body.BinSize)
	require.Equal(t, []BucketCount{{Date: "2024-Q3", Value: "active", Count: 2}}, body.Data)
}

func TestHandleBarData_DefaultsBinSizeToDaily(t *testing.T) {
	source := newFakeSource(t)
	router := newTestRouter(NewService(source, 600*time.Second))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events/analytics/bar-data?feature=status", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"bin_size":"1D"`)
}

func TestHandleLineData_SerializesTimestampsAtBoundary(t *testing.T) {
	source := newFakeSource(t)
	source.datasets[KindLine] = barDataset(t,
		[]time.Time{time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		[]string{"active"},
	)
	router := newTestRouter(NewService(source, 600*time.Second))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events/analytics/line-data", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "2024-03-01T12:00:00Z")
}

func TestHandleCacheEndpoints(t *testing.T) {
	source := newFakeSource(t)
	router := newTestRouter(NewService(source, 600*time.Second))

	// Warm the bar slot.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/events/analytics/bar-features", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"features":["status"]`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/events/analytics/cache/status", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var status CacheStatusReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	require.True(t, status.BarCache.Fresh)
	require.False(t, status.LineCache.Fresh)
	require.Equal(t, 10.0, status.TTLMinutes)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/events/analytics/cache/clear", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/events/analytics/cache/status", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	require.False(t, status.BarCache.Fresh)
}
