package events

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewService(store).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHandleCreate(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store)

	w := doJSON(t, router, http.MethodPost, "/api/events", validEvent(1))
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate ID is a client error.
	w = doJSON(t, router, http.MethodPost, "/api/events", validEvent(1))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "duplicate_event")

	// Missing required fields.
	w = doJSON(t, router, http.MethodPost, "/api/events", map[string]interface{}{"id": 2})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed JSON.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader([]byte("{not json")))
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGetUpdateDelete(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store)

	w := doJSON(t, router, http.MethodPost, "/api/events", validEvent(7))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/events/7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"name":"Deploy window"`)

	w = doJSON(t, router, http.MethodGet, "/api/events/404", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/events/abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/events/7", map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"completed"`)

	w = doJSON(t, router, http.MethodDelete, "/api/events/7", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/events/7", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleList(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store)

	// Empty listing is [] with total 0, never null.
	w := doJSON(t, router, http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"events":[],"total":0}`, w.Body.String())

	for i := int64(1); i <= 3; i++ {
		doJSON(t, router, http.MethodPost, "/api/events", validEvent(i))
	}

	w = doJSON(t, router, http.MethodGet, "/api/events?offset=1&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(3), resp.Total)
	require.Len(t, resp.Events, 1)
	require.Equal(t, int64(2), resp.Events[0].ID)

	// Out-of-range limit is rejected by binding.
	w = doJSON(t, router, http.MethodGet, "/api/events?limit=500", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleStatusTagAndCounts(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store)

	pending := validEvent(1)
	completed := validEvent(2)
	completed.Status = "completed"
	completed.Tag = "review"
	require.NoError(t, store.SaveEvent(context.Background(), pending))
	require.NoError(t, store.SaveEvent(context.Background(), completed))

	w := doJSON(t, router, http.MethodGet, "/api/events/status/completed", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	require.Equal(t, int64(2), resp.Events[0].ID)

	w = doJSON(t, router, http.MethodGet, "/api/events/tag/deployment", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	require.Equal(t, int64(1), resp.Events[0].ID)

	w = doJSON(t, router, http.MethodGet, "/api/events/stats/counts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"pending":1,"completed":1}`, w.Body.String())
}
