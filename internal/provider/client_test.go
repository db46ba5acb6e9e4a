package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcalvin/solarsizer/internal/provider/cache"
)

func newInsightsServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/v1/buildingInsights:findClosest", r.URL.Path)
		assert.Equal(t, "25.4687", r.URL.Query().Get("location.latitude"))
		assert.Equal(t, "-80.4776", r.URL.Query().Get("location.longitude"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestClient_BuildingInsights(t *testing.T) {
	srv, hits := newInsightsServer(t, http.StatusOK, sampleJSON)
	c := NewClient(srv.URL+"/", "test-key", 5*time.Second)

	bi, err := c.BuildingInsights(context.Background(), 25.4687, -80.4776)
	require.NoError(t, err)
	assert.Len(t, bi.SolarPotential.SolarPanelConfigs, 2)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_UsesCache(t *testing.T) {
	srv, hits := newInsightsServer(t, http.StatusOK, sampleJSON)
	store, err := cache.NewFileStore(t.TempDir(), true, time.Hour)
	require.NoError(t, err)
	c := NewClient(srv.URL, "test-key", 5*time.Second, WithCache(store))

	for range 3 {
		bi, err := c.BuildingInsights(context.Background(), 25.4687, -80.4776)
		require.NoError(t, err)
		assert.Equal(t, "buildings/ChIJ", bi.Name)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_StatusError(t *testing.T) {
	srv, _ := newInsightsServer(t, http.StatusNotFound, `{"error":{"message":"not found"}}`)
	c := NewClient(srv.URL, "test-key", 5*time.Second)

	_, err := c.BuildingInsights(context.Background(), 25.4687, -80.4776)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Contains(t, se.Error(), "HTTP 404")
}

func TestClient_Validation(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", time.Second)
	_, err := c.BuildingInsights(context.Background(), 10, 10)
	require.ErrorIs(t, err, ErrMissingAPIKey)

	c = NewClient("http://127.0.0.1:1", "k", time.Second)
	_, err = c.BuildingInsights(context.Background(), 91, 0)
	require.ErrorIs(t, err, ErrInvalidCoordinates)
	_, err = c.BuildingInsights(context.Background(), 0, -181)
	require.ErrorIs(t, err, ErrInvalidCoordinates)
}
