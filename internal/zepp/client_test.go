package zepp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swimreport/internal/auth"
)

const historyJSON = `{
  "code": 1,
  "data": {
    "summary": [
      {"trackid": "1700000000", "source": "run.mifit.huami.com", "swim_pool_length": "25",
       "total_trips": "40", "calorie": "320", "avg_heart_rate": "131", "swolf": 38, "te": "2.6"},
      {"trackid": "1700100000", "source": "run.mifit.huami.com", "swim_pool_length": "0"},
      {"trackid": 1700200000, "source": "run.mifit.huami.com", "swim_pool_length": null}
    ]
  }
}`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	ts, err := auth.NewTokenSource("test-token")
	require.NoError(t, err)

	c := NewClient(srv.URL, ts)
	c.SetMinInterval(time.Millisecond)
	return c
}

func TestGetHistory(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, historyPath, r.URL.Path)
		assert.Equal(t, "test-token", r.Header.Get("apptoken"))
		w.Write([]byte(historyJSON))
	}))

	workouts, err := c.GetHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, workouts, 3)

	first := workouts[0]
	assert.Equal(t, Field("1700000000"), first.TrackID)
	assert.Equal(t, Field("38"), first.Swolf, "numeric JSON values keep their text")
	assert.True(t, first.IsSwimming())
	assert.False(t, workouts[1].IsSwimming())
	assert.False(t, workouts[2].IsSwimming())
	assert.Equal(t, Field("1700200000"), workouts[2].TrackID)

	start, err := first.StartTime()
	require.NoError(t, err)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), start)

	summary := first.AnalysisSummary()
	assert.Equal(t, 40.0, summary.Laps)
	assert.Equal(t, 25.0, summary.PoolLength)
	assert.Equal(t, 1, c.Requests())
}

func TestGetDetail(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, detailPath, r.URL.Path)
		assert.Equal(t, "1700000000", r.URL.Query().Get("trackid"))
		assert.Equal(t, "run.mifit.huami.com", r.URL.Query().Get("source"))
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]string{
				"time":       "0;1;2",
				"heart_rate": "0,120;1,2;2,-1",
				"pace":       "0;1,5;1,6",
			},
		})
	}))

	detail, err := c.GetDetail(context.Background(), "1700000000", "run.mifit.huami.com")
	require.NoError(t, err)
	assert.Equal(t, "0;1;2", detail.Time)
	assert.Equal(t, "0,120;1,2;2,-1", detail.HeartRate)
	assert.Equal(t, "0;1,5;1,6", detail.AnalysisDetail().Pace)
}

func TestAPIError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))

	_, err := c.GetHistory(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "invalid token")
}

func TestGetDetailCanceledContext(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetDetail(ctx, "1", "x")
	require.ErrorIs(t, err, context.Canceled)
}

func TestFieldFloat(t *testing.T) {
	tests := []struct {
		field Field
		want  float64
		ok    bool
	}{
		{"25", 25, true},
		{" 50.0 ", 50, true},
		{"", 0, false},
		{"n/a", 0, false},
	}

	for _, tt := range tests {
		got, ok := tt.field.Float()
		assert.Equal(t, tt.ok, ok, "Field(%q).Float()", tt.field)
		assert.Equal(t, tt.want, got, "Field(%q).Float()", tt.field)
	}
	assert.Equal(t, 7.0, Field("bad").FloatOr(7))
}

func TestRateLimiterPausesOnThrottle(t *testing.T) {
	r := NewRateLimiter(0)
	resp := &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{}}
	resp.Header.Set("Retry-After", "3600")
	r.UpdateFromResponse(resp)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := r.Wait(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, r.Requests())
}

func TestRateLimiterSpacesConcurrentCallers(t *testing.T) {
	r := NewRateLimiter(20 * time.Millisecond)
	start := time.Now()

	errs := make(chan error, 3)
	for range 3 {
		go func() { errs <- r.Wait(context.Background()) }()
	}
	for range 3 {
		require.NoError(t, <-errs)
	}

	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	assert.Equal(t, 3, r.Requests())
}
