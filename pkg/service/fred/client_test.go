package fred_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/fintel-lab/pentarisk/pkg/service/fred"
	"github.com/fintel-lab/pentarisk/pkg/service/ratelimit"
)

func TestLatestObservation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Path).Equal("/fred/series/observations")
		gt.Value(t, r.URL.Query().Get("series_id")).Equal("DFF")
		gt.Value(t, r.URL.Query().Get("sort_order")).Equal("desc")

		_, _ = w.Write([]byte(`{"observations": [{"date": "2025-05-30", "value": "5.33"}]}`))
	}))
	defer ts.Close()

	tracker := ratelimit.New()
	svc, err := fred.New("test-key", tracker, fred.WithBaseURL(ts.URL))
	gt.NoError(t, err).Required()

	obs, err := svc.LatestObservation(context.Background(), "DFF")
	gt.NoError(t, err).Required()

	gt.Value(t, obs.SeriesID).Equal("DFF")
	gt.Value(t, obs.Value).Equal("5.33")
	gt.Value(t, obs.Date).Equal("2025-05-30")
	gt.Value(t, tracker.Count("fred")).Equal(1)
}

func TestLatestObservation_Empty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"observations": []}`))
	}))
	defer ts.Close()

	svc, err := fred.New("test-key", nil, fred.WithBaseURL(ts.URL))
	gt.NoError(t, err).Required()

	_, err = svc.LatestObservation(context.Background(), "NOPE")
	gt.Error(t, err)
}
