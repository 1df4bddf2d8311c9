package alphavantage_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/fintel-lab/pentarisk/pkg/service/alphavantage"
	"github.com/fintel-lab/pentarisk/pkg/service/ratelimit"
)

func TestGetQuote(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Path).Equal("/query")
		gt.Value(t, r.URL.Query().Get("function")).Equal("GLOBAL_QUOTE")
		gt.Value(t, r.URL.Query().Get("symbol")).Equal("UBS")

		_, _ = w.Write([]byte(`{"Global Quote": {
			"01. symbol": "UBS",
			"05. price": "28.44",
			"06. volume": "2134000",
			"09. change": "-0.12"
		}}`))
	}))
	defer ts.Close()

	tracker := ratelimit.New()
	svc, err := alphavantage.New("test-key", tracker, alphavantage.WithBaseURL(ts.URL))
	gt.NoError(t, err).Required()

	quote, err := svc.GetQuote(context.Background(), "UBS")
	gt.NoError(t, err).Required()

	gt.Value(t, quote.Symbol).Equal("UBS")
	gt.Value(t, quote.Price).Equal("28.44")
	gt.Value(t, quote.Change).Equal("-0.12")
	gt.Value(t, tracker.Count("alphavantage")).Equal(1)
}

func TestGetQuote_NoData(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	svc, err := alphavantage.New("test-key", nil, alphavantage.WithBaseURL(ts.URL))
	gt.NoError(t, err).Required()

	_, err = svc.GetQuote(context.Background(), "NOPE")
	gt.Error(t, err)
}
