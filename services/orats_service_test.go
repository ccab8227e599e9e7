package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOratsTestServer(t *testing.T, handler http.HandlerFunc) *OratsDataService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc := NewOratsDataService("test-token")
	svc.SetBaseURL(srv.URL)
	return svc
}

func TestGetSummaries(t *testing.T) {
	svc := newOratsTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/summaries", r.URL.Path)
		assert.Equal(t, "test-token", r.URL.Query().Get("token"))
		assert.Equal(t, "AAPL", r.URL.Query().Get("ticker"))
		w.Write([]byte(`{"data":[{"ticker":"AAPL","tradeDate":"2026-08-26","stockPrice":245.37,"iv30d":0.2815}]}`))
	})

	summaries, err := svc.GetSummaries(context.Background(), "aapl ")

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "AAPL", summaries[0].Ticker)
	require.NotNil(t, summaries[0].StockPrice)
	assert.True(t, summaries[0].StockPrice.Equal(decimal.NewFromFloat(245.37)))
	assert.Equal(t, 0.2815, summaries[0].IV30d)
}

func TestGetStrikesDecodesBothExpirationColumns(t *testing.T) {
	svc := newOratsTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/strikes", r.URL.Path)
		w.Write([]byte(`{"data":[
			{"ticker":"AAPL","expiration":"2026-09-18","strike":240,"callMidIv":0.31,"delta":0.52},
			{"ticker":"AAPL","expirDate":"2026-10-16","strike":250,"putMidIv":0.29}
		]}`))
	})

	strikes, err := svc.GetStrikes(context.Background(), "AAPL")

	require.NoError(t, err)
	require.Len(t, strikes, 2)
	assert.Equal(t, "2026-09-18", strikes[0].ExpirationRaw)
	assert.Equal(t, "2026-10-16", strikes[1].ExpirDateRaw)
}

func TestGetCoresRequestsFixedFieldList(t *testing.T) {
	svc := newOratsTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cores", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("fields"), "contango")
		assert.Contains(t, r.URL.Query().Get("fields"), "slope")
		assert.Contains(t, r.URL.Query().Get("fields"), "deriv")
		w.Write([]byte(`{"data":[{"ticker":"AAPL","contango":0.2915,"slope":2.327968,"deriv":0.0651}]}`))
	})

	cores, err := svc.GetCores(context.Background(), "AAPL")

	require.NoError(t, err)
	require.Len(t, cores, 1)
	assert.Equal(t, 0.2915, cores[0].Contango)
}

func TestUnparseableBodyIsTreatedAsEmpty(t *testing.T) {
	svc := newOratsTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	})

	strikes, err := svc.GetStrikes(context.Background(), "AAPL")

	assert.NoError(t, err)
	assert.Empty(t, strikes)
}

func TestMissingDataKeyIsTreatedAsEmpty(t *testing.T) {
	svc := newOratsTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"no results"}`))
	})

	summaries, err := svc.GetSummaries(context.Background(), "ZZZZ")

	assert.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestNon200IsAnError(t *testing.T) {
	svc := newOratsTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})

	_, err := svc.GetSummaries(context.Background(), "AAPL")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestEmptyTickerIsRejected(t *testing.T) {
	svc := NewOratsDataService("test-token")

	_, err := svc.GetSummaries(context.Background(), "   ")

	assert.Error(t, err)
}
