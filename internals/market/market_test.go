package market

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockquest/api-server/pkg/kvstore"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*MarketService, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	ms := New(kvstore.NewMemory(), srv.URL, "test-key", 2*time.Second, 5*time.Minute, 2*time.Minute, log)
	return ms, srv
}

func TestFetchSendsAPIKey(t *testing.T) {
	var gotKey atomic.Value
	ms, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey.Store(r.Header.Get("X-Api-Key"))
		w.Write([]byte(`{"ok": true}`))
	})

	_, err := ms.Trending()
	require.NoError(t, err)
	assert.Equal(t, "test-key", gotKey.Load())
}

func TestCachedFetchServesFromCache(t *testing.T) {
	var calls int32
	ms, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"stocks": []}`))
	})

	_, err := ms.Trending()
	require.NoError(t, err)
	_, err = ms.Trending()
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCacheExpiry(t *testing.T) {
	var calls int32
	ms, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{}`))
	})
	ms.CacheTTL = 10 * time.Millisecond

	_, err := ms.IPO()
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	_, err = ms.IPO()
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestProviderErrorNotCached(t *testing.T) {
	var calls int32
	ms, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"fine": "now"}`))
	})

	_, err := ms.News()
	assert.ErrorIs(t, err, ErrProviderUnreachable)

	raw, err := ms.News()
	require.NoError(t, err)
	assert.JSONEq(t, `{"fine": "now"}`, string(raw))
}

func TestStockQueryForwarded(t *testing.T) {
	ms, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stock", r.URL.Path)
		assert.Equal(t, "Tata Steel", r.URL.Query().Get("name"))
		w.Write([]byte(`{"company_name": "Tata Steel", "currentPrice": {"nse": 145.2}}`))
	})

	q, err := ms.StockQuote("Tata Steel")
	require.NoError(t, err)
	assert.Equal(t, "Tata Steel", q.Name)
	assert.Equal(t, 145.2, q.Price)
}

func TestStatementQueryForwarded(t *testing.T) {
	ms, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/statement", r.URL.Path)
		assert.Equal(t, "Infosys", r.URL.Query().Get("stock_name"))
		assert.Equal(t, "quarter_results", r.URL.Query().Get("stats"))
		w.Write([]byte(`{}`))
	})

	_, err := ms.Statement("Infosys", "quarter_results")
	require.NoError(t, err)
}

func TestStockForecastsDefaults(t *testing.T) {
	ms, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stock_forecasts", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "12345", q.Get("stock_id"))
		assert.Equal(t, "EPS", q.Get("measure_code"))
		assert.Equal(t, "Annual", q.Get("period_type"))
		assert.Equal(t, "Actuals", q.Get("data_type"))
		assert.Equal(t, "OneWeekAgo", q.Get("age"))
		w.Write([]byte(`{}`))
	})

	_, err := ms.StockForecasts("12345", "", "", "", "")
	require.NoError(t, err)
}

func TestMutualFundDetailsPath(t *testing.T) {
	ms, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mutual_funds_details", r.URL.Path)
		assert.Equal(t, "Axis Bluechip", r.URL.Query().Get("stock_name"))
		w.Write([]byte(`{}`))
	})

	_, err := ms.MutualFundDetails("Axis Bluechip")
	require.NoError(t, err)
}

func TestTrendingQuotesNormalizesNestedLists(t *testing.T) {
	payload := `{
		"trending_stocks": {
			"top_gainers": [
				{"company_name": "Adani Ports", "price": "1,250.50", "percent_change": "+3.2%"},
				{"no_name_here": 1}
			],
			"top_losers": [
				{"company": "Zomato", "ltp": 180.0, "pChange": "-1.4%"}
			]
		}
	}`
	ms, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	})

	list, err := ms.TrendingQuotes()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Adani Ports", list[0].Name)
	assert.Equal(t, 1250.5, list[0].Price)
	assert.Equal(t, 3.2, list[0].Change)
	assert.Equal(t, "Zomato", list[1].Name)
	assert.Equal(t, -1.4, list[1].Change)
}

func TestInsights(t *testing.T) {
	payload := `{"stocks": [
		{"name": "A", "percent_change": 2.0},
		{"name": "B", "percent_change": -1.0},
		{"name": "C", "percent_change": 5.0}
	]}`
	ms, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	})

	report, err := ms.Insights()
	require.NoError(t, err)
	assert.Equal(t, 3, report.SampleSize)
	assert.Equal(t, 2, report.Gainers)
	assert.Equal(t, 1, report.Losers)
	assert.InDelta(t, 2.0, report.MeanChange, 1e-9)
	assert.InDelta(t, 2.0, report.MedianChange, 1e-9)
	assert.Equal(t, "C", report.TopGainer)
	assert.Equal(t, "B", report.TopLoser)
}
