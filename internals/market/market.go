package market

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stockquest/api-server/internals/quotes"
	"github.com/stockquest/api-server/pkg/kvstore"
)

// ErrProviderUnreachable marks transport-level failures against the market
// data provider. Handlers map it to a retryable error state; it is never
// written to the cache.
var ErrProviderUnreachable = errors.New("market data provider unreachable")

// MarketService proxies the third-party quote provider. Responses are cached
// in the KV store under a freshness window so repeated identical queries do
// not hammer the provider.
type MarketService struct {
	KV       kvstore.KVStore
	Client   *http.Client
	BaseURL  string
	APIKey   string
	CacheTTL time.Duration
	NewsTTL  time.Duration
	Log      *logrus.Logger
}

func New(kv kvstore.KVStore, baseURL, apiKey string, timeout, cacheTTL, newsTTL time.Duration, log *logrus.Logger) *MarketService {
	return &MarketService{
		KV:       kv,
		Client:   &http.Client{Timeout: timeout},
		BaseURL:  baseURL,
		APIKey:   apiKey,
		CacheTTL: cacheTTL,
		NewsTTL:  newsTTL,
		Log:      log,
	}
}

func (ms *MarketService) fetch(endpoint string, params map[string]string) (json.RawMessage, error) {
	u := ms.BaseURL + endpoint
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			if v != "" {
				q.Set(k, v)
			}
		}
		if encoded := q.Encode(); encoded != "" {
			u += "?" + encoded
		}
	}

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", ms.APIKey)

	resp, err := ms.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned status %d", ErrProviderUnreachable, resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decoding provider response: %v", ErrProviderUnreachable, err)
	}
	return raw, nil
}

// cachedFetch serves from the KV store when the entry is still fresh and
// falls through to the provider otherwise. Provider errors are returned
// as-is and never cached.
func (ms *MarketService) cachedFetch(cacheKey, endpoint string, params map[string]string, ttl time.Duration) (json.RawMessage, error) {
	key := "market_" + cacheKey
	if cached, err := ms.KV.Get(key); err == nil {
		return json.RawMessage(cached), nil
	} else if !errors.Is(err, kvstore.ErrNotFound) {
		ms.Log.WithError(err).WithField("key", key).Warn("market cache read failed")
	}

	raw, err := ms.fetch(endpoint, params)
	if err != nil {
		return nil, err
	}

	if err := ms.KV.SetEx(key, string(raw), ttl); err != nil {
		ms.Log.WithError(err).WithField("key", key).Warn("market cache write failed")
	}
	return raw, nil
}

func (ms *MarketService) Trending() (json.RawMessage, error) {
	return ms.cachedFetch("trending", "/trending", nil, ms.CacheTTL)
}

// Stock detail responses are not cached: the detail view always shows a
// live quote.
func (ms *MarketService) Stock(name string) (json.RawMessage, error) {
	return ms.fetch("/stock", map[string]string{"name": name})
}

func (ms *MarketService) HistoricalData(stockName, period, filter string) (json.RawMessage, error) {
	if period == "" {
		period = "1m"
	}
	if filter == "" {
		filter = "default"
	}
	return ms.fetch("/historical_data", map[string]string{
		"stock_name": stockName,
		"period":     period,
		"filter":     filter,
	})
}

func (ms *MarketService) HistoricalStats(stockName, stats string) (json.RawMessage, error) {
	return ms.fetch("/historical_stats", map[string]string{
		"stock_name": stockName,
		"stats":      stats,
	})
}

func (ms *MarketService) Statement(stockName, stats string) (json.RawMessage, error) {
	return ms.fetch("/statement", map[string]string{
		"stock_name": stockName,
		"stats":      stats,
	})
}

func (ms *MarketService) News() (json.RawMessage, error) {
	return ms.cachedFetch("news", "/news", nil, ms.NewsTTL)
}

func (ms *MarketService) IPO() (json.RawMessage, error) {
	return ms.cachedFetch("ipo", "/ipo", nil, ms.CacheTTL)
}

func (ms *MarketService) Commodities() (json.RawMessage, error) {
	return ms.cachedFetch("commodities", "/commodities", nil, ms.CacheTTL)
}

func (ms *MarketService) MutualFunds() (json.RawMessage, error) {
	return ms.cachedFetch("mutual_funds", "/mutual_funds", nil, ms.CacheTTL)
}

func (ms *MarketService) MutualFundSearch(query string) (json.RawMessage, error) {
	return ms.cachedFetch("mutual_fund_search_"+query, "/mutual_fund_search", map[string]string{"query": query}, ms.CacheTTL)
}

// MutualFundDetails hits the provider's oddly pluralized details path.
func (ms *MarketService) MutualFundDetails(stockName string) (json.RawMessage, error) {
	return ms.fetch("/mutual_funds_details", map[string]string{"stock_name": stockName})
}

func (ms *MarketService) NSEMostActive() (json.RawMessage, error) {
	return ms.cachedFetch("nse_most_active", "/NSE_most_active", nil, ms.CacheTTL)
}

func (ms *MarketService) BSEMostActive() (json.RawMessage, error) {
	return ms.cachedFetch("bse_most_active", "/BSE_most_active", nil, ms.CacheTTL)
}

func (ms *MarketService) PriceShockers() (json.RawMessage, error) {
	return ms.cachedFetch("price_shockers", "/price_shockers", nil, ms.CacheTTL)
}

func (ms *MarketService) IndustrySearch(query string) (json.RawMessage, error) {
	return ms.cachedFetch("industry_search_"+query, "/industry_search", map[string]string{"query": query}, ms.CacheTTL)
}

func (ms *MarketService) Week52HighLow() (json.RawMessage, error) {
	return ms.cachedFetch("52_week", "/fetch_52_week_high_low_data", nil, ms.CacheTTL)
}

func (ms *MarketService) CorporateActions(stockName string) (json.RawMessage, error) {
	return ms.fetch("/corporate_actions", map[string]string{"stock_name": stockName})
}

func (ms *MarketService) RecentAnnouncements(stockName string) (json.RawMessage, error) {
	return ms.fetch("/recent_announcements", map[string]string{"stock_name": stockName})
}

// StockForecasts proxies analyst forecast data. Empty optional params fall
// back to the provider's most common view.
func (ms *MarketService) StockForecasts(stockID, measureCode, periodType, dataType, age string) (json.RawMessage, error) {
	if measureCode == "" {
		measureCode = "EPS"
	}
	if periodType == "" {
		periodType = "Annual"
	}
	if dataType == "" {
		dataType = "Actuals"
	}
	if age == "" {
		age = "OneWeekAgo"
	}
	return ms.fetch("/stock_forecasts", map[string]string{
		"stock_id":     stockID,
		"measure_code": measureCode,
		"period_type":  periodType,
		"data_type":    dataType,
		"age":          age,
	})
}

func (ms *MarketService) StockTargetPrice(stockID string) (json.RawMessage, error) {
	return ms.fetch("/stock_target_price", map[string]string{"stock_id": stockID})
}

// TrendingQuotes returns the trending payload normalized into canonical
// quotes, with unnamed records filtered out.
func (ms *MarketService) TrendingQuotes() ([]quotes.Quote, error) {
	raw, err := ms.Trending()
	if err != nil {
		return nil, err
	}
	return quotes.NormalizeList(extractRecords(raw)), nil
}

// StockQuote normalizes a single stock detail payload. Unlike list views the
// record is returned even when no name field resolved.
func (ms *MarketService) StockQuote(name string) (quotes.Quote, error) {
	raw, err := ms.Stock(name)
	if err != nil {
		return quotes.Quote{}, err
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return quotes.Quote{}, fmt.Errorf("%w: decoding stock payload: %v", ErrProviderUnreachable, err)
	}
	q, _ := quotes.Normalize(payload)
	return q, nil
}

// extractRecords walks an arbitrary provider payload and collects every
// object found inside an array, at any depth. The provider nests its lists
// differently per endpoint (trending groups gainers and losers, most-active
// is a flat array) and this keeps the endpoints agnostic to that.
func extractRecords(raw json.RawMessage) []map[string]interface{} {
	var root interface{}
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil
	}
	var records []map[string]interface{}
	collectRecords(root, &records)
	return records
}

func collectRecords(node interface{}, records *[]map[string]interface{}) {
	switch v := node.(type) {
	case []interface{}:
		for _, item := range v {
			if obj, ok := item.(map[string]interface{}); ok {
				*records = append(*records, obj)
			} else {
				collectRecords(item, records)
			}
		}
	case map[string]interface{}:
		for _, item := range v {
			collectRecords(item, records)
		}
	}
}
