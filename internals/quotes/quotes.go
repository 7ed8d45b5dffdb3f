package quotes

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Quote is the canonical snapshot of a tradable instrument. Every list and
// detail view works off this shape regardless of which provider endpoint the
// raw payload came from.
type Quote struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Change     float64 `json:"change"`
	Volume     float64 `json:"volume"`
	DayHigh    float64 `json:"day_high"`
	DayLow     float64 `json:"day_low"`
	MarketCap  float64 `json:"market_cap"`
	PERatio    float64 `json:"pe_ratio"`
	Week52High float64 `json:"week_52_high"`
	Week52Low  float64 `json:"week_52_low"`
	Sector     string  `json:"sector"`
}

const UnknownName = "Unknown"

// Field aliases per attribute, in resolution order. The provider is not
// contractually bound to any key set: names and casings drift across
// endpoints and across calls, so normalization policy lives here and
// nowhere else.
var (
	nameAliases = []string{
		"company_name", "companyName", "company", "commonName",
		"name", "stock_name", "stockName", "fund_name", "schemeName",
		"ticker", "symbol",
	}
	symbolAliases = []string{
		"symbol", "ticker", "ticker_id", "tickerId", "nse_symbol",
		"bse_symbol", "scrip_code", "sid",
	}
	priceAliases = []string{
		"price", "current_price", "currentPrice", "last_price",
		"lastPrice", "ltp", "nav", "close", "net_asset_value",
	}
	changeAliases = []string{
		"percent_change", "percentChange", "change_percent",
		"changePercent", "pChange", "net_change", "change", "per_change",
	}
	volumeAliases = []string{
		"volume", "traded_volume", "tradedVolume", "totalTradedVolume",
	}
	dayHighAliases = []string{
		"day_high", "dayHigh", "high", "intraday_high",
	}
	dayLowAliases = []string{
		"day_low", "dayLow", "low", "intraday_low",
	}
	marketCapAliases = []string{
		"market_cap", "marketCap", "mcap", "market_capitalisation",
	}
	peRatioAliases = []string{
		"pe_ratio", "peRatio", "pe", "price_to_earnings",
	}
	week52HighAliases = []string{
		"week_52_high", "52_week_high", "yearHigh", "year_high", "52wk_high",
	}
	week52LowAliases = []string{
		"week_52_low", "52_week_low", "yearLow", "year_low", "52wk_low",
	}
	sectorAliases = []string{
		"sector", "industry", "category", "segment",
	}
)

// nested value fields tried, in order, when a numeric attribute arrives as
// an object instead of a scalar.
var nestedValueAliases = []string{
	"value", "price", "last_traded_price", "lastTradedPrice", "ltp",
	"amount", "nse", "bse",
}

// Normalize converts an arbitrary provider payload into a Quote. The second
// return is false when the payload carries no usable name field at all; the
// record is still returned with Name "Unknown" so detail views can decide
// for themselves whether to render it.
func Normalize(raw map[string]interface{}) (Quote, bool) {
	var q Quote

	q.Name = resolveString(raw, nameAliases)
	named := q.Name != ""
	if !named {
		q.Name = UnknownName
	}

	q.Symbol = resolveString(raw, symbolAliases)
	if q.Symbol == "" {
		q.Symbol = deriveSymbol(q.Name)
	}

	q.Price = resolveNumber(raw, priceAliases)
	q.Change = resolveNumber(raw, changeAliases)
	q.Volume = resolveNumber(raw, volumeAliases)
	q.DayHigh = resolveNumber(raw, dayHighAliases)
	q.DayLow = resolveNumber(raw, dayLowAliases)
	q.MarketCap = resolveNumber(raw, marketCapAliases)
	q.PERatio = resolveNumber(raw, peRatioAliases)
	q.Week52High = resolveNumber(raw, week52HighAliases)
	q.Week52Low = resolveNumber(raw, week52LowAliases)
	q.Sector = resolveString(raw, sectorAliases)

	return q, named
}

// NormalizeList normalizes a slice of raw payloads and drops records that
// resolved to "Unknown". List views never show unnamed rows.
func NormalizeList(raws []map[string]interface{}) []Quote {
	out := make([]Quote, 0, len(raws))
	for _, raw := range raws {
		q, ok := Normalize(raw)
		if !ok {
			continue
		}
		out = append(out, q)
	}
	return out
}

func resolveString(raw map[string]interface{}, aliases []string) string {
	for _, alias := range aliases {
		v, ok := raw[alias]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s != "" {
			return s
		}
	}
	return ""
}

func resolveNumber(raw map[string]interface{}, aliases []string) float64 {
	for _, alias := range aliases {
		v, ok := raw[alias]
		if !ok {
			continue
		}
		if n, ok := parseNumeric(v); ok {
			return n
		}
	}
	return 0
}

// parseNumeric accepts the shapes the provider has been observed to emit: a
// native number, a JSON number, a nested object keyed by a value-like field,
// or a decorated string ("₹1,234.50", "+1.5%", "1.50 Cr", "2.3 L").
func parseNumeric(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		return parseDecoratedNumber(val)
	case map[string]interface{}:
		for _, alias := range nestedValueAliases {
			if inner, ok := val[alias]; ok {
				if n, ok := parseNumeric(inner); ok {
					return n, true
				}
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

// Magnitude suffixes used by Indian market feeds: crore and lakh.
const (
	croreMultiplier = 1e7
	lakhMultiplier  = 1e5
)

func parseDecoratedNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	multiplier := 1.0
	upper := strings.ToUpper(s)
	switch {
	case strings.HasSuffix(upper, "CR"):
		multiplier = croreMultiplier
		s = s[:len(s)-2]
	case strings.HasSuffix(upper, "L"):
		multiplier = lakhMultiplier
		s = s[:len(s)-1]
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}

	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return n * multiplier, true
}

// deriveSymbol builds a symbol from a display name when no symbol-like field
// exists: whitespace stripped, upper-cased, first 6 characters.
func deriveSymbol(name string) string {
	compact := []rune(strings.ToUpper(strings.Join(strings.Fields(name), "")))
	if len(compact) > 6 {
		compact = compact[:6]
	}
	return string(compact)
}
