package quotes

import (
	"encoding/json"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNameResolution(t *testing.T) {
	q, ok := Normalize(map[string]interface{}{
		"company_name": "Tata Consultancy Services",
		"ltp":          3500.5,
	})
	require.True(t, ok)
	assert.Equal(t, "Tata Consultancy Services", q.Name)
	assert.Equal(t, 3500.5, q.Price)

	// later aliases win only when earlier ones are empty
	q, ok = Normalize(map[string]interface{}{
		"company_name": "  ",
		"name":         "Infosys",
	})
	require.True(t, ok)
	assert.Equal(t, "Infosys", q.Name)

	q, ok = Normalize(map[string]interface{}{"price": 100.0})
	assert.False(t, ok)
	assert.Equal(t, UnknownName, q.Name)
}

func TestNormalizeSymbolDerivation(t *testing.T) {
	q, ok := Normalize(map[string]interface{}{"name": "Reliance Industries"})
	require.True(t, ok)
	assert.Equal(t, "RELIAN", q.Symbol)

	q, _ = Normalize(map[string]interface{}{"name": "TCS", "symbol": "TCS"})
	assert.Equal(t, "TCS", q.Symbol)

	// short names are used whole
	q, _ = Normalize(map[string]interface{}{"name": "ITC"})
	assert.Equal(t, "ITC", q.Symbol)

	// truncation counts runes, not bytes, so multi-byte names stay valid
	q, _ = Normalize(map[string]interface{}{"name": "Société Générale"})
	assert.Equal(t, "SOCIÉT", q.Symbol)
	assert.True(t, utf8.ValidString(q.Symbol))
}

func TestParseNumericFormats(t *testing.T) {
	cases := []struct {
		in   interface{}
		want float64
	}{
		{3500.5, 3500.5},
		{json.Number("42"), 42},
		{"₹1.50 Cr", 15000000},
		{"2.5 L", 250000},
		{"1,234.56", 1234.56},
		{"+3.25%", 3.25},
		{"-2.10%", -2.10},
		{"₹ 3,500.50", 3500.5},
		{map[string]interface{}{"value": 15000000.0}, 15000000},
		{map[string]interface{}{"last_traded_price": "1,000"}, 1000},
		{"", 0},
		{"N/A", 0},
		{nil, 0},
		{true, 0},
	}

	for _, c := range cases {
		q, _ := Normalize(map[string]interface{}{"name": "X", "price": c.in})
		assert.Equalf(t, c.want, q.Price, "input %v", c.in)
	}
}

func TestEquivalentMagnitudes(t *testing.T) {
	decorated, _ := Normalize(map[string]interface{}{"name": "A", "market_cap": "₹1.50 Cr"})
	nested, _ := Normalize(map[string]interface{}{"name": "A", "market_cap": map[string]interface{}{"value": 15000000.0}})
	assert.Equal(t, decorated.MarketCap, nested.MarketCap)
}

func TestNormalizeDefaultsToZero(t *testing.T) {
	q, ok := Normalize(map[string]interface{}{"name": "Bare"})
	require.True(t, ok)
	assert.Zero(t, q.Price)
	assert.Zero(t, q.Change)
	assert.Zero(t, q.Volume)
	assert.Zero(t, q.MarketCap)
	assert.Zero(t, q.Week52High)
	assert.Empty(t, q.Sector)
}

func TestNormalizeListFiltersUnknown(t *testing.T) {
	raws := []map[string]interface{}{
		{"name": "Wipro", "price": 450.0},
		{"price": 999.0}, // no name field at all
		{"company": "HDFC Bank", "ltp": "1,650.25"},
	}

	list := NormalizeList(raws)
	require.Len(t, list, 2)
	assert.Equal(t, "Wipro", list[0].Name)
	assert.Equal(t, "HDFC Bank", list[1].Name)
	assert.Equal(t, 1650.25, list[1].Price)
}

func TestNormalizeChangeAliases(t *testing.T) {
	q, _ := Normalize(map[string]interface{}{"name": "X", "pChange": "+1.75%"})
	assert.Equal(t, 1.75, q.Change)

	q, _ = Normalize(map[string]interface{}{"name": "X", "percent_change": -0.5})
	assert.Equal(t, -0.5, q.Change)
}
