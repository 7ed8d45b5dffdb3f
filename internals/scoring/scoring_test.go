package scoring

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockquest/api-server/pkg/kvstore"
)

func TestStockScoreFormula(t *testing.T) {
	// +2.5% IT stock with heavy volume: 25 + 5 + 5
	b := StockScore(StockSnapshot{ChangePercent: 2.5, Volume: 2_000_000, Sector: "IT"})
	assert.Equal(t, 25.0, b.BaseScore)
	assert.Equal(t, 5.0, b.VolumeBonus)
	assert.Equal(t, 5.0, b.SectorBonus)
	assert.Zero(t, b.LossPenalty)
	assert.Equal(t, 35.0, b.Total)

	// pharma sector gets the smaller bonus
	b = StockScore(StockSnapshot{ChangePercent: 1, Sector: "Pharma"})
	assert.Equal(t, 3.0, b.SectorBonus)

	// mild drop
	b = StockScore(StockSnapshot{ChangePercent: -2.5})
	assert.Equal(t, -5.0, b.LossPenalty)
	assert.Equal(t, -30.0, b.Total)

	// sharp drop takes the bigger penalty, not both
	b = StockScore(StockSnapshot{ChangePercent: -5})
	assert.Equal(t, -10.0, b.LossPenalty)
	assert.Equal(t, -60.0, b.Total)
}

func TestRoleMultipliers(t *testing.T) {
	assert.Equal(t, 2.0, RoleMultiplier("TCS", "TCS", "INFY"))
	assert.Equal(t, 1.5, RoleMultiplier("INFY", "TCS", "INFY"))
	assert.Equal(t, 1.0, RoleMultiplier("WIPRO", "TCS", "INFY"))
}

func TestPortfolioScore(t *testing.T) {
	snapshots := map[string]StockSnapshot{
		"TCS":  {ChangePercent: 2},  // 20 base
		"INFY": {ChangePercent: 1},  // 10 base
		"HDFC": {ChangePercent: -1}, // -10 base
	}

	total := PortfolioScore([]string{"TCS", "INFY", "HDFC"}, "TCS", "INFY", snapshots)
	// 20*2 + 10*1.5 + (-10)*1 = 45
	assert.Equal(t, 45.0, total)

	// symbols missing from the event contribute nothing
	total = PortfolioScore([]string{"TCS", "GHOST"}, "GHOST", "", snapshots)
	assert.Equal(t, 20.0, total)
}

func TestLivePriceMirror(t *testing.T) {
	kv := kvstore.NewMemory()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	ss := &ScoringService{KV: kv, Log: log}

	ss.mirrorLivePrices(ScoreEvent{Quotes: map[string]StockSnapshot{
		"TCS":  {Price: 3500.5},
		"INFY": {}, // unpriced snapshots are not mirrored
	}})

	got, err := kv.HGet(LivePricesKey, "TCS")
	require.NoError(t, err)
	assert.Equal(t, "3500.50", got)
	_, err = kv.HGet(LivePricesKey, "INFY")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	// the final event settles its symbols and flushes cached market views
	require.NoError(t, kv.Set("market_trending", "{}"))
	ss.mirrorLivePrices(ScoreEvent{
		Quotes:  map[string]StockSnapshot{"TCS": {Price: 3600}},
		IsFinal: true,
	})

	_, err = kv.HGet(LivePricesKey, "TCS")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
	_, err = kv.Get("market_trending")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}
