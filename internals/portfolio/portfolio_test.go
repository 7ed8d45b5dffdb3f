package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockquest/api-server/internals/scoring"
	"github.com/stockquest/api-server/pkg/kvstore"
)

func TestLivePrice(t *testing.T) {
	kv := kvstore.NewMemory()
	ps := &PortfolioService{KV: kv}

	// empty mirror: fall through to the provider path
	_, ok := ps.livePrice("TCS")
	assert.False(t, ok)

	require.NoError(t, kv.HSet(scoring.LivePricesKey, "TCS", "3500.50"))
	price, ok := ps.livePrice("TCS")
	require.True(t, ok)
	assert.Equal(t, 3500.50, price)

	// unparseable or non-positive entries are ignored
	require.NoError(t, kv.HSet(scoring.LivePricesKey, "INFY", "n/a"))
	_, ok = ps.livePrice("INFY")
	assert.False(t, ok)

	require.NoError(t, kv.HSet(scoring.LivePricesKey, "HDFC", "0.00"))
	_, ok = ps.livePrice("HDFC")
	assert.False(t, ok)
}
