package scoring

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stockquest/api-server/internals/ledger"
	"github.com/stockquest/api-server/pkg/kvstore"
)

const (
	CaptainMultiplier     = 2.0
	ViceCaptainMultiplier = 1.5
)

// LivePricesKey is the KV hash holding the latest event price per symbol.
// The portfolio detail view and the websocket snapshot read from it.
const LivePricesKey = "live_prices"

type ScoringService struct {
	DB  *gorm.DB
	KV  kvstore.KVStore
	Log *logrus.Logger
}

func New(db *gorm.DB, kv kvstore.KVStore, log *logrus.Logger) *ScoringService {
	return &ScoringService{
		DB:  db,
		KV:  kv,
		Log: log,
	}
}

// StockScore applies the point formula to one snapshot: 10 points per
// percent of change, bonuses for heavy volume and strong sectors, penalties
// for sharp drops.
func StockScore(snap StockSnapshot) ScoreBreakdown {
	b := ScoreBreakdown{
		BaseScore: snap.ChangePercent * 10,
	}

	if snap.Volume > 1_000_000 {
		b.VolumeBonus = 5
	}

	switch strings.ToLower(snap.Sector) {
	case "technology", "it", "banking", "financial services":
		b.SectorBonus = 5
	case "healthcare", "pharma", "fmcg":
		b.SectorBonus = 3
	}

	switch {
	case snap.ChangePercent < -4:
		b.LossPenalty = -10
	case snap.ChangePercent < -2:
		b.LossPenalty = -5
	}

	b.Total = b.BaseScore + b.VolumeBonus + b.SectorBonus + b.LossPenalty
	return b
}

// RoleMultiplier returns the multiplier a symbol earns from its role in the
// portfolio.
func RoleMultiplier(symbol, captain, viceCaptain string) float64 {
	switch symbol {
	case captain:
		return CaptainMultiplier
	case viceCaptain:
		return ViceCaptainMultiplier
	default:
		return 1.0
	}
}

// PortfolioScore totals the role-weighted stock scores for a set of symbols.
// Symbols missing from the event keep contributing nothing this round.
func PortfolioScore(symbols []string, captain, viceCaptain string, snapshots map[string]StockSnapshot) float64 {
	var total float64
	for _, symbol := range symbols {
		snap, ok := snapshots[symbol]
		if !ok {
			continue
		}
		total += StockScore(snap).Total * RoleMultiplier(symbol, captain, viceCaptain)
	}
	return total
}

// Apply re-scores every active portfolio against the event: points from the
// formula above, current value re-priced from the event's snapshots (stocks
// absent from the event keep their stored price). Returns the updates that
// were written so the caller can push them to clients.
func (ss *ScoringService) Apply(event ScoreEvent) ([]PortfolioUpdate, error) {
	ss.mirrorLivePrices(event)

	var portfolios []ledger.Portfolio
	err := ss.DB.Where("status = ?", ledger.StatusActive).Preload("Stocks").Find(&portfolios).Error
	if err != nil {
		return nil, err
	}

	updates := make([]PortfolioUpdate, 0, len(portfolios))
	touchedUsers := make(map[int]struct{})

	for _, p := range portfolios {
		symbols := make([]string, 0, len(p.Stocks))
		var currentValue float64
		for _, s := range p.Stocks {
			symbols = append(symbols, s.Symbol)
			if snap, ok := event.Quotes[s.Symbol]; ok && snap.Price > 0 {
				currentValue += snap.Price * float64(s.Quantity)
			} else {
				currentValue += s.Price * float64(s.Quantity)
			}
		}

		points := p.Points + PortfolioScore(symbols, p.Captain, p.ViceCaptain, event.Quotes)

		status := p.Status
		if event.IsFinal {
			status = "settled"
		}

		err := ss.DB.Exec(
			"UPDATE portfolios SET points = ?, current_value = ?, status = ? WHERE id = ?",
			points, currentValue, status, p.ID,
		).Error
		if err != nil {
			ss.Log.WithError(err).WithField("portfolio_id", p.ID).Error("failed to write portfolio score")
			continue
		}

		touchedUsers[p.UserID] = struct{}{}
		updates = append(updates, PortfolioUpdate{
			PortfolioID:  p.ID,
			UserID:       p.UserID,
			Points:       points,
			CurrentValue: currentValue,
		})
	}

	for userID := range touchedUsers {
		err := ss.DB.Exec(
			`UPDATE leaderboard SET points = (SELECT COALESCE(SUM(points), 0) FROM portfolios WHERE user_id = ?), updated_at = NOW() WHERE user_id = ?`,
			userID, userID,
		).Error
		if err != nil {
			ss.Log.WithError(err).WithField("user_id", userID).Error("failed to refresh leaderboard points")
		}
	}

	return updates, nil
}

// mirrorLivePrices keeps the live price hash in step with the event. On the
// final event of a round the settled symbols come out of the hash and the
// cached market views, now stale, get flushed.
func (ss *ScoringService) mirrorLivePrices(event ScoreEvent) {
	symbols := make([]string, 0, len(event.Quotes))
	for symbol, snap := range event.Quotes {
		symbols = append(symbols, symbol)
		if snap.Price <= 0 {
			continue
		}
		if err := ss.KV.HSet(LivePricesKey, symbol, fmt.Sprintf("%.2f", snap.Price)); err != nil {
			ss.Log.WithError(err).WithField("symbol", symbol).Warn("live price mirror failed")
		}
	}

	if !event.IsFinal {
		return
	}

	if len(symbols) > 0 {
		if err := ss.KV.HDel(LivePricesKey, symbols...); err != nil {
			ss.Log.WithError(err).Warn("live price cleanup failed")
		}
	}

	keys, err := ss.KV.Keys("market_*")
	if err != nil {
		ss.Log.WithError(err).Warn("market cache flush scan failed")
		return
	}
	for _, key := range keys {
		if err := ss.KV.Delete(key); err != nil {
			ss.Log.WithError(err).WithField("key", key).Warn("market cache flush failed")
		}
	}
}
