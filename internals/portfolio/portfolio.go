package portfolio

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stockquest/api-server/internals/cache"
	"github.com/stockquest/api-server/internals/ledger"
	"github.com/stockquest/api-server/internals/market"
	"github.com/stockquest/api-server/internals/scoring"
	"github.com/stockquest/api-server/pkg/kvstore"
)

type PortfolioService struct {
	KV     kvstore.KVStore
	DB     *gorm.DB
	Market *market.MarketService
	Log    *logrus.Logger
}

func New(kv kvstore.KVStore, db *gorm.DB, ms *market.MarketService, log *logrus.Logger) *PortfolioService {
	return &PortfolioService{
		KV:     kv,
		DB:     db,
		Market: ms,
		Log:    log,
	}
}

// getBalance reads the mirrored balance from the KV store and falls back to
// the users table on a miss.
func (ps *PortfolioService) getBalance(userID int) (float64, error) {
	balanceStr, err := ps.KV.Get("balance_" + strconv.Itoa(userID))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return cache.New(ps.DB, ps.KV).LoadUserBalance(userID)
		}
		return 0, err
	}
	return strconv.ParseFloat(balanceStr, 64)
}

// GetPortfolios lists the user's portfolios, newest first, with the current
// balance alongside.
func (ps *PortfolioService) GetPortfolios(userID int) (PortfolioOverview, error) {
	var overview PortfolioOverview

	err := ps.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Stocks").
		Find(&overview.Portfolios).Error
	if err != nil {
		return overview, err
	}

	overview.Balance, err = ps.getBalance(userID)
	if err != nil {
		return overview, err
	}
	return overview, nil
}

// GetDetailedPortfolio re-prices one portfolio against live quotes. A quote
// that cannot be fetched keeps the stored buy price; a slow provider should
// degrade the display, not break it.
func (ps *PortfolioService) GetDetailedPortfolio(userID int, portfolioID string) (DetailedPortfolio, error) {
	var detailed DetailedPortfolio

	err := ps.DB.Where("id = ? AND user_id = ?", portfolioID, userID).
		Preload("Stocks").
		First(&detailed.Portfolio).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return detailed, ledger.ErrPortfolioNotFound
		}
		return detailed, err
	}

	p := detailed.Portfolio
	for _, s := range p.Stocks {
		valuation := StockValuation{
			Symbol:   s.Symbol,
			Name:     s.Name,
			BuyPrice: s.Price,
			CurPrice: s.Price,
			Quantity: s.Quantity,
			Invested: s.Price * float64(s.Quantity),
		}
		switch s.Symbol {
		case p.Captain:
			valuation.Role = "captain"
		case p.ViceCaptain:
			valuation.Role = "vice_captain"
		}

		if price, ok := ps.livePrice(s.Symbol); ok {
			valuation.CurPrice = price
		} else if q, err := ps.Market.StockQuote(s.Name); err == nil && q.Price > 0 {
			valuation.CurPrice = q.Price
		}
		valuation.Worth = valuation.CurPrice * float64(s.Quantity)

		detailed.Stocks = append(detailed.Stocks, valuation)
		detailed.CurrentValue += valuation.Worth
	}

	// persist the refreshed valuation so list views stay close to live
	// without hitting the provider per portfolio
	if err := ps.RefreshCurrentValue(p.ID, detailed.CurrentValue); err != nil {
		ps.Log.WithError(err).WithField("portfolio_id", p.ID).Warn("current value refresh failed")
	} else {
		detailed.Portfolio.CurrentValue = detailed.CurrentValue
	}

	return detailed, nil
}

// livePrice reads the score pipeline's price mirror. A hit spares a round
// trip to the market provider.
func (ps *PortfolioService) livePrice(symbol string) (float64, bool) {
	raw, err := ps.KV.HGet(scoring.LivePricesKey, symbol)
	if err != nil {
		return 0, false
	}
	price, err := strconv.ParseFloat(raw, 64)
	return price, err == nil && price > 0
}

// RefreshCurrentValue persists the latest valuation so list views do not
// need live quotes.
func (ps *PortfolioService) RefreshCurrentValue(portfolioID string, currentValue float64) error {
	res := ps.DB.Exec("UPDATE portfolios SET current_value = ? WHERE id = ?", currentValue, portfolioID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("portfolio %s not found", portfolioID)
	}
	return nil
}
