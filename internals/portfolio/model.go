package portfolio

import "github.com/stockquest/api-server/internals/ledger"

type StockValuation struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	BuyPrice float64 `json:"buy_price"`
	CurPrice float64 `json:"cur_price"`
	Quantity int     `json:"quantity"`
	Invested float64 `json:"invested"`
	Worth    float64 `json:"worth"`
	Role     string  `json:"role,omitempty"`
}

type DetailedPortfolio struct {
	Portfolio    ledger.Portfolio `json:"portfolio"`
	Stocks       []StockValuation `json:"stocks"`
	CurrentValue float64          `json:"current_value"`
}

type PortfolioOverview struct {
	Portfolios []ledger.Portfolio `json:"portfolios"`
	Balance    float64            `json:"balance"`
}
