package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stockquest/api-server/internals/market"
)

// proxy wraps a market service call in the response envelope. Provider
// failures come back as 502 so the UI can flip the region into its retry
// state instead of hanging.
func (app *App) proxy(w http.ResponseWriter, fetch func() (json.RawMessage, error)) {
	raw, err := fetch()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, market.ErrProviderUnreachable) {
			status = http.StatusBadGateway
		}
		sendResponse(w, httpResp{Status: status, Error: err.Error()})
		return
	}
	sendResponse(w, httpResp{Status: http.StatusOK, Data: raw})
}

func (app *App) GetTrending(w http.ResponseWriter, r *http.Request) {
	app.proxy(w, app.Market.Trending)
}

func (app *App) GetStock(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: "name is required"})
		return
	}
	app.proxy(w, func() (json.RawMessage, error) { return app.Market.Stock(name) })
}

func (app *App) GetHistoricalData(w http.ResponseWriter, r *http.Request) {
	stockName := r.URL.Query().Get("stock_name")
	if stockName == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: "stock_name is required"})
		return
	}
	period := r.URL.Query().Get("period")
	filter := r.URL.Query().Get("filter")
	app.proxy(w, func() (json.RawMessage, error) { return app.Market.HistoricalData(stockName, period, filter) })
}

func (app *App) GetHistoricalStats(w http.ResponseWriter, r *http.Request) {
	stockName := r.URL.Query().Get("stock_name")
	stats := r.URL.Query().Get("stats")
	if stockName == "" || stats == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: "stock_name and stats are required"})
		return
	}
	app.proxy(w, func() (json.RawMessage, error) { return app.Market.HistoricalStats(stockName, stats) })
}

func (app *App) GetStatement(w http.ResponseWriter, r *http.Request) {
	stockName := r.URL.Query().Get("stock_name")
	stats := r.URL.Query().Get("stats")
	if stockName == "" || stats == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: "stock_name and stats are required"})
		return
	}
	app.proxy(w, func() (json.RawMessage, error) { return app.Market.Statement(stockName, stats) })
}

func (app *App) GetNews(w http.ResponseWriter, r *http.Request) {
	app.proxy(w, app.Market.News)
}

func (app *App) GetIPO(w http.ResponseWriter, r *http.Request) {
	app.proxy(w, app.Market.IPO)
}

func (app *App) GetCommodities(w http.ResponseWriter, r *http.Request) {
	app.proxy(w, app.Market.Commodities)
}

func (app *App) GetMutualFunds(w http.ResponseWriter, r *http.Request) {
	app.proxy(w, app.Market.MutualFunds)
}

func (app *App) SearchMutualFunds(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: "query is required"})
		return
	}
	app.proxy(w, func() (json.RawMessage, error) { return app.Market.MutualFundSearch(query) })
}

func (app *App) GetMutualFundDetails(w http.ResponseWriter, r *http.Request) {
	stockName := r.URL.Query().Get("stock_name")
	if stockName == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: "stock_name is required"})
		return
	}
	app.proxy(w, func() (json.RawMessage, error) { return app.Market.MutualFundDetails(stockName) })
}

func (app *App) GetNSEMostActive(w http.ResponseWriter, r *http.Request) {
	app.proxy(w, app.Market.NSEMostActive)
}

func (app *App) GetBSEMostActive(w http.ResponseWriter, r *http.Request) {
	app.proxy(w, app.Market.BSEMostActive)
}

func (app *App) GetPriceShockers(w http.ResponseWriter, r *http.Request) {
	app.proxy(w, app.Market.PriceShockers)
}

func (app *App) SearchIndustry(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: "query is required"})
		return
	}
	app.proxy(w, func() (json.RawMessage, error) { return app.Market.IndustrySearch(query) })
}

func (app *App) GetWeek52HighLow(w http.ResponseWriter, r *http.Request) {
	app.proxy(w, app.Market.Week52HighLow)
}

func (app *App) GetCorporateActions(w http.ResponseWriter, r *http.Request) {
	stockName := r.URL.Query().Get("stock_name")
	if stockName == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: "stock_name is required"})
		return
	}
	app.proxy(w, func() (json.RawMessage, error) { return app.Market.CorporateActions(stockName) })
}

func (app *App) GetRecentAnnouncements(w http.ResponseWriter, r *http.Request) {
	stockName := r.URL.Query().Get("stock_name")
	if stockName == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: "stock_name is required"})
		return
	}
	app.proxy(w, func() (json.RawMessage, error) { return app.Market.RecentAnnouncements(stockName) })
}

func (app *App) GetStockForecasts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stockID := q.Get("stock_id")
	if stockID == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: "stock_id is required"})
		return
	}
	app.proxy(w, func() (json.RawMessage, error) {
		return app.Market.StockForecasts(stockID, q.Get("measure_code"), q.Get("period_type"), q.Get("data_type"), q.Get("age"))
	})
}

func (app *App) GetStockTargetPrice(w http.ResponseWriter, r *http.Request) {
	stockID := r.URL.Query().Get("stock_id")
	if stockID == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: "stock_id is required"})
		return
	}
	app.proxy(w, func() (json.RawMessage, error) { return app.Market.StockTargetPrice(stockID) })
}

func (app *App) GetInsights(w http.ResponseWriter, r *http.Request) {
	report, err := app.Market.Insights()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, market.ErrProviderUnreachable) {
			status = http.StatusBadGateway
		}
		sendResponse(w, httpResp{Status: status, Error: err.Error()})
		return
	}
	sendResponse(w, httpResp{Status: http.StatusOK, Data: report})
}
