package main

import "net/http"

func (app *App) initHandlers() {
	app.R.Get("/ws", app.handleWebSocket)

	app.R.Post("/auth/signup", app.SignUp)
	app.R.Post("/auth/login", app.Login)
	app.R.Post("/auth/logout", app.Middleware(http.HandlerFunc(app.Logout)))

	// market data proxy
	app.R.Get("/api/trending", app.GetTrending)
	app.R.Get("/api/stock", app.GetStock)
	app.R.Get("/api/historical_data", app.GetHistoricalData)
	app.R.Get("/api/historical_stats", app.GetHistoricalStats)
	app.R.Get("/api/statement", app.GetStatement)
	app.R.Get("/api/news", app.GetNews)
	app.R.Get("/api/ipo", app.GetIPO)
	app.R.Get("/api/commodities", app.GetCommodities)
	app.R.Get("/api/mutual_funds", app.GetMutualFunds)
	app.R.Get("/api/mutual_fund_search", app.SearchMutualFunds)
	app.R.Get("/api/mutual_fund_details", app.GetMutualFundDetails)
	app.R.Get("/api/nse_most_active", app.GetNSEMostActive)
	app.R.Get("/api/bse_most_active", app.GetBSEMostActive)
	app.R.Get("/api/price_shockers", app.GetPriceShockers)
	app.R.Get("/api/industry_search", app.SearchIndustry)
	app.R.Get("/api/52_week_high_low", app.GetWeek52HighLow)
	app.R.Get("/api/corporate_actions", app.GetCorporateActions)
	app.R.Get("/api/recent_announcements", app.GetRecentAnnouncements)
	app.R.Get("/api/stock_forecasts", app.GetStockForecasts)
	app.R.Get("/api/stock_target_price", app.GetStockTargetPrice)
	app.R.Get("/api/insights", app.GetInsights)

	app.R.Post("/team/validate", app.Middleware(http.HandlerFunc(app.ValidateTeam)))

	app.R.Post("/portfolio/submit", app.Middleware(http.HandlerFunc(app.SubmitPortfolio)))
	app.R.Get("/portfolio", app.Middleware(http.HandlerFunc(app.GetPortfolios)))
	app.R.Get("/portfolio/detailed", app.Middleware(http.HandlerFunc(app.GetDetailedPortfolio)))
	app.R.Delete("/portfolio", app.Middleware(http.HandlerFunc(app.DeletePortfolio)))

	app.R.Get("/leaderboard", app.GetLeaderboard)

	app.R.Get("/watchlist", app.Middleware(http.HandlerFunc(app.GetWatchlist)))
	app.R.Post("/watchlist", app.Middleware(http.HandlerFunc(app.AddToWatchlist)))
	app.R.Delete("/watchlist", app.Middleware(http.HandlerFunc(app.RemoveFromWatchlist)))

	app.R.Get("/profile", app.Middleware(http.HandlerFunc(app.GetProfile)))

	app.R.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("I am Healthy"))
	})
}
