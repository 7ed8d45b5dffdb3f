package scoring

// StockSnapshot is what the external scoring pipeline publishes per symbol:
// the latest price and the stats the score formula feeds on.
type StockSnapshot struct {
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
	Volume        float64 `json:"volume"`
	Sector        string  `json:"sector"`
}

// ScoreEvent arrives on the scores queue. IsFinal marks the last event of a
// scoring window; portfolios are settled and clients told the round is over.
type ScoreEvent struct {
	Quotes  map[string]StockSnapshot `json:"quotes"`
	IsFinal bool                     `json:"is_final"`
}

// PortfolioUpdate is the result of applying one event to one portfolio. The
// websocket layer broadcasts these to connected clients.
type PortfolioUpdate struct {
	PortfolioID  string  `json:"portfolio_id"`
	UserID       int     `json:"user_id"`
	Points       float64 `json:"points"`
	CurrentValue float64 `json:"current_value"`
}

type ScoreBreakdown struct {
	BaseScore   float64 `json:"base_score"`
	VolumeBonus float64 `json:"volume_bonus"`
	SectorBonus float64 `json:"sector_bonus"`
	LossPenalty float64 `json:"loss_penalty"`
	Total       float64 `json:"total"`
}
