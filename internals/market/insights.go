package market

import (
	"github.com/montanaflynn/stats"

	"github.com/stockquest/api-server/internals/quotes"
)

// InsightsReport summarizes market breadth over the trending set. It backs
// the learning view: how wide today's move is, not just who leads it.
type InsightsReport struct {
	SampleSize   int     `json:"sample_size"`
	Gainers      int     `json:"gainers"`
	Losers       int     `json:"losers"`
	MeanChange   float64 `json:"mean_change"`
	MedianChange float64 `json:"median_change"`
	StdDevChange float64 `json:"std_dev_change"`
	TopGainer    string  `json:"top_gainer,omitempty"`
	TopLoser     string  `json:"top_loser,omitempty"`
}

// Insights computes summary statistics over the normalized trending quotes.
func (ms *MarketService) Insights() (InsightsReport, error) {
	list, err := ms.TrendingQuotes()
	if err != nil {
		return InsightsReport{}, err
	}
	return buildInsights(list), nil
}

func buildInsights(list []quotes.Quote) InsightsReport {
	report := InsightsReport{SampleSize: len(list)}
	if len(list) == 0 {
		return report
	}

	changes := make([]float64, 0, len(list))
	var topGainer, topLoser quotes.Quote
	for i, q := range list {
		changes = append(changes, q.Change)
		if q.Change > 0 {
			report.Gainers++
		}
		if q.Change < 0 {
			report.Losers++
		}
		if i == 0 || q.Change > topGainer.Change {
			topGainer = q
		}
		if i == 0 || q.Change < topLoser.Change {
			topLoser = q
		}
	}

	report.MeanChange, _ = stats.Mean(changes)
	report.MedianChange, _ = stats.Median(changes)
	report.StdDevChange, _ = stats.StandardDeviation(changes)
	report.TopGainer = topGainer.Symbol
	report.TopLoser = topLoser.Symbol
	return report
}
