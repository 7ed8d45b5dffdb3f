package main

import (
	"encoding/json"

	"github.com/stockquest/api-server/internals/scoring"
)

// ScoreUpdateMessage is what connected clients receive after a score event
// has been applied.
type ScoreUpdateMessage struct {
	Type    string                    `json:"type"`
	Updates []scoring.PortfolioUpdate `json:"updates"`
	IsFinal bool                      `json:"is_final"`
}

// ScorePicker consumes score events from the external scoring pipeline,
// applies them to portfolios and the leaderboard, and pushes the outcome to
// websocket clients.
func (app *App) ScorePicker(data []byte) {
	if !json.Valid(data) {
		app.Log.Warn("dropping invalid score event payload")
		return
	}

	var event scoring.ScoreEvent
	if err := json.Unmarshal(data, &event); err != nil {
		app.Log.WithError(err).Warn("could not decode score event")
		return
	}

	updates, err := app.Scoring.Apply(event)
	if err != nil {
		app.Log.WithError(err).Error("could not apply score event")
		return
	}

	msg, err := json.Marshal(ScoreUpdateMessage{
		Type:    "score_update",
		Updates: updates,
		IsFinal: event.IsFinal,
	})
	if err != nil {
		app.Log.WithError(err).Error("could not marshal score update")
		return
	}

	app.broadcast(msg)
}
