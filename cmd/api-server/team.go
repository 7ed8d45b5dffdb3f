package main

import (
	"net/http"

	"github.com/stockquest/api-server/internals/ledger"
	"github.com/stockquest/api-server/internals/quotes"
	"github.com/stockquest/api-server/internals/team"
)

// TeamPayload is the selection as the client holds it: chosen stocks plus
// role assignments, with an optional idempotency key for submission.
type TeamPayload struct {
	Stocks []struct {
		Symbol string  `json:"symbol"`
		Name   string  `json:"name"`
		Price  float64 `json:"price"`
	} `json:"stocks"`
	Captain      string `json:"captain"`
	ViceCaptain  string `json:"vice_captain"`
	SubmissionID string `json:"submission_id"`
}

// buildSelection replays the payload through the team state machine so the
// server enforces the same rules the client UI does. Warnings are
// collected; role errors abort.
func buildSelection(payload TeamPayload) (*team.Selection, []string, error) {
	sel := team.NewSelection()
	warnings := make([]string, 0)

	for _, s := range payload.Stocks {
		if warn := sel.Add(quotes.Quote{Symbol: s.Symbol, Name: s.Name, Price: s.Price}); warn != "" {
			warnings = append(warnings, warn)
		}
	}

	if payload.Captain != "" {
		if err := sel.AssignCaptain(payload.Captain); err != nil {
			return nil, warnings, err
		}
	}
	if payload.ViceCaptain != "" {
		if err := sel.AssignViceCaptain(payload.ViceCaptain); err != nil {
			return nil, warnings, err
		}
	}

	return sel, warnings, nil
}

func (app *App) ValidateTeam(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int)

	var payload TeamPayload
	if err := getBody(r, &payload); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: "Invalid request body"})
		return
	}

	sel, warnings, err := buildSelection(payload)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: err.Error()})
		return
	}

	balance, err := ledger.NewGormStore(app.DB).Balance(userID)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{
		"state":      sel.State(),
		"size":       sel.Size(),
		"total_cost": sel.TotalCost(),
		"balance":    balance,
		"can_submit": sel.CanSubmit(balance),
		"warnings":   warnings,
	}})
}
