package main

import (
	"errors"
	"net/http"

	"github.com/stockquest/api-server/internals/ledger"
	"github.com/stockquest/api-server/internals/portfolio"
)

func (app *App) portfolioService() *portfolio.PortfolioService {
	return portfolio.New(app.KVStore, app.DB, app.Market, app.Log)
}

func (app *App) SubmitPortfolio(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int)

	var payload TeamPayload
	if err := getBody(r, &payload); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: "Invalid request body"})
		return
	}

	sel, _, err := buildSelection(payload)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: err.Error()})
		return
	}

	p, err := app.Ledger.Submit(userID, sel, payload.SubmissionID)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrIncompleteTeam), errors.Is(err, ledger.ErrInsufficientFunds):
			sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: err.Error()})
		case errors.Is(err, ledger.ErrSubmissionInFlight), errors.Is(err, ledger.ErrDuplicateSubmission):
			sendResponse(w, httpResp{Status: http.StatusConflict, Error: err.Error()})
		default:
			sendResponse(w, httpResp{Status: http.StatusInternalServerError, Error: err.Error()})
		}
		return
	}

	sendResponse(w, httpResp{Status: http.StatusCreated, Data: map[string]interface{}{
		"portfolio": p,
		"message":   "Portfolio submitted successfully",
	}})
}

func (app *App) GetPortfolios(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int)

	overview, err := app.portfolioService().GetPortfolios(userID)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: overview})
}

func (app *App) GetDetailedPortfolio(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int)
	portfolioID := r.URL.Query().Get("id")
	if portfolioID == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: "id is required"})
		return
	}

	detailed, err := app.portfolioService().GetDetailedPortfolio(userID, portfolioID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ledger.ErrPortfolioNotFound) {
			status = http.StatusNotFound
		}
		sendResponse(w, httpResp{Status: status, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: detailed})
}

func (app *App) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int)
	portfolioID := r.URL.Query().Get("id")
	if portfolioID == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: "id is required"})
		return
	}

	err := app.Ledger.DeletePortfolio(userID, portfolioID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ledger.ErrPortfolioNotFound) {
			status = http.StatusNotFound
		}
		sendResponse(w, httpResp{Status: status, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Portfolio deleted"}})
}
