package main

import (
	"errors"
	"net/http"

	"github.com/stockquest/api-server/internals/watchlist"
)

func (app *App) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int)

	entries, err := watchlist.New(app.DB).List(userID)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: entries})
}

func (app *App) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int)

	var body struct {
		Symbol string `json:"symbol"`
		Name   string `json:"name"`
	}
	if err := getBody(r, &body); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: "Invalid request body"})
		return
	}

	err := watchlist.New(app.DB).Add(userID, body.Symbol, body.Name)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, watchlist.ErrAlreadyWatched) || errors.Is(err, watchlist.ErrSymbolRequired) {
			status = http.StatusBadRequest
		}
		sendResponse(w, httpResp{Status: status, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusCreated, Data: map[string]interface{}{"message": "Added to watchlist"}})
}

func (app *App) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int)
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: "symbol is required"})
		return
	}

	err := watchlist.New(app.DB).Remove(userID, symbol)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, watchlist.ErrEntryNotFound) {
			status = http.StatusNotFound
		}
		sendResponse(w, httpResp{Status: status, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Removed from watchlist"}})
}
