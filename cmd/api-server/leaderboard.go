package main

import (
	"net/http"
	"strconv"

	"github.com/stockquest/api-server/internals/leaderboard"
)

func (app *App) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	scores, err := leaderboard.New(app.KVStore, app.DB).GetLeaderboard(limit)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: scores})
}
