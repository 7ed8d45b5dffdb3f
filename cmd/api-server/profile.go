package main

import (
	"net/http"

	"github.com/stockquest/api-server/internals/profile"
)

func (app *App) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int)

	profile, err := profile.New(app.KVStore, app.DB).GetProfile(userID)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, Error: err.Error()})
		return
	}
	sendResponse(w, httpResp{Status: http.StatusOK, Data: profile})
}
