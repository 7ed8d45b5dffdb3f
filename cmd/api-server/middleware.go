package main

import (
	"context"
	"net/http"

	"github.com/stockquest/api-server/internals/auth"
)

// Middleware function
func (app *App) Middleware(next http.Handler) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		authHeader := r.Header.Get("Authorization")
		var token string
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			token = authHeader[7:]
		}

		if token == "" {
			sendResponse(w, httpResp{Status: http.StatusUnauthorized, Error: "Unauthorized"})
			return
		}

		// Validate the token and get the user ID
		authService := auth.New(app.KVStore, app.DB, app.Cfg.GetString("auth.jwt_secret"))
		userID, err := authService.ValidateToken(token)
		if err != nil {
			sendResponse(w, httpResp{Status: http.StatusUnauthorized, Error: "Unauthorized"})
			return
		}

		// Check if the token is in the list of valid tokens
		if !authService.CheckIfTokenIsWhiteListed(userID, token) {
			sendResponse(w, httpResp{Status: http.StatusUnauthorized, Error: "Unauthorized"})
			return
		}

		// Create a new context with the user ID and token
		ctx := context.WithValue(r.Context(), "user_id", userID)
		ctx = context.WithValue(ctx, "token", token)

		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}
