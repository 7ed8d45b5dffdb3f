package main

import (
	"errors"
	"net/http"

	"github.com/stockquest/api-server/internals/auth"
)

func (app *App) authService() *auth.AuthService {
	return auth.New(app.KVStore, app.DB, app.Cfg.GetString("auth.jwt_secret"))
}

func (app *App) Login(w http.ResponseWriter, r *http.Request) {
	var loginDetails auth.LoginRequestBody
	err := getBody(r, &loginDetails)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: "Invalid request body"})
		return
	}

	token, err := app.authService().Login(loginDetails)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, auth.ErrInvalidCredentials) {
			status = http.StatusUnauthorized
		}
		sendResponse(w, httpResp{Status: status, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"token": token, "message": "Logged in successfully"}})
}

func (app *App) SignUp(w http.ResponseWriter, r *http.Request) {
	var signupDetails auth.SignUpRequestBody
	err := getBody(r, &signupDetails)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, Error: "Invalid request body"})
		return
	}

	err = app.authService().SignUp(signupDetails)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, auth.ErrUserExists) {
			status = http.StatusBadRequest
		}
		sendResponse(w, httpResp{Status: status, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusCreated, Data: map[string]interface{}{"message": "User created successfully"}})
}

func (app *App) Logout(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int)
	token := r.Context().Value("token").(string)

	err := app.authService().RevokeToken(userID, token)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Logged out successfully"}})
}
