package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

var (
	ErrCouldNotParseBody = errors.New("could not parse request body")
	ErrCouldNotReadBody  = errors.New("could not read request body")
)

// httpResp is the envelope every endpoint answers with:
// {"success": bool, "data": ..., "error": ...}.
type httpResp struct {
	Status  int         `json:"-"`
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func getBody(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return ErrCouldNotReadBody
	}
	err = json.Unmarshal(body, v)
	if err != nil {
		return ErrCouldNotParseBody
	}
	return nil
}

func sendResponse(rw http.ResponseWriter, resp httpResp) {
	rw.Header().Set("Content-Type", "application/json; charset=utf-8")
	if resp.Status == 0 {
		resp.Status = http.StatusOK
	}
	resp.Success = !(resp.Status >= 400)
	rw.WriteHeader(resp.Status)
	out, err := json.Marshal(resp)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		rw.Write([]byte(`{"success": false, "error": "could not marshal response"}`))
		return
	}
	rw.Write(out)
}
