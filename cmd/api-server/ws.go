package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/stockquest/api-server/internals/scoring"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSDetails tracks what a connected client wants pushed. user_id is
// optional; score updates for everyone, balance-affecting updates only for
// the matching user.
type WSDetails struct {
	UserID int
}

func (app *App) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "Could not open websocket connection", http.StatusBadRequest)
		return
	}

	// defer the connection close and remove the client from the list
	defer func() {
		conn.Close()
		app.ClientsM.Lock()
		delete(app.WS, conn)
		app.ClientsM.Unlock()
	}()

	var details WSDetails
	if token := r.URL.Query().Get("token"); token != "" {
		if userID, err := app.authService().ValidateToken(token); err == nil {
			details.UserID = userID
		}
	}

	app.ClientsM.Lock()
	app.WS[conn] = details
	app.ClientsM.Unlock()

	app.sendLivePrices(conn)

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

// sendLivePrices pushes the current price mirror to a freshly connected
// client so it does not have to wait for the next score event.
func (app *App) sendLivePrices(conn *websocket.Conn) {
	prices, err := app.KVStore.HGetAll(scoring.LivePricesKey)
	if err != nil || len(prices) == 0 {
		return
	}
	msg, err := json.Marshal(map[string]interface{}{
		"type":   "live_prices",
		"prices": prices,
	})
	if err != nil {
		return
	}
	// ClientsM also serializes writes so this cannot interleave with a
	// broadcast
	app.ClientsM.Lock()
	defer app.ClientsM.Unlock()
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		conn.Close()
	}
}

// broadcast writes the payload to every connected client. Dead connections
// get dropped on the next read loop iteration.
func (app *App) broadcast(data []byte) {
	app.ClientsM.Lock()
	defer app.ClientsM.Unlock()
	for conn := range app.WS {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
		}
	}
}
