package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades the connection and attaches the client to its
// store's event feed. The caller must have resolved storeID from the JWT.
func HandleWebSocket(c echo.Context, hub *Hub, storeID string) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		StoreID: storeID,
		Conn:    conn,
	}

	hub.register <- client

	client.send(Event{
		Type:    "connected",
		Message: "WebSocket connection established",
		StoreID: storeID,
	})

	// Drain reads until the peer disconnects
	go func() {
		defer func() {
			hub.unregister <- client
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()

	return nil
}
