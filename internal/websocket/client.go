package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Timings for the remains feed. The server only pushes; reads exist to
// notice closes and keep the pong deadline fresh.
const (
	remainsWriteWait = 10 * time.Second
	remainsPongWait  = 60 * time.Second
	remainsPingEvery = 50 * time.Second

	// Inbound frames carry no data on this feed, only control traffic.
	inboundLimitBytes = 256

	// Each payment against a record produces one update; the buffer absorbs
	// a short burst before the hub starts dropping frames for this client.
	remainsSendBuffer = 16
)

// Client is one open admin-panel socket subscribed to a user's remains
// updates.
type Client struct {
	hub    *Hub
	userID string
	conn   *websocket.Conn
	send   chan []byte
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the connection and attaches it to the owner's remains
// feed until either side closes.
func ServeWS(w http.ResponseWriter, r *http.Request, hub *Hub, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "websocket upgrade failed", http.StatusBadRequest)
		return
	}
	client := &Client{
		hub:    hub,
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, remainsSendBuffer),
	}
	hub.Register(userID, client)
	go client.pushRemains()
	client.drainInbound()
}

// drainInbound discards anything the peer sends. The feed is one-way.
func (c *Client) drainInbound() {
	defer func() {
		c.hub.Unregister(c.userID, c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(inboundLimitBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(remainsPongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(remainsPongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// pushRemains writes hub broadcasts to the peer and keeps the connection
// alive with pings between payments.
func (c *Client) pushRemains() {
	ticker := time.NewTicker(remainsPingEvery)
	defer func() {
		ticker.Stop()
		c.hub.Unregister(c.userID, c)
		_ = c.conn.Close()
	}()
	for {
		select {
		case update, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(remainsWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, update); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(remainsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
