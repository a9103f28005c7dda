// Package websocket provides the live entry feed: a one-way push channel
// that tells a user's connected clients about newly logged exercises.
// file: websocket/connection.go
package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"irontrack/logger"
)

// Connection represents a single WebSocket connection for one client.
type Connection struct {
	conn  *websocket.Conn
	send  chan []byte
	email string
}

// Global map of active connections, guarded by connMu.
var (
	connMu      sync.Mutex
	connections = make(map[*Connection]bool)
)

// Configuration constants.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Upgrader upgrades HTTP requests to WebSocket connections. Origin
// filtering already happened in the CORS middleware by the time the
// upgrade request arrives.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWs upgrades the request to a WebSocket connection owned by the
// given session user and starts the read and write pumps. The feed is
// one-way; inbound messages are drained and discarded.
func ServeWs(w http.ResponseWriter, r *http.Request, email string) {
	logger.Info.Printf("[ServeWs] Upgrading to WS: remoteAddr=%v, user=%s", r.RemoteAddr, email)
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error.Printf("[ServeWs] WebSocket upgrade error: %v", err)
		return
	}

	c := &Connection{
		conn:  wsConn,
		send:  make(chan []byte, 256),
		email: email,
	}

	registerConnection(c)

	go c.readPump()
	go c.writePump()
}

func registerConnection(c *Connection) {
	connMu.Lock()
	defer connMu.Unlock()
	connections[c] = true
	logger.Debug.Printf("[registerConnection] user=%s, total=%d", c.email, len(connections))
}

func unregisterConnection(c *Connection) {
	connMu.Lock()
	defer connMu.Unlock()
	delete(connections, c)
	logger.Debug.Printf("[unregisterConnection] user=%s, total=%d", c.email, len(connections))
}

// readPump drains inbound frames so pongs are processed, and tears the
// connection down on error.
func (c *Connection) readPump() {
	defer func() {
		unregisterConnection(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			logger.Debug.Printf("[readPump] read error from %v: %v", c.conn.RemoteAddr(), err)
			break
		}
	}
}

// writePump pushes queued feed messages to the client and keeps the
// connection alive with periodic pings.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Warn.Printf("[writePump] write error to %v: %v", c.conn.RemoteAddr(), err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
