package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/samber/lo"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 50 * time.Second
	sendBuffer   = 16
	maxInboundSz = 512
)

// EventReady is the first frame of every session.
const EventReady = "session.ready"

// Client is one open socket. Inbound frames are only read to service
// pings; everything useful flows from the hub to the browser.
type Client struct {
	hub    *Hub
	userID string
	conn   *websocket.Conn
	send   chan []byte
	quit   chan struct{}
	done   sync.Once
}

func (c *Client) deliver(payload []byte) {
	select {
	case c.send <- payload:
	default:
	}
}

func (c *Client) close() {
	c.done.Do(func() {
		c.hub.Unregister(c.userID, c)
		close(c.quit)
		_ = c.conn.Close()
	})
}

// NewUpgrader accepts handshakes from the allowed origins; "*" allows any.
func NewUpgrader(origins []string) websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || lo.Contains(origins, "*") || lo.Contains(origins, origin)
		},
	}
}

// ServeWS upgrades the request and blocks until the socket closes.
func ServeWS(w http.ResponseWriter, r *http.Request, upgrader websocket.Upgrader, hub *Hub, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{
		hub:    hub,
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		quit:   make(chan struct{}),
	}
	hub.Register(userID, client)
	client.deliver(stamp(Event{Type: EventReady, Resource: "session"}))
	go client.pumpOut()
	client.pumpIn()
}

func (c *Client) pumpIn() {
	defer c.close()
	c.conn.SetReadLimit(maxInboundSz)
	extend := func(string) error { return c.conn.SetReadDeadline(time.Now().Add(pongWait)) }
	_ = extend("")
	c.conn.SetPongHandler(extend)
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			return
		}
	}
}

func (c *Client) pumpOut() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()
	for {
		var err error
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err = c.conn.WriteMessage(websocket.TextMessage, message)
		case <-c.quit:
			return
		case <-ticker.C:
			err = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
		}
		if err != nil {
			return
		}
	}
}
