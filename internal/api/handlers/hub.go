package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gmdjlee/etf-monitor/internal/dashboard"
	"github.com/gmdjlee/etf-monitor/internal/render"
	"github.com/gmdjlee/etf-monitor/pkg/logger"
)

const (
	// Ping/Pong settings
	pingInterval = 30 * time.Second
	pongWait     = 60 * time.Second
	writeWait    = 10 * time.Second

	sendBuffer = 16
)

// Message is a server-to-browser websocket frame
type Message struct {
	Type  string `json:"type"` // render, navigate, busy, error
	HTML  string `json:"html,omitempty"`
	URL   string `json:"url,omitempty"`
	Alert string `json:"alert,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub pushes the rendered dashboard to every connected browser and turns
// browser events into dashboard messages
// ⭐ SSOT: 브라우저 WebSocket 연결은 Hub에서만 관리
type Hub struct {
	ctrl     *dashboard.Controller
	logger   *logger.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}

	unsubscribe func()
}

// NewHub creates a hub subscribed to controller state changes
func NewHub(ctrl *dashboard.Controller, log *logger.Logger) *Hub {
	h := &Hub{
		ctrl:    ctrl,
		logger:  log,
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	h.unsubscribe = ctrl.Subscribe(h.Broadcast)
	return h
}

// Close disconnects every client and stops listening to the controller
func (h *Hub) Close() {
	h.unsubscribe()

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

// Clients returns the number of connected browsers
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast renders the current state and queues it for every client.
// A client whose buffer is full skips this frame and gets the next one.
func (h *Hub) Broadcast() {
	frame, err := h.renderFrame()
	if err != nil {
		h.logger.WithError(err).Error("Failed to render dashboard")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- frame:
		default:
			h.logger.Debug("Dropped frame for slow client")
		}
	}
}

func (h *Hub) renderFrame() ([]byte, error) {
	data, err := h.ctrl.Page()
	if err != nil {
		return nil, err
	}
	html, err := render.App(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: "render", HTML: string(html)})
}

// ServeWS upgrades the connection and serves one browser
// GET /ws
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	if frame, err := h.renderFrame(); err == nil {
		c.send <- frame
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.logger.WithField("clients", h.Clients()).Debug("Browser connected")

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// readLoop decodes browser events until the connection drops
func (h *Hub) readLoop(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.WithError(err).Warn("WebSocket read error")
			}
			return
		}

		var event map[string]string
		if err := json.Unmarshal(data, &event); err != nil {
			h.reply(c, Message{Type: "error", Alert: "잘못된 요청입니다."})
			continue
		}

		values := url.Values{}
		for k, v := range event {
			if k != "type" {
				values.Set(k, v)
			}
		}

		msg, err := ParseAction(event["type"], values)
		if err != nil {
			h.logger.WithField("type", event["type"]).Warn("Unknown browser event")
			continue
		}

		go h.dispatch(c, msg)
	}
}

func (h *Hub) dispatch(c *client, msg dashboard.Msg) {
	out, err := h.ctrl.Dispatch(context.Background(), msg)
	switch {
	case errors.Is(err, dashboard.ErrBusy):
		h.reply(c, Message{Type: "busy", Alert: busyMessage})
	case err != nil:
		h.logger.WithError(err).Error("Browser event failed")
	case out.Navigate != "":
		// 내보내기는 요청한 브라우저에만
		h.reply(c, Message{Type: "navigate", URL: out.Navigate})
	}
}

// reply queues a frame for one client only
func (h *Hub) reply(c *client, m Message) {
	frame, err := json.Marshal(m)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- frame:
	default:
	}
}

// writeLoop drains the send queue and keeps the connection alive
func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
