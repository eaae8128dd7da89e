package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/fashionshop/internal/usecase"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	// local console only
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsMessage struct {
	Type     string                `json:"type"`
	Snapshot *usecase.PollSnapshot `json:"snapshot,omitempty"`
	Error    string                `json:"error,omitempty"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans poller events out to every connected dashboard. Slow clients lose
// messages instead of blocking the poller.
type Hub struct {
	poller *usecase.Poller

	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

func NewHub(p *usecase.Poller) *Hub {
	return &Hub{poller: p, clients: map[*wsClient]struct{}{}}
}

func (h *Hub) OnSnapshot(s usecase.PollSnapshot) {
	h.broadcast(wsMessage{Type: "snapshot", Snapshot: &s})
}

func (h *Hub) OnError(err error) {
	h.broadcast(wsMessage{Type: "error", Error: err.Error()})
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) broadcast(m wsMessage) {
	data, err := json.Marshal(m)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			log.Debug().Msg("cliente ws lento, mensaje descartado")
		}
	}
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("upgrade ws")
		return
	}
	c := &wsClient{conn: conn, send: make(chan []byte, sendBuffer)}

	if h.poller != nil {
		snap := h.poller.Snapshot()
		if data, err := json.Marshal(wsMessage{Type: "snapshot", Snapshot: &snap}); err == nil {
			c.send <- data
		}
	}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	log.Debug().Str("remote", r.RemoteAddr).Int("clients", h.Clients()).Msg("cliente ws conectado")

	go h.writeLoop(c)
	// reads only detect the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.mu.Lock()
	delete(h.clients, c)
	close(c.send)
	h.mu.Unlock()
	log.Debug().Str("remote", r.RemoteAddr).Int("clients", h.Clients()).Msg("cliente ws desconectado")
}

func (h *Hub) writeLoop(c *wsClient) {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
