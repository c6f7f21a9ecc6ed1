package relay

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Leopold1975/signage_control/internal/pkg/config"
	"github.com/Leopold1975/signage_control/pkg/logger"
	"github.com/gorilla/websocket"
)

type envelope struct {
	from  *Conn
	frame []byte
}

// Hub owns the registry of live connections. The registry is only mutated by
// the Run loop; mu guards reads from other goroutines.
type Hub struct {
	conns      map[string]*Conn
	mu         sync.RWMutex
	register   chan *Conn
	unregister chan *Conn
	broadcast  chan envelope
	done       chan struct{}
	upgrader   websocket.Upgrader
	sendBuffer int
	lg         logger.Logger
}

func NewHub(cfg config.Relay, lg logger.Logger) *Hub {
	sendBuffer := cfg.SendBuffer
	if sendBuffer <= 0 {
		sendBuffer = 256
	}

	h := &Hub{
		conns:      make(map[string]*Conn),
		register:   make(chan *Conn),
		unregister: make(chan *Conn),
		broadcast:  make(chan envelope, sendBuffer),
		done:       make(chan struct{}),
		sendBuffer: sendBuffer,
		lg:         lg,
	}

	h.upgrader = websocket.Upgrader{ //nolint:exhaustruct
		ReadBufferSize:   1024, //nolint:gomnd
		WriteBufferSize:  1024, //nolint:gomnd
		HandshakeTimeout: 10 * time.Second,
		CheckOrigin:      originChecker(cfg.AllowedOrigins),
	}

	return h
}

// Run processes connects, disconnects and broadcasts until ctx is done, then
// closes every connection.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()

			return ctx.Err() //nolint:wrapcheck
		case c := <-h.register:
			h.mu.Lock()
			h.conns[c.id] = c
			n := len(h.conns)
			h.mu.Unlock()

			h.lg.Infof("conn %s connected, %d live", c.id, n)
		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.conns[c.id]; ok {
				delete(h.conns, c.id)
				close(c.send)
			}
			n := len(h.conns)
			h.mu.Unlock()

			h.lg.Infof("conn %s disconnected, %d live", c.id, n)
		case e := <-h.broadcast:
			h.fanOut(e)
		}
	}
}

// ServeWS upgrades the request and registers the connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.lg.Warnf("upgrade error: %s", err.Error())

		return
	}

	c := newConn(h, ws)

	select {
	case h.register <- c:
	case <-h.done:
		_ = ws.Close()

		return
	}

	go c.writePump()
	go c.readPump()
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.conns)
}

// relay queues a frame for fan-out. It reports false once the hub has stopped.
func (h *Hub) relay(from *Conn, frame []byte) bool {
	select {
	case h.broadcast <- envelope{from: from, frame: frame}:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Conn) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) fanOut(e envelope) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, c := range h.conns {
		if c == e.from {
			continue
		}

		select {
		case c.send <- e.frame:
		default:
			h.lg.Warnf("conn %s outbound buffer full, frame dropped", id)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.conns {
		close(c.send)
		delete(h.conns, id)
	}

	h.lg.Info("relay hub stopped, all connections closed")
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}

		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}

		return false
	}
}
