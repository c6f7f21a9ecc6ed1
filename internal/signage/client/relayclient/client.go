// Package relayclient is the client side of the sync relay: one websocket
// connection with bounded reconnects and per-event listeners.
package relayclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Leopold1975/signage_control/internal/pkg/config"
	"github.com/Leopold1975/signage_control/pkg/logger"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

var (
	ErrNotConnected    = errors.New("relay not connected")
	ErrReconnectFailed = errors.New("relay reconnect attempts exhausted")
)

// Handler receives the raw data of an event.
type Handler func(data []byte)

type listener struct {
	id uint64
	h  Handler
}

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type outFrame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type Client struct {
	url      string
	dialer   *websocket.Dialer
	attempts int
	delay    time.Duration
	lg       logger.Logger

	mu           sync.RWMutex
	ws           *websocket.Conn
	listeners    map[string][]listener
	nextID       uint64
	onConnect    func()
	onDisconnect func()
	onError      func(error)

	writeMu   sync.Mutex
	closed    chan struct{}
	closeOnce sync.Once
}

func New(cfg config.Client, lg logger.Logger) *Client {
	return &Client{
		url: strings.TrimRight(cfg.RelayURL, "/") + cfg.RelayPath,
		dialer: &websocket.Dialer{ //nolint:exhaustruct
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: 10 * time.Second, //nolint:gomnd
		},
		attempts:  cfg.ReconnectAttempts,
		delay:     cfg.ReconnectDelay,
		lg:        lg,
		listeners: make(map[string][]listener),
		closed:    make(chan struct{}),
	}
}

// Run keeps the connection alive until ctx is done or Close is called. After
// a loss it retries up to the configured number of attempts with a fixed
// delay; a successful reconnect resets the count. When attempts run out Run
// returns ErrReconnectFailed and the client stays disconnected.
func (c *Client) Run(ctx context.Context) error {
	retries := 0

	for {
		ws, resp, err := c.dialer.DialContext(ctx, c.url, nil)
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}

		if err == nil {
			retries = 0

			c.serve(ctx, ws)
		} else if !c.stopped(ctx) {
			c.reportError(fmt.Errorf("dial %s error: %w", c.url, err))
		}

		if c.stopped(ctx) {
			return ctx.Err() //nolint:wrapcheck
		}

		if retries >= c.attempts {
			c.lg.Errorf("relay %s unreachable after %d attempts", c.url, retries)

			return ErrReconnectFailed
		}

		retries++

		c.lg.Infof("relay reconnect attempt %d/%d in %s", retries, c.attempts, c.delay)

		select {
		case <-ctx.Done():
			return ctx.Err() //nolint:wrapcheck
		case <-c.closed:
			return nil
		case <-time.After(c.delay):
		}
	}
}

// On registers h for event. Handlers run on the read goroutine in frame
// arrival order. The returned func removes the registration.
func (c *Client) On(event string, h Handler) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.listeners[event] = append(c.listeners[event], listener{id: id, h: h})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		ls := c.listeners[event]
		for i, l := range ls {
			if l.id == id {
				c.listeners[event] = append(ls[:i:i], ls[i+1:]...)

				break
			}
		}

		if len(c.listeners[event]) == 0 {
			delete(c.listeners, event)
		}
	}
}

// Emit sends one frame. The relay never echoes it back to this client.
func (c *Client) Emit(event string, data interface{}) error {
	c.mu.RLock()
	ws := c.ws
	c.mu.RUnlock()

	if ws == nil {
		return ErrNotConnected
	}

	b, err := json.Marshal(outFrame{Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("marshal frame error: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("set write deadline error: %w", err)
	}

	if err := ws.WriteMessage(websocket.TextMessage, b); err != nil {
		return fmt.Errorf("write frame error: %w", err)
	}

	return nil
}

func (c *Client) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.ws != nil
}

func (c *Client) OnConnect(fn func()) {
	c.mu.Lock()
	c.onConnect = fn
	c.mu.Unlock()
}

func (c *Client) OnDisconnect(fn func()) {
	c.mu.Lock()
	c.onDisconnect = fn
	c.mu.Unlock()
}

func (c *Client) OnError(fn func(error)) {
	c.mu.Lock()
	c.onError = fn
	c.mu.Unlock()
}

// Close stops Run and drops the live connection, if any.
func (c *Client) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })

	c.mu.RLock()
	ws := c.ws
	c.mu.RUnlock()

	if ws == nil {
		return nil
	}

	c.writeMu.Lock()
	_ = ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	c.writeMu.Unlock()

	if err := ws.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("close error: %w", err)
	}

	return nil
}

func (c *Client) serve(ctx context.Context, ws *websocket.Conn) {
	c.mu.Lock()
	c.ws = ws
	onConnect := c.onConnect
	c.mu.Unlock()

	c.lg.Infof("relay %s connected", c.url)

	if onConnect != nil {
		onConnect()
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
		case <-c.closed:
		case <-done:
			return
		}

		_ = ws.Close()
	}()

	err := c.readLoop(ws)

	c.mu.Lock()
	c.ws = nil
	onDisconnect := c.onDisconnect
	c.mu.Unlock()

	_ = ws.Close()

	c.lg.Warnf("relay %s disconnected", c.url)

	if onDisconnect != nil {
		onDisconnect()
	}

	if !c.stopped(ctx) {
		c.reportError(err)
	}
}

func (c *Client) readLoop(ws *websocket.Conn) error {
	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			return fmt.Errorf("read error: %w", err)
		}

		var f frame
		if err := json.Unmarshal(msg, &f); err != nil || f.Event == "" {
			c.lg.Warnf("relay sent a bad frame, skipped")

			continue
		}

		c.dispatch(f)
	}
}

func (c *Client) dispatch(f frame) {
	c.mu.RLock()
	ls := make([]listener, len(c.listeners[f.Event]))
	copy(ls, c.listeners[f.Event])
	c.mu.RUnlock()

	for _, l := range ls {
		l.h(f.Data)
	}
}

func (c *Client) reportError(err error) {
	c.mu.RLock()
	onError := c.onError
	c.mu.RUnlock()

	c.lg.Warnf("relay error: %s", err.Error())

	if onError != nil {
		onError(err)
	}
}

func (c *Client) stopped(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}

	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}
