// Package events streams every store version to browsers over a websocket.
package events

import (
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/MrJamesThe3rd/sapataria/internal/http/response"
	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Clients only send control frames.
	maxMessageSize = 512
)

type Handler struct {
	store    *inventory.Store
	upgrader websocket.Upgrader
}

// NewHandler accepts connections from the given origins and from the API's own host.
func NewHandler(store *inventory.Store, allowedOrigins []string) *Handler {
	return &Handler{
		store: store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || slices.Contains(allowedOrigins, origin) {
					return true
				}

				u, err := url.Parse(origin)

				return err == nil && u.Host == r.Host
			},
		},
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.serve)
}

// client queues snapshots for one connection so the store never waits on the network.
type client struct {
	conn *websocket.Conn

	mu    sync.Mutex
	queue []inventory.Snapshot
	wake  chan struct{}
}

func (c *client) push(s inventory.Snapshot) {
	c.mu.Lock()
	c.queue = append(c.queue, s)
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *client) drain() []inventory.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.queue
	c.queue = nil

	return out
}

// serve sends the current snapshot, then every later one in version order until the peer leaves.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	c := &client{conn: conn, wake: make(chan struct{}, 1)}

	current, unsubscribe := h.store.Subscribe(c.push)
	defer unsubscribe()

	done := make(chan struct{})
	go c.readPump(done)

	if err := c.write(current); err != nil {
		return
	}

	c.writePump(done)
}

// readPump discards client messages and keeps the read deadline alive on pongs.
func (c *client) readPump(done chan<- struct{}) {
	defer close(done)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("websocket closed", "error", err)
			}

			return
		}
	}
}

func (c *client) writePump(done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-c.wake:
			for _, snap := range c.drain() {
				if err := c.write(snap); err != nil {
					return
				}
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) write(snap inventory.Snapshot) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := c.conn.WriteJSON(response.FromSnapshot(snap)); err != nil {
		slog.Debug("websocket write failed", "version", snap.Version, "error", err)
		return err
	}

	return nil
}
