package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/nlui/studio/internal/observability"
)

// Message types pushed to preview clients.
const (
	MsgDocument  = "document"
	MsgTemplates = "templates"
	MsgPong      = "pong"
)

const (
	sendBuffer   = 16
	writeTimeout = 5 * time.Second
)

// Message is one frame on the live preview socket.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type hubClient struct {
	conn *websocket.Conn
	send chan Message
}

// Hub fans server events out to connected preview pages. Slow clients whose
// buffer fills are dropped.
type Hub struct {
	mu       sync.Mutex
	clients  map[*hubClient]struct{}
	snapshot func() []Message
	origins  []string
	log      *observability.Logger
}

// NewHub creates a hub. snapshot, when set, produces the messages a client
// receives right after connecting. Browsers may connect only from the serving
// host or from a host matching one of origins.
func NewHub(log *observability.Logger, snapshot func() []Message, origins ...string) *Hub {
	return &Hub{
		clients:  make(map[*hubClient]struct{}),
		snapshot: snapshot,
		origins:  origins,
		log:      observability.OrNop(log),
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues msg for every client without blocking.
func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.log.Warn("dropping slow websocket client")
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// ServeHTTP upgrades the request and runs the client until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		h.log.Warn("websocket accept", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := &hubClient{conn: conn, send: make(chan Message, sendBuffer)}
	if h.snapshot != nil {
		for _, m := range h.snapshot() {
			c.send <- m
		}
	}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Debug("websocket client connected", "clients", n)

	go h.readLoop(ctx, cancel, c)
	h.writeLoop(ctx, c)

	h.remove(c)
	h.log.Debug("websocket client disconnected")
	conn.Close(websocket.StatusNormalClosure, "")
}

func (h *Hub) writeLoop(ctx context.Context, c *hubClient) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(wctx, c.conn, msg)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

// readLoop answers pings and ends the session when the peer goes away.
func (h *Hub) readLoop(ctx context.Context, cancel context.CancelFunc, c *hubClient) {
	defer cancel()
	for {
		var in Message
		if err := wsjson.Read(ctx, c.conn, &in); err != nil {
			if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
				h.log.Debug("websocket read", "error", err)
			}
			return
		}
		if in.Type == "ping" {
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				select {
				case c.send <- Message{Type: MsgPong}:
				default:
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) remove(c *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}
