// Package stream broadcasts a running match to websocket spectators and
// feeds their gestures back into it.
package stream

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	sendBuffer   = 64
	readTimeout  = 90 * time.Second
	writeTimeout = 10 * time.Second
	pingEvery    = 20 * time.Second
	maxMessage   = 64 << 10
)

type client struct {
	session string
	conn    *websocket.Conn
	send    chan []byte
}

// Command is a client request handed to the match loop.
type Command struct {
	Session string
	Msg     ClientEnvelope
}

// Hub tracks spectator connections. Broadcast never blocks: a client whose
// buffer is full misses that frame.
type Hub struct {
	log      *log.Logger
	codec    Codec
	matchID  string
	upgrader websocket.Upgrader
	commands chan Command
	welcome  func() ServerEnvelope

	mu      sync.RWMutex
	clients map[string]*client
}

// NewHub creates a hub for one match. welcome, if set, builds the first
// message each new client receives.
func NewHub(logger *log.Logger, codec Codec, matchID string, welcome func() ServerEnvelope) *Hub {
	return &Hub{
		log:     logger,
		codec:   codec,
		matchID: matchID,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		commands: make(chan Command, 256),
		welcome:  welcome,
		clients:  make(map[string]*client),
	}
}

// Commands is the queue of client requests for the match loop.
func (h *Hub) Commands() <-chan Command { return h.commands }

// ClientCount is the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and serves the client until it leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	c := &client{session: uuid.NewString(), conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(c)
	h.log.Info("client connected", "session", c.session, "remote", r.RemoteAddr, "codec", h.codec.Name())

	env := ServerEnvelope{Type: TypeWelcome, Message: "connected"}
	if h.welcome != nil {
		env = h.welcome()
		env.Type = TypeWelcome
	}
	env.Session = c.session
	env.Match = h.matchID
	h.sendTo(c, env)

	go h.writePump(c)
	h.readPump(c)
}

// Broadcast encodes env once and queues it for every client.
func (h *Hub) Broadcast(env ServerEnvelope) {
	env.Match = h.matchID
	payload, err := h.codec.Marshal(env)
	if err != nil {
		h.log.Error("marshal broadcast failed", "type", env.Type, "err", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- payload:
		default:
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
	}
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c.session)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessage)
	_ = c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Info("client disconnected", "session", c.session)
				return
			}
			h.log.Debug("read error", "session", c.session, "err", err)
			return
		}

		var in ClientEnvelope
		if err := h.codec.Unmarshal(msg, &in); err != nil {
			h.sendError(c, "bad_payload")
			continue
		}
		switch in.Type {
		case TypePing:
			h.sendTo(c, ServerEnvelope{Type: TypePong, ServerMS: time.Now().UTC().UnixMilli()})
		case TypeGesture, TypeReset, TypeAutoplay:
			select {
			case h.commands <- Command{Session: c.session, Msg: in}:
			default:
				h.sendError(c, "busy")
			}
		default:
			h.sendError(c, "unsupported_message_type")
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingEvery)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(h.codec.MessageType(), msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, []byte("keepalive")); err != nil {
				return
			}
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.session] = c
}

func (h *Hub) unregister(session string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[session]; ok {
		close(c.send)
		delete(h.clients, session)
	}
}

func (h *Hub) sendTo(c *client, env ServerEnvelope) {
	env.Match = h.matchID
	payload, err := h.codec.Marshal(env)
	if err != nil {
		h.log.Error("marshal failed", "type", env.Type, "err", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c.session]; !ok {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

// SendError tells one session its request failed.
func (h *Hub) SendError(session, message string) {
	h.mu.RLock()
	c, ok := h.clients[session]
	h.mu.RUnlock()
	if ok {
		h.sendError(c, message)
	}
}

func (h *Hub) sendError(c *client, message string) {
	h.sendTo(c, ServerEnvelope{Type: TypeError, Message: message})
}
