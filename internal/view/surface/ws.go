package surface

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/idilsaglam/todo-sidebar/internal/protocol"
)

const (
	maxFrame     = 64 * 1024
	sendQueue    = 16
	writeTimeout = 10 * time.Second
	pingInterval = 25 * time.Second
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  4 * 1024,
	WriteBufferSize: 4 * 1024,
	CheckOrigin:     sameOrigin,
}

// sameOrigin accepts requests without an Origin header (non-browser clients)
// and browser requests whose Origin host:port equals the request Host.
func sameOrigin(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return strings.EqualFold(u.Host, strings.TrimSpace(r.Host))
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// enqueue never blocks; a full queue drops the frame and the next full-list
// broadcast brings the surface back in sync.
func (c *client) enqueue(b []byte) {
	select {
	case c.send <- b:
	default:
	}
}

type hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	badge   []byte
}

func newHub() *hub {
	return &hub{clients: map[*client]struct{}{}}
}

func (h *hub) register(c *client) (cancel func()) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.badge != nil {
		c.enqueue(h.badge)
	}
	h.mu.Unlock()
	return func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
	}
}

func (h *hub) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *hub) broadcast(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	h.mu.Lock()
	for c := range h.clients {
		c.enqueue(b)
	}
	h.mu.Unlock()
}

func (h *hub) setBadge(v protocol.BadgeMessage) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.badge = b
	for c := range h.clients {
		c.enqueue(b)
	}
	h.mu.Unlock()
}

func (h *hub) closeAll() {
	h.mu.Lock()
	for c := range h.clients {
		_ = c.conn.Close()
	}
	h.mu.Unlock()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxFrame)

	c := &client{conn: conn, send: make(chan []byte, sendQueue)}
	unregister := s.hub.register(c)
	defer unregister()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.writeLoop(c, stop)
	}()
	defer wg.Wait()
	defer close(stop)

	s.log.Debug("surface connected", "remote", r.RemoteAddr)
	reply := func(v any) {
		b, err := json.Marshal(v)
		if err != nil {
			s.log.Error("encode reply", "err", err)
			return
		}
		c.enqueue(b)
	}
	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			s.log.Debug("surface disconnected", "remote", r.RemoteAddr, "err", err)
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		in, err := protocol.Decode(data)
		if err != nil {
			s.log.Warn("dropping message", "err", err)
			continue
		}
		s.disp.Dispatch(in, reply)
	}
}

func (s *Server) writeLoop(c *client, stop <-chan struct{}) {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	for {
		select {
		case <-stop:
			return
		case b := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				_ = c.conn.Close()
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				_ = c.conn.Close()
				return
			}
		}
	}
}
