// Package devserver serves the demo bundle used to exercise the
// reactive runtime in a browser and pushes a hot-reload signal over a
// WebSocket connection. Routing is grounded on the teacher's
// cmd/vango/dev.go (a chi router mounting a static handler plus a
// reload endpoint); the WebSocket channel itself is adapted from the
// teacher's internal/dev/reload.go ReloadServer, trimmed to the subset
// this module needs — a connected browser only ever receives "reload",
// never a reactive-graph introspection payload, which keeps this well
// inside the spec's explicit "no devtools protocol" boundary.
package devserver

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReloadServer manages WebSocket connections that want a hot-reload
// signal, adapted from the teacher's internal/dev/reload.go.
type ReloadServer struct {
	mu       sync.RWMutex
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader
}

// NewReloadServer builds a ReloadServer ready to accept connections.
func NewReloadServer() *ReloadServer {
	return &ReloadServer{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// HandleWebSocket upgrades req and holds the connection open until the
// client disconnects.
func (r *ReloadServer) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	r.mu.Lock()
	r.clients[conn] = true
	r.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	r.mu.Lock()
	delete(r.clients, conn)
	r.mu.Unlock()
	conn.Close()
}

// NotifyReload pushes a full-page reload to every connected client.
func (r *ReloadServer) NotifyReload() {
	r.broadcast(reloadMessage{Type: "reload"})
}

// ClientCount reports how many clients are currently connected.
func (r *ReloadServer) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Close disconnects every client.
func (r *ReloadServer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for client := range r.clients {
		client.Close()
		delete(r.clients, client)
	}
}

type reloadMessage struct {
	Type string `json:"type"`
}

func (r *ReloadServer) broadcast(msg reloadMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	r.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(r.clients))
	for c := range r.clients {
		clients = append(clients, c)
	}
	r.mu.RUnlock()

	for _, c := range clients {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			r.mu.Lock()
			delete(r.clients, c)
			r.mu.Unlock()
			c.Close()
		}
	}
}

// Server is the demo dev server: a static bundle, a /ws hot-reload
// channel, and a /metrics Prometheus endpoint.
type Server struct {
	Reload *ReloadServer
	router chi.Router
}

// New builds a Server that serves static files from bundleDir.
func New(bundleDir string) *Server {
	s := &Server{Reload: NewReloadServer()}

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", s.Reload.HandleWebSocket)
	r.Handle("/*", http.FileServer(http.Dir(bundleDir)))
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}
