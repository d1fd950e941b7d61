// Package progress is an optional local websocket feed a long-running CLI
// solve can start so any connected client sees periodic resources.Tracker
// snapshots instead of a silent terminal until completion.
package progress

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/herohde/ichess/internal/resources"
	"github.com/herohde/ichess/internal/scenario"
	"github.com/seekerror/logw"
)

// Snapshot is one broadcast frame: the running resource counts plus a
// free-form stage label naming what the solver is doing right now.
type Snapshot struct {
	Stage  string                 `json:"stage"`
	Counts scenario.ResourceCounts `json:"counts"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Progress is a localhost developer feed, not a public endpoint; any
	// origin is fine.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server broadcasts Snapshot frames to every connected websocket client.
type Server struct {
	addr string

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}

	httpServer *http.Server
}

// NewServer builds a progress server bound to addr (e.g. "127.0.0.1:8765").
// It does not start listening until Serve is called.
func NewServer(addr string) *Server {
	return &Server{addr: addr, clients: make(map[*websocket.Conn]struct{})}
}

// Handler returns the server's /progress websocket endpoint as a plain
// http.Handler, so it can be mounted on a caller-owned http.Server or driven
// directly by httptest in tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/progress", s.handleConn)
	return mux
}

// Serve starts listening until ctx is cancelled. It always returns a non-nil
// error (http.ErrServerClosed on a clean shutdown).
func (s *Server) Serve(ctx context.Context) error {
	s.httpServer = &http.Server{Addr: s.addr, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		_ = s.httpServer.Close()
	}()

	logw.Infof(ctx, "progress: listening on ws://%s/progress", s.addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) handleConn(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logw.Errorf(r.Context(), "progress: upgrade failed: %v", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	// Drain and discard anything the client sends; this is a push-only feed,
	// but the read loop is what notices the connection has closed.
	go func() {
		defer s.removeClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) removeClient(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	_ = conn.Close()
}

// Broadcast sends snap as JSON to every currently connected client, dropping
// (and closing) any client whose write fails rather than letting one slow
// consumer block the solver.
func (s *Server) Broadcast(snap Snapshot) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	payload, err := json.Marshal(snap)
	if err != nil {
		return
	}

	for _, c := range conns {
		c.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			s.removeClient(c)
		}
	}
}

// BroadcastTracker is a convenience wrapper for solver loops that already
// hold a *resources.Tracker: it reads the current counts and broadcasts them
// under the given stage label.
func (s *Server) BroadcastTracker(stage string, tracker *resources.Tracker) {
	s.Broadcast(Snapshot{Stage: stage, Counts: tracker.Counts()})
}
