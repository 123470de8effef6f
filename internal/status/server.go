// Package status exposes the active contact set and a live stream of
// emitted pointer actions over HTTP.
package status

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/frudas24/tuiomouse/internal/control"
)

const (
	clientQueueSize = 64
	writeTimeout    = 2 * time.Second
)

// ContactSource returns a snapshot of the active contacts.
type ContactSource func() []control.Contact

// Server serves contact snapshots and websocket action streams.
type Server struct {
	mu       sync.Mutex
	upgrader websocket.Upgrader
	contacts ContactSource
	logger   zerolog.Logger
	clients  map[*client]struct{}
}

type client struct {
	conn  *websocket.Conn
	queue chan control.Action
	done  chan struct{}
	once  sync.Once
}

// NewServer creates a status server reading contacts from source.
func NewServer(source ContactSource, logger zerolog.Logger) *Server {
	return &Server{
		contacts: source,
		logger:   logger.With().Str("module", "status").Logger(),
		clients:  make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// RegisterRoutes wires the status handlers onto the mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/contacts", s.handleContacts)
	mux.HandleFunc("/ws/actions", s.handleActions)
}

// Publish queues an action for every connected client without blocking.
func (s *Server) Publish(action control.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.queue <- action:
		default:
			s.logger.Debug().Str("remote", c.conn.RemoteAddr().String()).Msg("client queue full, dropping action")
		}
	}
}

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Close disconnects every websocket client.
func (s *Server) Close() {
	s.mu.Lock()
	list := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		list = append(list, c)
	}
	s.mu.Unlock()
	for _, c := range list {
		s.drop(c)
	}
}

// handleContacts returns the active contacts in arrival order.
func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	contacts := s.contacts()
	if contacts == nil {
		contacts = []control.Contact{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(contacts)
}

// handleActions upgrades the connection and streams actions until it closes.
func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{
		conn:  conn,
		queue: make(chan control.Action, clientQueueSize),
		done:  make(chan struct{}),
	}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	s.logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("action stream connected")

	go s.writeLoop(c)

	// Reads only detect disconnects; clients send nothing.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.drop(c)
			return
		}
	}
}

// writeLoop forwards queued actions to the websocket.
func (s *Server) writeLoop(c *client) {
	for {
		select {
		case <-c.done:
			return
		case action := <-c.queue:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteJSON(action); err != nil {
				s.drop(c)
				return
			}
		}
	}
}

// drop unregisters and closes a client once.
func (s *Server) drop(c *client) {
	c.once.Do(func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		close(c.done)
		_ = c.conn.Close()
		s.logger.Debug().Str("remote", c.conn.RemoteAddr().String()).Msg("action stream closed")
	})
}
