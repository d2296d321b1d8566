package game

import (
	"sync"
	"time"
)

// EventType identifies an event sent from the server to a session.
type EventType int

const (
	EventServerShutdown EventType = iota
)

// Event is sent from the server to a session.
type Event struct {
	Type EventType
}

// Handle is a session's registration with the server.
type Handle struct {
	ID       int
	Username string
	EventsCh chan Event
}

// Server tracks the running sessions of a process so it can shut down
// gracefully. Matches share no state; the server only counts and notifies
// them.
type Server struct {
	mu           sync.RWMutex
	sessions     map[int]*Handle
	nextClientID int
}

// NewServer creates an empty session registry.
func NewServer() *Server {
	return &Server{
		sessions:     make(map[int]*Handle),
		nextClientID: 1,
	}
}

// RegisterClient registers a new session with the given username and
// returns its handle.
func (s *Server) RegisterClient(username string) *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := &Handle{
		ID:       s.nextClientID,
		Username: username,
		EventsCh: make(chan Event, 16),
	}
	s.nextClientID++
	s.sessions[h.ID] = h
	return h
}

// UnregisterClient removes a session.
func (s *Server) UnregisterClient(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Count returns the number of registered sessions.
func (s *Server) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Shutdown notifies every session and waits until all have unregistered or
// timeout elapses.
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected sessions about the shutdown
	s.mu.RLock()
	for _, h := range s.sessions {
		select {
		case h.EventsCh <- Event{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all sessions to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if s.Count() == 0 {
			return
		}
		select {
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}
