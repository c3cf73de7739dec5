/*
Package game contains the core logic of the emote guessing server: the session
registry of connected users, the room directory and round state machine, the
deterministic emote sequencer, round timers, and message fan-out.

This file defines the Session Registry, the live mapping from user id to
connected session. Many operations read it concurrently (broadcasts resolve
ids to outbound sinks); connects and disconnects write it.
*/
package game

import (
	"sync"

	"github.com/rs/zerolog"

	"emoteguessr/internal/pkg/logx"
	"emoteguessr/internal/pkg/randx"
)

// sendChannelBuffer is the per-session outbound queue size.
const sendChannelBuffer = 256

// Session represents a connected, authenticated user: the server-assigned id,
// the display name taken from the verified claim, and the outbound sink the
// write pump drains.
type Session struct {
	// ID is the opaque unique user id generated at connection time.
	ID string

	// Name is the display name from the verified identity claim.
	Name string

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

// Outbound exposes the session's outbound queue for the connection write pump.
func (s *Session) Outbound() <-chan []byte {
	return s.send
}

// enqueue offers a payload to the outbound queue. It reports false when the
// session is closed or the queue is full; a slow consumer loses messages
// rather than blocking the sender.
func (s *Session) enqueue(payload []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.send <- payload:
		return true
	default:
		return false
	}
}

// close makes the session drop all future sends and closes the outbound
// queue, which terminates the write pump.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.send)
	}
}

// Registry is the live mapping from user id to connected Session.
type Registry struct {
	// mu protects concurrent access to the sessions map.
	mu sync.RWMutex

	sessions map[string]*Session

	logger zerolog.Logger
}

// NewRegistry constructs an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		logger:   logx.Logger().With().Str("component", "Registry").Logger(),
	}
}

// Register creates a session for a freshly authenticated connection and
// returns it. Registration always succeeds; the generated id is unique.
func (r *Registry) Register(displayName string) *Session {
	session := &Session{
		ID:   randx.UserID(),
		Name: displayName,
		send: make(chan []byte, sendChannelBuffer),
	}

	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()

	r.logger.Info().
		Str("user_id", session.ID).
		Str("display_name", displayName).
		Msg("User registered.")

	return session
}

// Exists reports whether the user id belongs to a connected session.
func (r *Registry) Exists(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.sessions[userID]
	return ok
}

// Send delivers a payload to one user, best-effort. An absent recipient is a
// silent no-op: a disconnected recipient is not a failure of the sender.
func (r *Registry) Send(userID string, payload []byte) {
	r.mu.RLock()
	session, ok := r.sessions[userID]
	r.mu.RUnlock()

	if !ok {
		return
	}

	if !session.enqueue(payload) {
		r.logger.Warn().
			Str("user_id", userID).
			Msg("Session send queue full or closed, dropping message.")
	}
}

// Remove drops a session from the registry and closes its outbound queue.
// Removing an unknown id is a no-op.
func (r *Registry) Remove(userID string) {
	r.mu.Lock()
	session, ok := r.sessions[userID]
	if ok {
		delete(r.sessions, userID)
	}
	r.mu.Unlock()

	if !ok {
		return
	}

	session.close()

	r.logger.Info().Str("user_id", userID).Msg("User removed.")
}

// DisplayName resolves a user id to its display name.
func (r *Registry) DisplayName(userID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[userID]
	if !ok {
		return "", false
	}
	return session.Name, true
}

// DisplayNames resolves a set of user ids to display names, skipping ids that
// are no longer connected.
func (r *Registry) DisplayNames(userIDs []string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if session, ok := r.sessions[id]; ok {
			names = append(names, session.Name)
		}
	}
	return names
}
