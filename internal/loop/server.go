package loop

import (
	"sort"
	"sync"
	"time"

	"github.com/tomz197/rockfall/internal/loop/config"
)

// Lobby tracks the sessions connected to a multi-session host. Each session
// runs its own Game; the lobby only knows who is connected and tells them
// when the host is going down.
type Lobby struct {
	mu       sync.RWMutex
	sessions map[int]*Session
	nextID   int

	shutdown     chan struct{}
	shutdownOnce sync.Once
}

// Session is one connected player.
type Session struct {
	ID       int
	Username string
	Joined   time.Time

	lobby *Lobby
}

// NewLobby creates an empty lobby.
func NewLobby() *Lobby {
	return &Lobby{
		sessions: make(map[int]*Session),
		nextID:   1,
		shutdown: make(chan struct{}),
	}
}

// Join registers a session for username and returns it.
func (l *Lobby) Join(username string) *Session {
	if len(username) > config.MaxUsernameLength {
		username = username[:config.MaxUsernameLength]
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	s := &Session{
		ID:       l.nextID,
		Username: username,
		Joined:   time.Now(),
		lobby:    l,
	}
	l.nextID++
	l.sessions[s.ID] = s
	return s
}

// Leave unregisters the session. Calling it twice is harmless.
func (s *Session) Leave() {
	l := s.lobby
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.sessions, s.ID)
}

// Count returns the number of connected sessions.
func (l *Lobby) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sessions)
}

// Usernames returns the connected usernames ordered by join order.
func (l *Lobby) Usernames() []string {
	l.mu.RLock()
	sessions := make([]*Session, 0, len(l.sessions))
	for _, s := range l.sessions {
		sessions = append(sessions, s)
	}
	l.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID < sessions[j].ID })
	names := make([]string, len(sessions))
	for i, s := range sessions {
		names[i] = s.Username
	}
	return names
}

// ShuttingDown is closed once Shutdown has been called.
func (l *Lobby) ShuttingDown() <-chan struct{} { return l.shutdown }

// Shutdown notifies every session and waits for all of them to leave, or for
// timeout. It returns the number of sessions still connected.
func (l *Lobby) Shutdown(timeout time.Duration) int {
	l.shutdownOnce.Do(func() { close(l.shutdown) })

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if n := l.Count(); n == 0 {
			return 0
		}
		select {
		case <-deadline:
			return l.Count()
		case <-ticker.C:
		}
	}
}
