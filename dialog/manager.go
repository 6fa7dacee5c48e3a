package dialog

import (
	"context"
	"sync"
	"time"

	"github.com/jvjruiz/schedule-bot/bot"
	l "github.com/jvjruiz/schedule-bot/logger"
)

// Manager owns the live sessions, keyed by conversation. It serializes turns
// within a conversation while letting distinct conversations proceed
// concurrently, and it expires sessions abandoned mid-dialog so a user who
// walks away from the OAuth redirect doesn't leak a suspended session.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*managedSession
	ttl      time.Duration
	logger   l.Logger
	now      func() time.Time
}

type managedSession struct {
	mu      sync.Mutex
	session *Session
	// removed marks a session the sweeper deleted from the map. A turn that
	// looked the entry up before removal must not resurrect it.
	removed bool
}

func NewManager(ttl time.Duration, logger l.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*managedSession),
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// sessionKey scopes conversations per channel; conversation IDs are only
// unique within a channel.
func sessionKey(addr bot.ConversationAddress) string {
	return addr.ChannelID + "/" + addr.Conversation.ID
}

// Do runs fn with the conversation's session under its lock, creating the
// session on first contact. One turn (or one callback resume) completes
// before the next is admitted for the same conversation.
func (m *Manager) Do(addr bot.ConversationAddress, fn func(*Session)) {
	key := sessionKey(addr)

	for {
		m.mu.Lock()
		ms, ok := m.sessions[key]
		if !ok {
			ms = &managedSession{session: &Session{
				Address:   addr,
				State:     StateDefault,
				UpdatedAt: m.now(),
			}}
			m.sessions[key] = ms
		}
		m.mu.Unlock()

		ms.mu.Lock()
		if ms.removed {
			// The sweeper won the race between our lookup and this lock;
			// the entry is gone from the map, so start over with a fresh one.
			ms.mu.Unlock()
			continue
		}
		// Keep the freshest address; service URLs can change between turns.
		ms.session.Address = addr
		fn(ms.session)
		ms.session.UpdatedAt = m.now()
		ms.mu.Unlock()
		return
	}
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops sessions idle longer than the TTL and reports how many were
// removed. Expiry discards the whole session including credentials, so the
// next message starts from the login dialog again. UpdatedAt is only read
// under the session lock; a session whose lock is held is mid-turn and
// therefore live, so it is skipped rather than waited on.
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for key, ms := range m.sessions {
		if !ms.mu.TryLock() {
			continue
		}
		if ms.session.UpdatedAt.Before(cutoff) {
			ms.removed = true
			delete(m.sessions, key)
			removed++
		}
		ms.mu.Unlock()
	}
	if removed > 0 {
		m.logger.Info("expired idle sessions", "count", removed)
	}
	return removed
}

// Run sweeps on the interval until the context ends.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}
