// Package chat keeps one live model conversation per project.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/PabloGalante/planforge/internal/domain"
	"github.com/PabloGalante/planforge/internal/observability"
)

const (
	DefaultTTL           = 30 * time.Minute
	DefaultSweepInterval = 10 * time.Minute
)

type entry struct {
	session        domain.ChatSession
	projectID      domain.ProjectID
	userID         domain.UserID
	createdAt      time.Time
	lastReferenced time.Time
}

// Manager owns the chat sessions keyed by project. A background sweeper
// drops sessions idle for longer than the TTL until Close is called.
//
// Two concurrent Create calls for the same project race; the last one wins
// and the other session is orphaned.
type Manager struct {
	model domain.ChatModel

	mu       sync.Mutex
	sessions map[domain.ProjectID]*entry

	ttl           time.Duration
	sweepInterval time.Duration
	now           func() time.Time
	log           *slog.Logger

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

type Option func(*Manager)

func WithTTL(d time.Duration) Option {
	return func(m *Manager) { m.ttl = d }
}

func WithSweepInterval(d time.Duration) Option {
	return func(m *Manager) { m.sweepInterval = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// NewManager creates the manager and starts its sweeper. model may be nil
// when no provider is configured; Create then fails with ErrAIUnavailable.
func NewManager(model domain.ChatModel, opts ...Option) *Manager {
	m := &Manager{
		model:         model,
		sessions:      make(map[domain.ProjectID]*entry),
		ttl:           DefaultTTL,
		sweepInterval: DefaultSweepInterval,
		now:           time.Now,
		log:           observability.Logger(),
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.sweepInterval <= 0 {
		m.sweepInterval = DefaultSweepInterval
	}

	go m.sweepLoop()
	return m
}

// Create starts a fresh conversation for the project, replacing any
// existing one.
func (m *Manager) Create(ctx context.Context, projectID domain.ProjectID, userID domain.UserID) (domain.ChatSession, error) {
	if m.model == nil {
		return nil, domain.ErrAIUnavailable
	}

	session, err := m.model.StartChat(ctx)
	if err != nil {
		return nil, fmt.Errorf("start chat: %w", err)
	}

	now := m.now()

	m.mu.Lock()
	m.sessions[projectID] = &entry{
		session:        session,
		projectID:      projectID,
		userID:         userID,
		createdAt:      now,
		lastReferenced: now,
	}
	m.mu.Unlock()

	m.log.Info("chat session created", "project_id", projectID, "user_id", userID)
	return session, nil
}

// Get returns the live session for the project. An expired session is
// removed and reported as absent.
func (m *Manager) Get(projectID domain.ProjectID) (domain.ChatSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[projectID]
	if !ok {
		return nil, false
	}

	now := m.now()
	if now.Sub(e.lastReferenced) > m.ttl {
		delete(m.sessions, projectID)
		m.log.Info("chat session expired", "project_id", projectID)
		return nil, false
	}

	e.lastReferenced = now
	return e.session, true
}

// Remove deletes the project's session. Removing an absent session is a no-op.
func (m *Manager) Remove(projectID domain.ProjectID) {
	m.mu.Lock()
	delete(m.sessions, projectID)
	m.mu.Unlock()

	m.log.Info("chat session removed", "project_id", projectID)
}

// Sweep drops every session idle for longer than the TTL and returns how
// many were dropped.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	cleaned := 0
	for id, e := range m.sessions {
		if now.Sub(e.lastReferenced) > m.ttl {
			delete(m.sessions, id)
			cleaned++
		}
	}

	if cleaned > 0 {
		m.log.Info("cleaned up expired chat sessions", "count", cleaned, "remaining", len(m.sessions))
	}
	return cleaned
}

// Len reports the number of stored sessions, expired or not.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close stops the sweeper and waits for it to exit. It is safe to call
// more than once.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.stop)
	})
	<-m.done
}

func (m *Manager) sweepLoop() {
	defer close(m.done)

	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}
