package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"guess-the-guild/internal/core/domain"
	"guess-the-guild/internal/core/ports"
	"guess-the-guild/internal/core/services/score"
)

type Dependencies struct {
	Store     ports.KeyValueStore
	Rounds    RoundSource
	Scheduler Scheduler
	Notifier  ports.Notifier
	Config    Config
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Manager owns one Session per player.
type Manager struct {
	deps Dependencies

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(deps Dependencies) *Manager {
	if deps.Scheduler == nil {
		deps.Scheduler = NewTimerScheduler()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &Manager{
		deps:     deps,
		sessions: make(map[string]*Session),
	}
}

// Session returns the player's session, restoring the saved score on first use.
// Handing a session out counts as activity, so the janitor cannot evict it
// while the caller is still using it.
func (m *Manager) Session(ctx context.Context, playerID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[playerID]; ok {
		s.touch()
		return s
	}

	tracker := score.NewTracker(score.NewIntStore(m.deps.Store, score.PlayerNamespace(playerID)))
	state := tracker.Restore(ctx)
	slog.Info("Session created", "player", playerID, "score", state.Current, "record", state.Record)

	s := newSession(playerID, tracker, m.deps)
	m.sessions[playerID] = s
	return s
}

func (m *Manager) lookup(playerID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[playerID]
	return s, ok
}

// acquire returns an existing session and marks it active.
func (m *Manager) acquire(playerID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[playerID]
	if ok {
		s.touch()
	}
	return s, ok
}

func (m *Manager) Play(ctx context.Context, playerID string, difficulty domain.Difficulty) domain.Snapshot {
	return m.Session(ctx, playerID).Play(ctx, difficulty)
}

func (m *Manager) Guess(ctx context.Context, playerID, roundID string, guildID int) (domain.Snapshot, error) {
	s, ok := m.acquire(playerID)
	if !ok {
		return domain.Snapshot{PlayerID: playerID}, ErrNoRoundsStarted
	}
	return s.Guess(ctx, roundID, guildID)
}

func (m *Manager) Retry(ctx context.Context, playerID, roundID string) (domain.Snapshot, error) {
	s, ok := m.acquire(playerID)
	if !ok {
		return domain.Snapshot{PlayerID: playerID}, ErrNoRoundsStarted
	}
	return s.Retry(ctx, roundID)
}

// Scores returns the player's score, loading it from the store when the
// player has not played since startup.
func (m *Manager) Scores(ctx context.Context, playerID string) domain.ScoreState {
	if s, ok := m.lookup(playerID); ok {
		return s.Scores()
	}
	tracker := score.NewTracker(score.NewIntStore(m.deps.Store, score.PlayerNamespace(playerID)))
	return tracker.Restore(ctx)
}

// EvictIdle drops sessions without activity for longer than maxIdle, cancels
// their deferred work and returns the evicted player IDs. Scores stay in the store.
func (m *Manager) EvictIdle(maxIdle time.Duration) []string {
	cutoff := m.deps.Clock().Add(-maxIdle)

	var evicted []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.lastActive().Before(cutoff) {
			delete(m.sessions, id)
			evicted = append(evicted, s)
		}
	}
	m.mu.Unlock()

	ids := make([]string, 0, len(evicted))
	for _, s := range evicted {
		s.cancelPending()
		ids = append(ids, s.playerID)
	}
	return ids
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close cancels all pending deferred work.
func (m *Manager) Close() {
	m.deps.Scheduler.Stop()
}
