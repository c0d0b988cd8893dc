package game

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"guess-the-guild/internal/core/domain"
	"guess-the-guild/internal/core/ports"
	"guess-the-guild/internal/core/services/matching"
	"guess-the-guild/internal/core/services/score"
	"guess-the-guild/internal/metrics"
)

var (
	ErrStaleRound      = errors.New("round is no longer active")
	ErrRoundOver       = matching.ErrRoundOver
	ErrUnknownGuild    = errors.New("guild is not part of this round")
	ErrNothingToRetry  = errors.New("round does not need a retry")
	ErrNoRoundsStarted = errors.New("no round has been started")
)

const deferredTimeout = 30 * time.Second

type RoundSource interface {
	Next(ctx context.Context, difficulty domain.Difficulty) (*domain.Round, error)
	Initial(ctx context.Context) *domain.Round
}

type Config struct {
	ResultDelay          time.Duration
	RecordBannerDuration time.Duration
}

// Session is the game state of a single player.
type Session struct {
	playerID  string
	tracker   *score.Tracker
	rounds    RoundSource
	scheduler Scheduler
	notifier  ports.Notifier
	cfg       Config
	now       func() time.Time

	// active holds the unix nanoseconds of the last player action.
	active atomic.Int64

	mu         sync.Mutex
	difficulty domain.Difficulty
	round      *domain.Round
	game       matching.Game
	phase      domain.Phase
	newRecord  bool
	fetchErr   string
	// fetchGen identifies the latest round fetch; results of older fetches are dropped.
	fetchGen uint64
	loading  bool
}

// fetchPlan describes a round fetch started under the session lock and run without it.
type fetchPlan struct {
	gen        uint64
	initial    bool
	difficulty domain.Difficulty
}

func newSession(playerID string, tracker *score.Tracker, deps Dependencies) *Session {
	s := &Session{
		playerID:   playerID,
		tracker:    tracker,
		rounds:     deps.Rounds,
		scheduler:  deps.Scheduler,
		notifier:   deps.Notifier,
		cfg:        deps.Config,
		now:        deps.Clock,
		difficulty: domain.DifficultyEasy,
		phase:      domain.PhaseLoadingFailed,
	}
	s.touch()
	return s
}

// Play switches to the given difficulty and starts a fresh round. An easy
// first round is drawn from the most popular guilds.
func (s *Session) Play(ctx context.Context, difficulty domain.Difficulty) domain.Snapshot {
	s.touch()

	s.mu.Lock()
	s.difficulty = difficulty
	plan := s.beginFetchLocked()
	s.mu.Unlock()

	round, err := s.fetch(ctx, plan)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.installLocked(plan, round, err)
	return s.snapshotLocked()
}

func (s *Session) Guess(ctx context.Context, roundID string, guildID int) (domain.Snapshot, error) {
	s.touch()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.round == nil || s.round.ID != roundID || s.loading {
		return s.snapshotLocked(), ErrStaleRound
	}
	if s.phase != domain.PhasePlaying {
		return s.snapshotLocked(), ErrRoundOver
	}
	if !s.round.Contains(guildID) {
		return s.snapshotLocked(), ErrUnknownGuild
	}

	state, err := s.game.Guess(guildID)
	if err != nil {
		return s.snapshotLocked(), err
	}

	switch state {
	case matching.Succeeded:
		s.onSuccessLocked(ctx)
	case matching.Failed:
		s.onFailureLocked(ctx)
	}
	return s.snapshotLocked(), nil
}

// Retry starts a new round after the previous attempt could not load one.
func (s *Session) Retry(ctx context.Context, roundID string) (domain.Snapshot, error) {
	s.touch()

	s.mu.Lock()
	if s.phase != domain.PhaseLoadingFailed || s.loading {
		defer s.mu.Unlock()
		return s.snapshotLocked(), ErrNothingToRetry
	}
	if s.currentRoundID() != roundID {
		defer s.mu.Unlock()
		return s.snapshotLocked(), ErrStaleRound
	}
	plan := s.beginFetchLocked()
	s.mu.Unlock()

	round, err := s.fetch(ctx, plan)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.installLocked(plan, round, err)
	return s.snapshotLocked(), nil
}

func (s *Session) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) Scores() domain.ScoreState {
	return s.tracker.State()
}

func (s *Session) onSuccessLocked(ctx context.Context) {
	s.phase = domain.PhaseSucceeded
	metrics.Guesses.WithLabelValues(string(s.round.Mode), "success").Inc()

	_, newRecord, err := s.tracker.RecordSuccess(ctx, s.round.Mode.Points())
	if err != nil {
		slog.Error("Failed to persist score", "player", s.playerID, "error", err)
	}

	if newRecord {
		s.newRecord = true
		metrics.NewRecords.Inc()
		roundID := s.round.ID
		s.scheduler.Schedule(s.taskKey("banner"), s.cfg.RecordBannerDuration, func() {
			s.clearBanner(roundID)
		})
	}
	s.scheduleNextRoundLocked()
}

func (s *Session) onFailureLocked(ctx context.Context) {
	s.phase = domain.PhaseFailed
	metrics.Guesses.WithLabelValues(string(s.round.Mode), "failure").Inc()

	if _, err := s.tracker.RecordFailure(ctx); err != nil {
		slog.Error("Failed to persist score reset", "player", s.playerID, "error", err)
	}
	s.scheduleNextRoundLocked()
}

func (s *Session) scheduleNextRoundLocked() {
	roundID := s.round.ID
	s.scheduler.Schedule(s.taskKey("next"), s.cfg.ResultDelay, func() {
		s.advance(roundID)
	})
}

func (s *Session) advance(roundID string) {
	ctx, cancel := context.WithTimeout(context.Background(), deferredTimeout)
	defer cancel()

	s.mu.Lock()
	if s.currentRoundID() != roundID || s.loading || (s.phase != domain.PhaseSucceeded && s.phase != domain.PhaseFailed) {
		s.mu.Unlock()
		return
	}
	plan := s.beginFetchLocked()
	s.mu.Unlock()

	round, err := s.fetch(ctx, plan)

	s.mu.Lock()
	if !s.installLocked(plan, round, err) {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(ctx, snap)
}

func (s *Session) clearBanner(roundID string) {
	ctx, cancel := context.WithTimeout(context.Background(), deferredTimeout)
	defer cancel()

	s.mu.Lock()
	if s.currentRoundID() != roundID || !s.newRecord {
		s.mu.Unlock()
		return
	}
	s.newRecord = false
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(ctx, snap)
}

func (s *Session) publish(ctx context.Context, snap domain.Snapshot) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, snap); err != nil {
		slog.Warn("Failed to publish session update", "player", s.playerID, "error", err)
	}
}

// beginFetchLocked cancels deferred work of the current round and claims the
// next fetch generation. An easy session without a playable round starts from
// the most popular guilds.
func (s *Session) beginFetchLocked() fetchPlan {
	s.cancelPendingLocked()
	s.fetchGen++
	s.loading = true
	return fetchPlan{
		gen:        s.fetchGen,
		initial:    s.round.Empty() && s.difficulty == domain.DifficultyEasy,
		difficulty: s.difficulty,
	}
}

func (s *Session) fetch(ctx context.Context, plan fetchPlan) (*domain.Round, error) {
	if plan.initial {
		return s.rounds.Initial(ctx), nil
	}
	return s.rounds.Next(ctx, plan.difficulty)
}

// installLocked applies a fetch result unless a newer fetch was started
// meanwhile. On failure the previous round stays visible and the session
// waits for a retry.
func (s *Session) installLocked(plan fetchPlan, round *domain.Round, err error) bool {
	if plan.gen != s.fetchGen {
		slog.Debug("Dropping superseded round", "player", s.playerID, "generation", plan.gen)
		return false
	}
	s.loading = false

	switch {
	case err != nil:
		slog.Warn("Failed to start round", "player", s.playerID, "difficulty", plan.difficulty, "error", err)
		s.phase = domain.PhaseLoadingFailed
		s.newRecord = false
		s.fetchErr = err.Error()
	case round.Empty():
		s.round = round
		s.game = nil
		s.phase = domain.PhaseLoadingFailed
		s.newRecord = false
		s.fetchErr = "no guilds available"
	default:
		s.setRoundLocked(round)
	}
	return true
}

func (s *Session) setRoundLocked(round *domain.Round) {
	s.round = round
	s.game = matching.NewGame(round)
	s.phase = domain.PhasePlaying
	s.newRecord = false
	s.fetchErr = ""
	metrics.RoundsStarted.WithLabelValues(string(round.Mode), string(round.Difficulty)).Inc()
	slog.Debug("Round started", "player", s.playerID, "round", round.ID, "mode", round.Mode)
}

func (s *Session) touch() {
	s.active.Store(s.now().UnixNano())
}

func (s *Session) lastActive() time.Time {
	return time.Unix(0, s.active.Load())
}

func (s *Session) cancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPendingLocked()
}

func (s *Session) cancelPendingLocked() {
	s.scheduler.Cancel(s.taskKey("next"))
	s.scheduler.Cancel(s.taskKey("banner"))
}

func (s *Session) snapshotLocked() domain.Snapshot {
	snap := domain.Snapshot{
		PlayerID:  s.playerID,
		Round:     s.round,
		Phase:     s.phase,
		Score:     s.tracker.State(),
		NewRecord: s.newRecord,
		FetchErr:  s.fetchErr,
	}
	if s.game != nil {
		snap.Revealed = s.game.Revealed()
	}
	return snap
}

func (s *Session) currentRoundID() string {
	if s.round == nil {
		return ""
	}
	return s.round.ID
}

func (s *Session) taskKey(kind string) string {
	return s.playerID + "/" + kind
}
