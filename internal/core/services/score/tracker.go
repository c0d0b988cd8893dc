package score

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"guess-the-guild/internal/core/domain"
)

const (
	KeyScore  = "score"
	KeyRecord = "record"
)

var ErrInvalidPoints = errors.New("points must be positive")

type Store interface {
	GetInt(ctx context.Context, key string) (int, bool, error)
	SetInt(ctx context.Context, key string, value int) error
}

// Tracker keeps the current score and the best score reached so far.
// Every mutation is written through to the store before returning.
type Tracker struct {
	mu    sync.Mutex
	store Store
	state domain.ScoreState
}

func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

func (t *Tracker) Restore(ctx context.Context) domain.ScoreState {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = domain.ScoreState{
		Current: t.load(ctx, KeyScore),
		Record:  t.load(ctx, KeyRecord),
	}
	return t.state
}

func (t *Tracker) load(ctx context.Context, key string) int {
	v, ok, err := t.store.GetInt(ctx, key)
	if err != nil {
		slog.Warn("Failed to read score value, defaulting to 0", "key", key, "error", err)
		return 0
	}
	if !ok || v < 0 {
		return 0
	}
	return v
}

// RecordSuccess adds points to the current score. The returned flag is true
// when the new score beats the record.
func (t *Tracker) RecordSuccess(ctx context.Context, points int) (domain.ScoreState, bool, error) {
	if points <= 0 {
		return t.State(), false, ErrInvalidPoints
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.Current += points
	var errs []error
	if err := t.store.SetInt(ctx, KeyScore, t.state.Current); err != nil {
		errs = append(errs, fmt.Errorf("persist score: %w", err))
	}

	newRecord := t.state.Current > t.state.Record
	if newRecord {
		t.state.Record = t.state.Current
		if err := t.store.SetInt(ctx, KeyRecord, t.state.Record); err != nil {
			errs = append(errs, fmt.Errorf("persist record: %w", err))
		}
	}

	return t.state, newRecord, errors.Join(errs...)
}

func (t *Tracker) RecordFailure(ctx context.Context) (domain.ScoreState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.Current = 0
	if err := t.store.SetInt(ctx, KeyScore, 0); err != nil {
		return t.state, fmt.Errorf("persist score: %w", err)
	}
	return t.state, nil
}

func (t *Tracker) State() domain.ScoreState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
