package game

import (
	"context"
	"log/slog"
	"time"

	"guess-the-guild/internal/metrics"
)

// Forgetter drops per-player state held outside the game service.
type Forgetter interface {
	Forget(playerID string)
}

// Janitor periodically evicts idle sessions from a Manager.
type Janitor struct {
	manager    *Manager
	interval   time.Duration
	maxIdle    time.Duration
	forgetters []Forgetter
}

func NewJanitor(manager *Manager, interval, maxIdle time.Duration, forgetters ...Forgetter) *Janitor {
	return &Janitor{
		manager:    manager,
		interval:   interval,
		maxIdle:    maxIdle,
		forgetters: forgetters,
	}
}

func (j *Janitor) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	slog.Info("Session janitor started", "interval", j.interval, "max_idle", j.maxIdle)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *Janitor) sweep() int {
	evicted := j.manager.EvictIdle(j.maxIdle)
	for _, id := range evicted {
		for _, f := range j.forgetters {
			f.Forget(id)
		}
	}
	remaining := j.manager.Len()
	metrics.ActiveSessions.Set(float64(remaining))
	if len(evicted) > 0 {
		slog.Info("Evicted idle sessions", "count", len(evicted), "remaining", remaining)
	}
	return len(evicted)
}
