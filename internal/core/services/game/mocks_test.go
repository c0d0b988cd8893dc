package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"guess-the-guild/internal/adapters/storage/memory"
	"guess-the-guild/internal/core/domain"
)

var (
	guildA = domain.GuildSummary{ID: 1, Name: "A"}
	guildB = domain.GuildSummary{ID: 2, Name: "B"}
	guildC = domain.GuildSummary{ID: 3, Name: "C"}
	guildD = domain.GuildSummary{ID: 4, Name: "D"}
)

type manualTask struct {
	delay time.Duration
	fn    func()
}

// manualScheduler only runs tasks when fired by the test.
type manualScheduler struct {
	mu      sync.Mutex
	tasks   map[string]manualTask
	stopped bool
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{tasks: make(map[string]manualTask)}
}

func (m *manualScheduler) Schedule(key string, delay time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[key] = manualTask{delay: delay, fn: fn}
}

func (m *manualScheduler) Cancel(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tasks, key)
}

func (m *manualScheduler) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = make(map[string]manualTask)
	m.stopped = true
}

func (m *manualScheduler) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tasks[key]
	return ok
}

func (m *manualScheduler) delay(key string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tasks[key].delay
}

// fire runs the task the way the timer would, or reports false if nothing is pending.
func (m *manualScheduler) fire(key string) bool {
	m.mu.Lock()
	task, ok := m.tasks[key]
	delete(m.tasks, key)
	m.mu.Unlock()
	if ok {
		task.fn()
	}
	return ok
}

// fakeRounds hands out queued rounds in order.
type fakeRounds struct {
	mu       sync.Mutex
	queue    []*domain.Round
	initial  *domain.Round
	nextErr  error
	nextHits int
}

func (f *fakeRounds) push(rounds ...*domain.Round) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, rounds...)
}

func (f *fakeRounds) Next(ctx context.Context, difficulty domain.Difficulty) (*domain.Round, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextHits++
	if f.nextErr != nil {
		return nil, f.nextErr
	}
	if len(f.queue) == 0 {
		return nil, errors.New("no rounds queued")
	}
	r := f.queue[0]
	f.queue = f.queue[1:]
	r.Difficulty = difficulty
	return r, nil
}

func (f *fakeRounds) Initial(ctx context.Context) *domain.Round {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.initial != nil {
		return f.initial
	}
	return &domain.Round{ID: "empty"}
}

type fakeNotifier struct {
	mu        sync.Mutex
	published []domain.Snapshot
	err       error
}

func (f *fakeNotifier) Publish(ctx context.Context, snap domain.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, snap)
	return f.err
}

func (f *fakeNotifier) last() domain.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.published[len(f.published)-1]
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}

var roundSeq int

func logoRound(target domain.GuildSummary) *domain.Round {
	roundSeq++
	return &domain.Round{
		ID:           fmt.Sprintf("logo-%d", roundSeq),
		Mode:         domain.ModeLogo,
		Difficulty:   domain.DifficultyEasy,
		Pool:         []domain.GuildSummary{guildA, guildB, guildC, guildD},
		Target:       target,
		Presentation: []domain.GuildSummary{guildD, guildC, guildB, guildA},
	}
}

func pairRound() *domain.Round {
	roundSeq++
	return &domain.Round{
		ID:           fmt.Sprintf("pair-%d", roundSeq),
		Mode:         domain.ModePair,
		Difficulty:   domain.DifficultyEasy,
		Pool:         []domain.GuildSummary{guildA, guildB, guildC, guildD},
		Target:       guildA,
		Presentation: []domain.GuildSummary{guildC, guildA, guildD, guildB},
	}
}

type fixture struct {
	manager   *Manager
	store     *memory.Store
	rounds    *fakeRounds
	scheduler *manualScheduler
	notifier  *fakeNotifier
}

func newFixture() *fixture {
	f := &fixture{
		store:     memory.NewStore(),
		rounds:    &fakeRounds{},
		scheduler: newManualScheduler(),
		notifier:  &fakeNotifier{},
	}
	f.manager = NewManager(Dependencies{
		Store:     f.store,
		Rounds:    f.rounds,
		Scheduler: f.scheduler,
		Notifier:  f.notifier,
		Config: Config{
			ResultDelay:          4 * time.Second,
			RecordBannerDuration: 4 * time.Second,
		},
	})
	return f
}
