package game

import (
	"sync"
	"time"
)

// Scheduler runs deferred work. Scheduling under a key that already has a
// pending task replaces that task.
type Scheduler interface {
	Schedule(key string, delay time.Duration, fn func())
	Cancel(key string)
	Stop()
}

type timerEntry struct {
	timer *time.Timer
	id    uint64
}

type TimerScheduler struct {
	mu      sync.Mutex
	timers  map[string]timerEntry
	nextID  uint64
	stopped bool
}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{
		timers: make(map[string]timerEntry),
	}
}

func (s *TimerScheduler) Schedule(key string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if prev, ok := s.timers[key]; ok {
		prev.timer.Stop()
	}

	s.nextID++
	id := s.nextID
	s.timers[key] = timerEntry{
		id: id,
		timer: time.AfterFunc(delay, func() {
			s.mu.Lock()
			current, ok := s.timers[key]
			if !ok || current.id != id {
				s.mu.Unlock()
				return
			}
			delete(s.timers, key)
			s.mu.Unlock()
			fn()
		}),
	}
}

func (s *TimerScheduler) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.timers[key]; ok {
		entry.timer.Stop()
		delete(s.timers, key)
	}
}

// Pending reports the number of tasks that have not fired yet.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.timers {
		entry.timer.Stop()
		delete(s.timers, key)
	}
	s.stopped = true
}
