package services

import (
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// breakIntervalMinutes is how much accumulated foreground study time passes
// between break reminders.
const breakIntervalMinutes = 30

// sessionIdleTimeout is how long a paused session may sit before its periodic
// check tears it down. A client that never sends the stop call (crash, closed
// tab) would otherwise keep a scheduler goroutine alive forever.
const sessionIdleTimeout = 60 * time.Minute

// SessionClock accumulates foreground wall-clock time for one app session,
// pausing while the app is backgrounded, and raises a break-reminder callback
// on each 30-minute boundary crossing. It writes no persisted state and is
// lost on process restart.
//
// Crossings are detected by comparing the boundary index floor(minutes/30)
// against the last notified index, so a check landing past a boundary (after
// a long background interval) still fires.
type SessionClock struct {
	mu          sync.Mutex
	clock       Clock
	scheduler   *gocron.Scheduler
	accumulated time.Duration
	startMark   time.Time
	started     bool
	running     bool
	pausedAt    time.Time
	lastNotify  int
	onBreak     func()
}

func NewSessionClock(clock Clock) *SessionClock {
	return &SessionClock{clock: clock}
}

// SetBreakCallback registers the zero-argument break-reminder handler. Last
// registration wins.
func (s *SessionClock) SetBreakCallback(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onBreak = fn
}

// Start moves stopped -> running and begins the once-per-minute boundary
// check. Starting an already started session is a no-op.
func (s *SessionClock) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.running = true
	s.startMark = s.clock.Now()

	s.scheduler = gocron.NewScheduler(time.UTC)
	s.scheduler.Every(1).Minute().Do(s.checkBreak)
	s.scheduler.StartAsync()
}

// Pause folds the elapsed foreground interval into the accumulator
// (running -> paused). No-op unless running.
func (s *SessionClock) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || !s.running {
		return
	}
	s.accumulated += s.clock.Now().Sub(s.startMark)
	s.startMark = time.Time{}
	s.pausedAt = s.clock.Now()
	s.running = false
}

// Resume takes a new start mark (paused -> running). No-op unless paused.
func (s *SessionClock) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.running {
		return
	}
	s.startMark = s.clock.Now()
	s.pausedAt = time.Time{}
	s.running = true
}

// Stop tears down all session state and the periodic check.
func (s *SessionClock) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	sched := s.teardownLocked()
	s.mu.Unlock()

	if sched != nil {
		sched.Stop()
	}
}

// teardownLocked resets all session state and detaches the scheduler, which
// the caller must stop after releasing the lock.
func (s *SessionClock) teardownLocked() *gocron.Scheduler {
	sched := s.scheduler
	s.scheduler = nil
	s.started = false
	s.running = false
	s.accumulated = 0
	s.startMark = time.Time{}
	s.pausedAt = time.Time{}
	s.lastNotify = 0
	return sched
}

// Started reports whether the session holds live state.
func (s *SessionClock) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// CurrentSessionMinutes returns the accumulated foreground time, floored to
// whole minutes.
func (s *SessionClock) CurrentSessionMinutes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minutesLocked()
}

// Running reports whether the session is in the foreground.
func (s *SessionClock) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started && s.running
}

func (s *SessionClock) minutesLocked() int {
	total := s.accumulated
	if s.running {
		total += s.clock.Now().Sub(s.startMark)
	}
	return int(total / time.Minute)
}

// checkBreak fires the break callback at most once per crossed boundary. It
// also retires sessions left paused past sessionIdleTimeout, stopping the
// scheduler from a fresh goroutine since gocron must not be stopped from
// inside its own job.
func (s *SessionClock) checkBreak() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	if !s.running && !s.pausedAt.IsZero() && s.clock.Now().Sub(s.pausedAt) >= sessionIdleTimeout {
		sched := s.teardownLocked()
		s.mu.Unlock()
		if sched != nil {
			go sched.Stop()
		}
		return
	}
	index := s.minutesLocked() / breakIntervalMinutes
	var fire func()
	if index > s.lastNotify {
		s.lastNotify = index
		fire = s.onBreak
	}
	s.mu.Unlock()

	if fire != nil {
		fire()
	}
}

// SessionManager keys one SessionClock per user and collects pending break
// reminders for the HTTP layer to hand to the app.
type SessionManager struct {
	mu       sync.Mutex
	clock    Clock
	sessions map[uint]*SessionClock
	pending  map[uint]bool
}

func NewSessionManager(clock Clock) *SessionManager {
	return &SessionManager{
		clock:    clock,
		sessions: make(map[uint]*SessionClock),
		pending:  make(map[uint]bool),
	}
}

// Get returns the user's session clock, creating it on first use. Clocks
// that have stopped (explicitly or via idle teardown) are dropped from the
// map so entries do not pile up across users.
func (m *SessionManager) Get(userID uint) *SessionClock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reapLocked(userID)
	if sc, ok := m.sessions[userID]; ok {
		return sc
	}
	sc := NewSessionClock(m.clock)
	sc.SetBreakCallback(func() {
		m.mu.Lock()
		m.pending[userID] = true
		m.mu.Unlock()
	})
	m.sessions[userID] = sc
	return sc
}

// reapLocked drops map entries whose clocks are no longer started, along
// with their pending reminders. The requested user's entry is kept so Get
// hands back the same clock. Callers hold m.mu; Started takes each clock's
// own lock, which is safe since the break callback never holds a clock lock
// while taking m.mu.
func (m *SessionManager) reapLocked(keep uint) {
	for id, sc := range m.sessions {
		if id != keep && !sc.Started() {
			delete(m.sessions, id)
			delete(m.pending, id)
		}
	}
}

// ConsumeBreakReminder reports and clears a pending break reminder.
func (m *SessionManager) ConsumeBreakReminder(userID uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	due := m.pending[userID]
	m.pending[userID] = false
	return due
}
