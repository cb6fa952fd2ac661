package services

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Dedup windows. The 1s gap applies to any two recorder calls from the same
// user regardless of payload; the 30s lock absorbs double-submits of the same
// completion action; the 5s window catches identical game/activity
// fingerprints.
const (
	CallGapWindow        = 1 * time.Second
	CompletionLockWindow = 30 * time.Second
	FingerprintWindow    = 5 * time.Second

	maxTrackedFingerprints = 100
	evictKeepFingerprints  = 50
)

// IdempotencyGuard decides whether an inbound completion event has already
// been processed inside a short trailing window. Duplicate submission is not
// an error: callers skip side effects and report success.
//
// State is process-local and lost on restart; the durable request-id unique
// index on activity events is the deterministic backstop.
type IdempotencyGuard struct {
	mu       sync.Mutex
	clock    Clock
	seen     map[string]time.Time
	lastCall map[uint]time.Time
}

func NewIdempotencyGuard(clock Clock) *IdempotencyGuard {
	return &IdempotencyGuard{
		clock:    clock,
		seen:     make(map[string]time.Time),
		lastCall: make(map[uint]time.Time),
	}
}

// ShouldProcess reports whether the fingerprint was NOT marked processed
// within the trailing window. A fingerprint is marked only when processing is
// allowed, so a rejected retry does not extend the window.
func (g *IdempotencyGuard) ShouldProcess(fingerprint string, window time.Duration) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	if last, ok := g.seen[fingerprint]; ok && now.Sub(last) < window {
		return false
	}
	g.seen[fingerprint] = now
	g.evict()
	return true
}

// AllowCall is the last-resort brake against rendering-induced double fire:
// it rejects any two calls from the same user less than CallGapWindow apart,
// independent of fingerprint. Other users' calls are unaffected.
func (g *IdempotencyGuard) AllowCall(userID uint) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	if last, ok := g.lastCall[userID]; ok && now.Sub(last) < CallGapWindow {
		return false
	}
	g.lastCall[userID] = now
	return true
}

// evict keeps bookkeeping bounded: once over maxTrackedFingerprints entries,
// drop down to the evictKeepFingerprints most recently seen. Called with the
// lock held.
func (g *IdempotencyGuard) evict() {
	if len(g.seen) <= maxTrackedFingerprints {
		return
	}

	type entry struct {
		key string
		at  time.Time
	}
	entries := make([]entry, 0, len(g.seen))
	for k, at := range g.seen {
		entries = append(entries, entry{key: k, at: at})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].at.After(entries[j].at)
	})

	kept := make(map[string]time.Time, evictKeepFingerprints)
	for _, e := range entries[:evictKeepFingerprints] {
		kept[e.key] = e.at
	}
	g.seen = kept
}

// ActivityFingerprint identifies "the same submission" for a generic
// completion event. Duration is rounded to 5 seconds so minor timer jitter
// between retries still collides.
func ActivityFingerprint(userID uint, kind string, score, durationSeconds int) string {
	return fmt.Sprintf("activity:%d:%s:%d:%d", userID, kind, score, durationSeconds-durationSeconds%5)
}

// GameFingerprint identifies a specific game play submission.
func GameFingerprint(userID uint, game string, score, durationSeconds int) string {
	return fmt.Sprintf("game:%d:%s:%d:%d", userID, game, score, durationSeconds)
}

// CompletionLockKey is the coarse per-(user, kind) key used for the hard
// 30-second lock, independent of the event payload.
func CompletionLockKey(userID uint, kind string) string {
	return fmt.Sprintf("completion:%d:%s", userID, kind)
}
