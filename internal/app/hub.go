package app

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"ailab/internal/domain"
	"ailab/internal/games"
)

const (
	// DefaultIdleTimeout is how long an unattended session survives
	DefaultIdleTimeout = 2 * time.Hour

	// DefaultCleanupInterval is how often idle sessions are swept
	DefaultCleanupInterval = 10 * time.Minute
)

// HubConfig configures a GameHub
type HubConfig struct {
	Clock           clockwork.Clock
	IdleTimeout     time.Duration
	CleanupInterval time.Duration
	TimingScale     float64
	EscalateAfter   int
	PassPercent     int
	// Seed makes item sampling reproducible when non-zero
	Seed uint64
}

// Stats summarises the hub for the stats endpoint
type Stats struct {
	Sessions    int                  `json:"sessions"`
	Clients     int                  `json:"clients"`
	ByGame      map[games.Kind]int   `json:"byGame"`
	ByPhase     map[domain.Phase]int `json:"byPhase"`
	MenuReturns int64                `json:"menuReturns"`
}

// GameHub manages all active game sessions
type GameHub struct {
	sessions    map[string]*GameSession
	mu          sync.RWMutex
	cfg         HubConfig
	logger      *slog.Logger
	done        chan struct{}
	closeOnce   sync.Once
	seeds       atomic.Uint64
	menuReturns atomic.Int64
}

// NewGameHub creates a new game hub
func NewGameHub(cfg HubConfig, logger *slog.Logger) *GameHub {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}

	hub := &GameHub{
		sessions: make(map[string]*GameSession),
		cfg:      cfg,
		logger:   logger,
		done:     make(chan struct{}),
	}

	// Start cleanup goroutine
	go hub.cleanupLoop()

	return hub
}

// CreateSession starts a new game of kind and returns its session
func (h *GameHub) CreateSession(kind games.Kind) (*GameSession, error) {
	id := uuid.NewString()
	session, err := NewGameSession(id, kind, SessionOptions{
		Clock:         h.cfg.Clock,
		Rand:          h.newRand(),
		TimingScale:   h.cfg.TimingScale,
		EscalateAfter: h.cfg.EscalateAfter,
		PassPercent:   h.cfg.PassPercent,
		OnBackToMenu:  h.onBackToMenu,
	}, h.logger)
	if err != nil {
		return nil, fmt.Errorf("create %s session: %w", kind, err)
	}

	h.mu.Lock()
	h.sessions[id] = session
	h.mu.Unlock()

	h.logger.Info("session created", "sessionID", id, "game", kind)

	return session, nil
}

// GetSession returns a game session by id
func (h *GameHub) GetSession(id string) (*GameSession, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	session, ok := h.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	return session, nil
}

// DeleteSession closes and removes a game session
func (h *GameHub) DeleteSession(id string) bool {
	h.mu.Lock()
	session, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if !ok {
		return false
	}
	session.Close()
	h.logger.Info("session deleted", "sessionID", id)
	return true
}

// GetSessionCount returns the number of active sessions
func (h *GameHub) GetSessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// GetTotalClientCount returns the number of views across all sessions
func (h *GameHub) GetTotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, session := range h.sessions {
		total += session.GetClientCount()
	}
	return total
}

// Stats returns a summary of live sessions
func (h *GameHub) Stats() Stats {
	h.mu.RLock()
	sessions := make([]*GameSession, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.RUnlock()

	st := Stats{
		Sessions:    len(sessions),
		ByGame:      make(map[games.Kind]int),
		ByPhase:     make(map[domain.Phase]int),
		MenuReturns: h.menuReturns.Load(),
	}
	for _, s := range sessions {
		st.Clients += s.GetClientCount()
		st.ByGame[s.GetKind()]++
		st.ByPhase[s.GetPhase()]++
	}
	return st
}

// Close shuts down the hub and all sessions
func (h *GameHub) Close() {
	h.closeOnce.Do(func() { close(h.done) })

	h.mu.Lock()
	sessions := h.sessions
	h.sessions = make(map[string]*GameSession)
	h.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
}

// onBackToMenu retires a session once its view has left the game
func (h *GameHub) onBackToMenu(s *GameSession) {
	h.menuReturns.Add(1)
	h.DeleteSession(s.GetID())
}

func (h *GameHub) newRand() *rand.Rand {
	if h.cfg.Seed == 0 {
		return nil
	}
	n := h.seeds.Add(1)
	return rand.New(rand.NewPCG(h.cfg.Seed, n))
}

// cleanupLoop periodically cleans up idle sessions
func (h *GameHub) cleanupLoop() {
	ticker := h.cfg.Clock.NewTicker(h.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.Chan():
			h.cleanupIdleSessions()
		}
	}
}

// cleanupIdleSessions removes sessions nobody has watched or touched for
// longer than the idle timeout
func (h *GameHub) cleanupIdleSessions() int {
	now := h.cfg.Clock.Now()

	h.mu.Lock()
	stale := make([]*GameSession, 0)
	for id, session := range h.sessions {
		if session.GetClientCount() == 0 && now.Sub(session.GetLastActive()) > h.cfg.IdleTimeout {
			stale = append(stale, session)
			delete(h.sessions, id)
		}
	}
	h.mu.Unlock()

	for _, session := range stale {
		session.Close()
		h.logger.Info("idle session cleaned up", "sessionID", session.GetID())
	}
	return len(stale)
}
