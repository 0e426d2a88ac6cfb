package app

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"ailab/internal/domain"
	"ailab/internal/games"
	"ailab/internal/media"
	"ailab/internal/sequencer"
)

// ClientConnection represents a connected view
type ClientConnection interface {
	Send(message any) error
	GetClientID() string
	Close() error
}

// SessionOptions configures a new session
type SessionOptions struct {
	Clock         clockwork.Clock
	Rand          *rand.Rand
	TimingScale   float64
	EscalateAfter int
	PassPercent   int
	OnBackToMenu  func(s *GameSession)
}

// GameSession wraps one game with concurrency control and client
// management. Every game mutation, including scheduled actions, runs
// under mu.
type GameSession struct {
	id        string
	kind      games.Kind
	game      games.Game
	mu        sync.Mutex
	clients   map[string]ClientConnection // clientID -> client
	clientsMu sync.RWMutex
	logger    *slog.Logger
	clock     clockwork.Clock

	createdAt  time.Time
	lastActive time.Time
	onMenu     func(s *GameSession)

	// Guarded by mu
	player    string // clientID currently playing media cues
	dragOwner string // clientID that began the active drag

	// Event channel for broadcasting
	events   chan *domain.GameEvent
	done     chan struct{}
	loopDone chan struct{}
	stop     context.CancelFunc
}

// NewGameSession creates a session running a game of kind
func NewGameSession(id string, kind games.Kind, opts SessionOptions, logger *slog.Logger) (*GameSession, error) {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	s := &GameSession{
		id:       id,
		kind:     kind,
		clients:  make(map[string]ClientConnection),
		logger:   logger.With("sessionID", id, "game", kind),
		clock:    opts.Clock,
		onMenu:   opts.OnBackToMenu,
		events:   make(chan *domain.GameEvent, 100),
		done:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}
	s.createdAt = s.clock.Now()
	s.lastActive = s.createdAt

	game, err := games.New(kind, games.Options{
		Clock:         opts.Clock,
		Logger:        s.logger,
		Emit:          s.emit,
		Rand:          opts.Rand,
		TimingScale:   opts.TimingScale,
		EscalateAfter: opts.EscalateAfter,
		PassPercent:   opts.PassPercent,
	})
	if err != nil {
		return nil, err
	}
	s.game = game

	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel
	driver := sequencer.NewDriver(game.Sequencer(), s.clock, &s.mu, s.onTimerError)

	go driver.Run(ctx)
	go s.eventLoop()

	return s, nil
}

// GetID returns the session id
func (s *GameSession) GetID() string {
	return s.id
}

// GetKind returns which game the session runs
func (s *GameSession) GetKind() games.Kind {
	return s.kind
}

// GetCreatedAt returns when the session was created
func (s *GameSession) GetCreatedAt() time.Time {
	return s.createdAt
}

// GetLastActive returns when a command last reached the game
func (s *GameSession) GetLastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// GetPhase returns the current game phase
func (s *GameSession) GetPhase() domain.Phase {
	return s.Snapshot().Phase
}

// Snapshot returns the full game state
func (s *GameSession) Snapshot() games.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// GetClientCount returns the number of attached views
func (s *GameSession) GetClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// RegisterClient attaches a view. The newest view that can play media
// becomes the game's media player.
func (s *GameSession) RegisterClient(client ClientConnection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clientsMu.Lock()
	s.clients[client.GetClientID()] = client
	s.clientsMu.Unlock()

	if player, ok := client.(media.Player); ok {
		s.game.SetPlayer(player)
		s.player = client.GetClientID()
	}
	s.lastActive = s.clock.Now()
}

// UnregisterClient detaches a view. A drag the view began is abandoned,
// and if it was playing media another attached view takes over.
func (s *GameSession) UnregisterClient(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clientsMu.Lock()
	delete(s.clients, clientID)
	var nextID string
	var next media.Player
	for id, client := range s.clients {
		if p, ok := client.(media.Player); ok {
			nextID, next = id, p
			break
		}
	}
	s.clientsMu.Unlock()

	if s.dragOwner == clientID {
		s.dragOwner = ""
		if err := s.game.Handle(games.CancelDrag{}); err != nil {
			s.logger.Debug("cancel drag on disconnect failed", "clientID", clientID, "error", err)
		}
	}

	if s.player == clientID {
		s.player = nextID
		if next == nil {
			s.game.SetPlayer(nil)
			return
		}
		s.game.SetPlayer(next)
		s.logger.Debug("media player handed over", "from", clientID, "to", nextID)
	}
}

// Handle applies a command that no particular view sent
func (s *GameSession) Handle(cmd games.Command) error {
	return s.HandleClient("", cmd)
}

// HandleClient applies a command sent by clientID
func (s *GameSession) HandleClient(clientID string, cmd games.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.done:
		return domain.ErrSessionClosed
	default:
	}

	s.lastActive = s.clock.Now()
	err := s.game.Handle(cmd)

	switch cmd.(type) {
	case games.BeginDrag:
		if err == nil {
			s.dragOwner = clientID
		}
	case games.EndDrag, games.CancelDrag:
		// The gesture is over even when the drop was rejected
		s.dragOwner = ""
	}

	if err != nil {
		s.logger.Debug("command rejected", "clientID", clientID, "command", cmd.Type(), "error", err)
		return err
	}
	return nil
}

// BackToMenu stops everything in flight, tells the views to leave the game
// and then runs the menu callback.
func (s *GameSession) BackToMenu() {
	s.mu.Lock()
	s.game.Reset()
	s.queueEvent(domain.NewEvent(s.id, domain.ReturnedToMenu{}))
	s.mu.Unlock()

	s.logger.Info("returned to menu")
	if s.onMenu != nil {
		s.onMenu(s)
	}
}

// emit is the game's event sink; it runs with mu held
func (s *GameSession) emit(ev domain.Event) {
	s.queueEvent(domain.NewEvent(s.id, ev))
}

func (s *GameSession) onTimerError(err error) {
	s.logger.Error("scheduled action failed", "error", err)
}

// queueEvent adds an event to the broadcast queue
func (s *GameSession) queueEvent(event *domain.GameEvent) {
	select {
	case s.events <- event:
	default:
		s.logger.Warn("event queue full, dropping event", "type", event.Type)
	}
}

// eventLoop processes events and broadcasts to clients. Events already
// queued when the session closes are still delivered.
func (s *GameSession) eventLoop() {
	defer close(s.loopDone)
	for {
		select {
		case <-s.done:
			for {
				select {
				case event := <-s.events:
					s.broadcastEvent(event)
				default:
					return
				}
			}
		case event := <-s.events:
			s.broadcastEvent(event)
		}
	}
}

// broadcastEvent sends an event to every attached view
func (s *GameSession) broadcastEvent(event *domain.GameEvent) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	for clientID, client := range s.clients {
		if err := client.Send(event); err != nil {
			s.logger.Debug("failed to send to client", "clientID", clientID, "error", err)
		}
	}
}

// Close shuts down the session
func (s *GameSession) Close() {
	select {
	case <-s.done:
		return // Already closed
	default:
		close(s.done)
	}

	s.stop()

	s.mu.Lock()
	s.game.Close()
	s.mu.Unlock()

	<-s.loopDone

	// Close all client connections
	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clients = make(map[string]ClientConnection)
	s.clientsMu.Unlock()
}
