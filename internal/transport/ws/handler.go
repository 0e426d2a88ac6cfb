package ws

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"ailab/internal/app"
	"ailab/internal/domain"
	"ailab/internal/games"
)

// Handler handles WebSocket connections
type Handler struct {
	hub      *app.GameHub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *app.GameHub, logger *slog.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// The debug view may be served from another origin in development
				return true
			},
		},
		logger: logger,
	}
}

// ServeHTTP handles WebSocket upgrade requests. ?session= joins an existing
// session; otherwise ?game= starts a new one.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session, created, err := h.resolveSession(r)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			http.Error(w, "Session not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrUnknownGame):
			http.Error(w, "game must be one of sorting, quiz, train", http.StatusBadRequest)
		default:
			h.logger.Error("failed to open session", "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	// Upgrade connection to WebSocket
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		if created {
			h.hub.DeleteSession(session.GetID())
		}
		return
	}

	clientID := uuid.NewString()
	client := NewClient(conn, session, clientID, h.logger)

	// Register client with session
	session.RegisterClient(client)

	h.logger.Info("websocket connected",
		"sessionID", session.GetID(),
		"clientID", clientID,
		"game", session.GetKind(),
		"newSession", created,
	)

	client.sendConnected()

	// Start the client
	client.Run()
}

func (h *Handler) resolveSession(r *http.Request) (*app.GameSession, bool, error) {
	if id := r.URL.Query().Get("session"); id != "" {
		session, err := h.hub.GetSession(id)
		return session, false, err
	}

	kind, err := games.ParseKind(r.URL.Query().Get("game"))
	if err != nil {
		return nil, false, err
	}
	session, err := h.hub.CreateSession(kind)
	return session, true, err
}
