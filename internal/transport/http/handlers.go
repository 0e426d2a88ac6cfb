package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"ailab/internal/app"
	"ailab/internal/catalog"
	"ailab/internal/domain"
	"ailab/internal/games"
	"ailab/internal/media"
)

// Response is a standard API response
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateSessionRequest is the body of POST /api/sessions
type CreateSessionRequest struct {
	Game string `json:"game"`
}

// CreateSessionResponse is the response for session creation
type CreateSessionResponse struct {
	SessionID    string     `json:"sessionId"`
	Game         games.Kind `json:"game"`
	WebSocketURL string     `json:"webSocketUrl"`
}

// SessionResponse is the response for getting session info
type SessionResponse struct {
	SessionID string       `json:"sessionId"`
	Game      games.Kind   `json:"game"`
	Phase     domain.Phase `json:"phase"`
	Clients   int          `json:"clients"`
	Score     int          `json:"score"`
	Total     int          `json:"total"`
	CreatedAt time.Time    `json:"createdAt"`
}

// HealthResponse is the response for health check
type HealthResponse struct {
	Status string `json:"status"`
}

// handleCreateSession handles POST /api/sessions
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "INVALID_BODY", "Body must be JSON with a game field")
		return
	}

	kind, err := games.ParseKind(req.Game)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "UNKNOWN_GAME", "game must be one of sorting, quiz, train")
		return
	}

	session, err := s.hub.CreateSession(kind)
	if err != nil {
		s.logger.Error("failed to create session", "game", kind, "error", err)
		s.sendError(w, http.StatusInternalServerError, "CREATION_FAILED", "Failed to create session")
		return
	}

	s.sendJSON(w, http.StatusCreated, &CreateSessionResponse{
		SessionID:    session.GetID(),
		Game:         kind,
		WebSocketURL: "/ws?session=" + session.GetID(),
	})
}

// handleGetSession handles GET /api/sessions/{sessionID}
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	snap := session.Snapshot()
	s.sendSuccess(w, &SessionResponse{
		SessionID: session.GetID(),
		Game:      session.GetKind(),
		Phase:     snap.Phase,
		Clients:   session.GetClientCount(),
		Score:     snap.Score,
		Total:     snap.Total,
		CreatedAt: session.GetCreatedAt(),
	})
}

// handleDeleteSession handles DELETE /api/sessions/{sessionID}
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.hub.DeleteSession(chi.URLParam(r, "sessionID")) {
		s.sendError(w, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*app.GameSession, bool) {
	session, err := s.hub.GetSession(chi.URLParam(r, "sessionID"))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			s.sendError(w, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found")
		} else {
			s.sendError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		}
		return nil, false
	}
	return session, true
}

// handleListGames handles GET /api/games
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, games.Menu())
}

// handleListCues handles GET /api/cues
func (s *Server) handleListCues(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, media.Cues(len(catalog.QuizQuestions())))
}

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &HealthResponse{
		Status: "ok",
	})
}

// handleStats handles GET /api/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, s.hub.Stats())
}

// handleStatic serves static files
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	// Strip /static/ prefix
	path := strings.TrimPrefix(r.URL.Path, "/static/")

	// Try to open from webFS
	file, err := s.webFS.Open("static/" + path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer file.Close()

	// Get file info for content type and modification time
	stat, err := file.Stat()
	if err != nil || stat.IsDir() {
		http.NotFound(w, r)
		return
	}

	rs, ok := file.(io.ReadSeeker)
	if !ok {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, stat.Name(), stat.ModTime(), rs)
}

// handleSPA serves the debug view for every other GET
func (s *Server) handleSPA(w http.ResponseWriter, r *http.Request) {
	file, err := s.webFS.Open("index.html")
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	rs, ok := file.(io.ReadSeeker)
	if !ok {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, "index.html", stat.ModTime(), rs)
}

// sendSuccess sends a successful JSON response
func (s *Server) sendSuccess(w http.ResponseWriter, data any) {
	s.sendJSON(w, http.StatusOK, data)
}

// sendJSON sends a successful JSON response with a status code
func (s *Server) sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{
		Success: true,
		Data:    data,
	})
}

// sendError sends an error JSON response
func (s *Server) sendError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}
