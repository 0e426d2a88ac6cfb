package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ailab/internal/app"
	"ailab/internal/config"
	"ailab/internal/games"
)

func newTestServer(t *testing.T) (*Server, *app.GameHub) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := app.NewGameHub(app.HubConfig{Clock: clockwork.NewFakeClock()}, logger)
	t.Cleanup(hub.Close)

	web := fstest.MapFS{
		"web/index.html":     {Data: []byte("<!doctype html><title>AI Lab</title>")},
		"web/static/app.css": {Data: []byte("body{}")},
	}
	cfg := &config.Config{Server: config.ServerConfig{Port: "0", Env: "development"}}
	return NewServer(cfg, hub, logger, web), hub
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, into any) Response {
	t.Helper()
	var resp struct {
		Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	if into != nil {
		require.NoError(t, json.Unmarshal(resp.Data, into))
	}
	return resp.Response
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var health HealthResponse
	resp := decodeData(t, rec, &health)
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", health.Status)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestListGames(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/games", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var menu []games.Info
	decodeData(t, rec, &menu)
	require.Len(t, menu, 3)
	assert.Equal(t, games.KindSorting, menu[0].Kind)
}

func TestListCues(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/cues", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var cues []map[string]any
	decodeData(t, rec, &cues)
	assert.NotEmpty(t, cues)
}

func TestSessionLifecycle(t *testing.T) {
	s, hub := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/sessions", `{"game":"quiz"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created CreateSessionResponse
	decodeData(t, rec, &created)
	assert.Equal(t, games.KindQuiz, created.Game)
	assert.Equal(t, "/ws?session="+created.SessionID, created.WebSocketURL)
	assert.Equal(t, 1, hub.GetSessionCount())

	rec = do(t, s, http.MethodGet, "/api/sessions/"+created.SessionID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var info SessionResponse
	decodeData(t, rec, &info)
	assert.Equal(t, "INTRO", string(info.Phase))
	assert.Equal(t, 5, info.Total)

	rec = do(t, s, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats app.Stats
	decodeData(t, rec, &stats)
	assert.Equal(t, 1, stats.Sessions)
	assert.Equal(t, 1, stats.ByGame[games.KindQuiz])

	rec = do(t, s, http.MethodDelete, "/api/sessions/"+created.SessionID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, hub.GetSessionCount())

	rec = do(t, s, http.MethodDelete, "/api/sessions/"+created.SessionID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateSession_BadRequests(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
		code string
	}{
		{"not json", "{", "INVALID_BODY"},
		{"unknown game", `{"game":"chess"}`, "UNKNOWN_GAME"},
		{"missing game", `{}`, "UNKNOWN_GAME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/sessions", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeData(t, rec, nil)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestGetSession_NotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/sessions/missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeData(t, rec, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SESSION_NOT_FOUND", resp.Error.Code)
}

func TestPreflight(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodOptions, "/api/sessions", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestStaticAndSPA(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "AI Lab")

	rec = do(t, s, http.MethodGet, "/play/quiz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "AI Lab")

	rec = do(t, s, http.MethodGet, "/static/app.css", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())

	rec = do(t, s, http.MethodGet, "/static/missing.js", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
