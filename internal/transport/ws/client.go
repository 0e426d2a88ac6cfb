package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"ailab/internal/app"
	"ailab/internal/domain"
	"ailab/internal/media"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer; layouts can be large
	maxMessageSize = 64 * 1024

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client represents a WebSocket view attached to one session. It is also
// the session's media player: cues become media_play/media_stop messages.
type Client struct {
	conn     *websocket.Conn
	session  *app.GameSession
	clientID string
	send     chan []byte
	logger   *slog.Logger
	mu       sync.Mutex
	closed   bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, session *app.GameSession, clientID string, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		session:  session,
		clientID: clientID,
		send:     make(chan []byte, sendBufferSize),
		logger:   logger.With("clientID", clientID, "sessionID", session.GetID()),
	}
}

// GetClientID implements app.ClientConnection interface
func (c *Client) GetClientID() string {
	return c.clientID
}

// Send implements app.ClientConnection interface
func (c *Client) Send(message any) error {
	if ev, ok := message.(*domain.GameEvent); ok {
		msg, err := EventMessage(ev)
		if err != nil {
			return err
		}
		message = msg
	}

	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, message dropped")
		return nil
	}
}

// Play implements media.Player
func (c *Client) Play(resource string, volume float64) (media.Handle, error) {
	if c.isClosed() {
		return "", media.ErrPlayerClosed
	}
	h := media.Handle(uuid.NewString())
	if err := c.Send(NewServerMessage(MsgMediaPlay, &MediaPlayPayload{Handle: h, Resource: resource, Volume: volume})); err != nil {
		return "", err
	}
	return h, nil
}

// Stop implements media.Player
func (c *Client) Stop(h media.Handle) error {
	if c.isClosed() {
		return media.ErrPlayerClosed
	}
	return c.Send(NewServerMessage(MsgMediaStop, &MediaStopPayload{Handle: h}))
}

// Close implements app.ClientConnection interface. Messages already queued
// are flushed before the connection closes.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.send)
	return nil
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		c.session.UnregisterClient(c.clientID)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				next, ok := <-c.send
				if !ok {
					break
				}
				w.Write([]byte{'\n'})
				w.Write(next)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes an incoming message from the client
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid message format")
		return
	}

	switch msg.Type {
	case MsgPing:
		c.sendPong()
	case MsgBackToMenu:
		c.session.BackToMenu()
	default:
		cmd, err := DecodeCommand(msg)
		if err != nil {
			c.sendError(ErrCodeInvalidMessage, err.Error())
			return
		}
		if err := c.session.HandleClient(c.clientID, cmd); err != nil {
			code, text := ErrorCode(err)
			if code == ErrCodeInternalError {
				c.logger.Error("command failed", "command", cmd.Type(), "error", err)
			}
			c.sendError(code, text)
		}
	}
}

// sendConnected sends the connected message to the client
func (c *Client) sendConnected() {
	msg := NewServerMessage(MsgConnected, newConnectedPayload(c.clientID, c.session))
	c.Send(msg)
}

// sendError sends an error message to the client
func (c *Client) sendError(code, message string) {
	payload := &ErrorPayload{
		Code:    code,
		Message: message,
	}

	msg := NewServerMessage(MsgError, payload)
	c.Send(msg)
}

// sendPong sends a pong message in response to ping
func (c *Client) sendPong() {
	msg := NewServerMessage(MsgPong, nil)
	c.Send(msg)
}
