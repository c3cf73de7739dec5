/*
Package game contains the core logic of the emote guessing server.

This file defines the Client struct, representing an authenticated WebSocket
connection. It runs the connection's message loops: a read pump that parses
inbound frames into a serial command queue, a dispatch loop that applies one
command at a time, and a write pump that drains the session's outbound sink.
*/
package game

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"emoteguessr/internal/pkg/logx"
	"emoteguessr/internal/protocol"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a message sent by the client.
	maxMessageSize = 4096

	// commandQueueBuffer sizes the serial inbound command queue.
	commandQueueBuffer = 32
)

// Client represents an active, authenticated WebSocket connection.
type Client struct {
	// underlying WebSocket connection object.
	conn *websocket.Conn

	// the registered session this connection belongs to.
	session *Session

	// directory receives this connection's commands.
	directory *Directory

	// commands is the per-user ordered queue drained by DispatchLoop. One
	// user's commands are applied in the order sent; different users
	// interleave arbitrarily.
	commands chan protocol.Inbound

	// structured logger with client context.
	logger zerolog.Logger
}

// NewClient constructs a Client for an authenticated connection.
func NewClient(conn *websocket.Conn, session *Session, directory *Directory) *Client {
	clientLogger := logx.Logger().With().
		Str("client_id", session.ID).
		Str("display_name", session.Name).
		Logger()

	return &Client{
		conn:      conn,
		session:   session,
		directory: directory,
		commands:  make(chan protocol.Inbound, commandQueueBuffer),
		logger:    clientLogger,
	}
}

// ReadPump reads frames from the WebSocket connection and feeds the command
// queue. It handles heartbeats (Pong) and performs full cleanup when the
// connection closes: the user departs all rooms and leaves the registry.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (Client close/going away)")
			}
			break
		}

		in, err := protocol.ParseInbound(messageBytes)
		if err != nil {
			c.logger.Warn().Err(err).
				Bytes("message_bytes", messageBytes).
				Msg("Client sent malformed frame, dropping.")
			continue
		}

		c.commands <- in
	}
}

// cleanupOnDisconnect runs when ReadPump terminates: the command queue is
// closed so DispatchLoop drains and exits, the user's rooms are departed, and
// the session is removed (which also terminates WritePump).
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	close(c.commands)

	c.directory.RemoveUser(c.session.ID)

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

// DispatchLoop applies queued commands one at a time, preserving the order
// the user sent them in. It exits when the command queue is closed.
func (c *Client) DispatchLoop(ctx context.Context) {
	for in := range c.commands {
		c.directory.Dispatch(ctx, c.session.ID, in)
	}
}

// WritePump drains the session's outbound queue into the WebSocket
// connection, interleaving periodic Ping messages to keep the connection
// alive. It exits when the session is closed or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.session.Outbound():
			if !c.writeQueuedMessage(message, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedMessage writes one queued payload to the WebSocket. Returns true
// if the WritePump loop should continue, false if it should terminate.
func (c *Client) writeQueuedMessage(message []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePingMessage sends a periodic WebSocket Ping to maintain the heartbeat.
// Returns false if the WritePump loop should terminate due to write failure.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
