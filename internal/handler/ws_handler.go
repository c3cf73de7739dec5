/*
Package handler provides the HTTP handler function for WebSocket connection upgrading and initialization.

This file contains the HandleWebSocket function, which is responsible for rate limiting,
upgrading the HTTP connection to WebSocket, running the in-band credential handshake,
and initiating the client lifecycle.
*/
package handler

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"emoteguessr/internal/app/game"
	"emoteguessr/internal/pkg/auth/jwt"
	"emoteguessr/internal/pkg/errs"
	"emoteguessr/internal/pkg/limiter"
	"emoteguessr/internal/pkg/logx"
	"emoteguessr/internal/pkg/resp"
	"emoteguessr/internal/protocol"
)

// handshakeWait bounds how long a fresh connection may take to present its
// identity token before the server hangs up.
const handshakeWait = 10 * time.Second

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
//
// The credential check happens in-band: after the upgrade, the first frames
// from the client are read until one carries a "jwt" field. A valid token
// promotes the connection to a registered user; an invalid one produces an
// auth_failed error frame and a close.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			rateLimitErr := errs.NewError(errs.ErrRateLimitExceeded)
			resp.RespondError(w, r, rateLimitErr)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		payload, ok := awaitCredentials(conn, deps.SigningKey)
		if !ok {
			rejectUnauthenticated(conn)
			return
		}

		session := deps.Registry.Register(payload.DisplayName)

		client := game.NewClient(conn, session, deps.Directory)

		go client.WritePump()
		go client.DispatchLoop(r.Context())

		deps.Registry.Send(session.ID, mustMarshal(protocol.NewUserMsg(session.ID)))

		logx.Info("WebSocket connection established and client registered",
			"client_id", session.ID, "display_name", payload.DisplayName)

		client.ReadPump()
	}
}

// awaitCredentials reads frames until one parses as an Authenticate message,
// then verifies its token. Frames without a jwt field are skipped so clients
// may pipeline a greeting; the deadline bounds the whole exchange.
func awaitCredentials(conn *websocket.Conn, key []byte) (*jwt.Payload, bool) {
	if err := conn.SetReadDeadline(time.Now().Add(handshakeWait)); err != nil {
		return nil, false
	}
	defer conn.SetReadDeadline(time.Time{}) //nolint:errcheck

	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			return nil, false
		}

		var cred protocol.Authenticate
		if err := json.Unmarshal(messageBytes, &cred); err != nil || cred.JWT == "" {
			continue
		}

		payload, err := jwt.ParseToken(cred.JWT, key)
		if err != nil {
			logx.Warn("WebSocket handshake rejected: Invalid identity token.", "error", err.Error())
			return nil, false
		}

		return payload, true
	}
}

// rejectUnauthenticated sends an auth_failed error frame and closes the connection.
func rejectUnauthenticated(conn *websocket.Conn) {
	msg := mustMarshal(protocol.ErrorMsg(protocol.ErrTypeAuthFailed, "Authentication failed"))

	if err := conn.SetWriteDeadline(time.Now().Add(handshakeWait)); err == nil {
		conn.WriteMessage(websocket.TextMessage, msg) //nolint:errcheck
	}

	conn.Close() //nolint:errcheck
}

func mustMarshal(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		logx.Error(err, "Cannot marshal protocol message")
		return []byte("{}")
	}
	return data
}
