package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emoteguessr/internal/pkg/auth/jwt"
	"emoteguessr/internal/protocol"
)

func startGameServer(t *testing.T) (*httptest.Server, *AppDeps) {
	t.Helper()

	fake := newFakeTwitch(t)
	t.Cleanup(fake.Close)

	deps := newTestDeps(t, fake.URL)

	ts := httptest.NewServer(Router(deps))
	t.Cleanup(ts.Close)

	return ts, deps
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	return conn
}

func identityToken(t *testing.T, deps *AppDeps, displayName string) string {
	t.Helper()

	token, err := jwt.GenerateToken(&jwt.Payload{
		TwitchID:    "42",
		Login:       strings.ToLower(displayName),
		DisplayName: displayName,
	}, deps.SigningKey, jwt.UserIdentityExpiration)
	require.NoError(t, err)
	return token
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()

	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var frame map[string]any
	require.NoError(t, json.Unmarshal(payload, &frame))
	return frame
}

func TestWebSocketHandshakeAndCreateRoom(t *testing.T) {
	ts, deps := startGameServer(t)
	conn := dialWS(t, ts)

	token := identityToken(t, deps, "Streamer")
	require.NoError(t, conn.WriteJSON(protocol.Authenticate{JWT: token}))

	frame := readFrame(t, conn)
	require.Equal(t, protocol.MsgNewUser, frame["command"])

	userID, _ := frame["user_id"].(string)
	require.NotEmpty(t, userID)
	assert.True(t, deps.Registry.Exists(userID))

	require.NoError(t, conn.WriteJSON(map[string]string{"command": "create_room"}))

	frame = readFrame(t, conn)
	require.Equal(t, protocol.MsgRoomJoin, frame["command"])
	assert.Equal(t, true, frame["is_owner"])
	assert.Equal(t, []any{"Streamer"}, frame["player_list"])

	roomID, _ := frame["room_id"].(string)
	assert.True(t, deps.Directory.RoomExists(roomID))
}

func TestWebSocketRejectsBadToken(t *testing.T) {
	ts, _ := startGameServer(t)
	conn := dialWS(t, ts)

	require.NoError(t, conn.WriteJSON(protocol.Authenticate{JWT: "not.a.token"}))

	frame := readFrame(t, conn)
	require.Equal(t, protocol.MsgError, frame["command"])
	assert.Equal(t, protocol.ErrTypeAuthFailed, frame["error_type"])

	// The server hangs up after the rejection.
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestWebSocketSkipsFramesWithoutCredentials(t *testing.T) {
	ts, deps := startGameServer(t)
	conn := dialWS(t, ts)

	// A frame without a jwt field is not a credential; the handshake keeps
	// waiting instead of failing.
	require.NoError(t, conn.WriteJSON(map[string]string{"hello": "there"}))

	token := identityToken(t, deps, "Streamer")
	require.NoError(t, conn.WriteJSON(protocol.Authenticate{JWT: token}))

	frame := readFrame(t, conn)
	assert.Equal(t, protocol.MsgNewUser, frame["command"])
}

func TestWebSocketDisconnectCleansUp(t *testing.T) {
	ts, deps := startGameServer(t)
	conn := dialWS(t, ts)

	token := identityToken(t, deps, "Streamer")
	require.NoError(t, conn.WriteJSON(protocol.Authenticate{JWT: token}))

	frame := readFrame(t, conn)
	userID, _ := frame["user_id"].(string)
	require.NotEmpty(t, userID)

	require.NoError(t, conn.WriteJSON(map[string]string{"command": "create_room"}))
	frame = readFrame(t, conn)
	roomID, _ := frame["room_id"].(string)
	require.True(t, deps.Directory.RoomExists(roomID))

	conn.Close()

	// The read pump notices the close and departs the user from everything.
	require.Eventually(t, func() bool {
		return !deps.Registry.Exists(userID) && !deps.Directory.RoomExists(roomID)
	}, 3*time.Second, 20*time.Millisecond)
}
