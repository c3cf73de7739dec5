/*
Package protocol defines the JSON wire format spoken over the websocket.

Both directions use flat, command-discriminated objects: a "command" field
selects the message type and the remaining fields sit beside it in the same
object. All frames are UTF-8 JSON text.
*/
package protocol

import (
	"encoding/json"
	"errors"
)

// ErrMissingCommand is returned for frames without a command discriminant.
var ErrMissingCommand = errors.New("frame has no command field")

// Inbound command discriminants.
const (
	CmdCreateRoom  = "create_room"
	CmdEditRoom    = "edit_room"
	CmdJoinRoom    = "join_room"
	CmdStartGame   = "start_game"
	CmdSubmitGuess = "submit_guess"
	CmdSkip        = "skip"
)

// Outbound command discriminants.
const (
	MsgNewUser       = "new_user"
	MsgRoomJoin      = "room_join"
	MsgEmote         = "emote"
	MsgGuessResponse = "guess_response"
	MsgGameUpdate    = "game_update"
	MsgGameOver      = "game_over"
	MsgError         = "error"
)

// Error types carried by outbound Error messages.
const (
	ErrTypeAuthFailed     = "auth_failed"
	ErrTypeRoomJoinFailed = "room_join_failed"
	ErrTypeRoomDisbanded  = "room_disbanded"
)

// MaskGlyph replaces unrevealed characters in masked name comparisons.
const MaskGlyph = 'ඬ'

// Authenticate is the credential-bearing frame a connection must send before
// it is promoted to a user.
type Authenticate struct {
	JWT string `json:"jwt"`
}

// Inbound is the envelope for commands coming from a client. The fields
// beyond Command are populated depending on the command.
type Inbound struct {
	Command string `json:"command"`

	// RoomID targets a room for every command except create_room.
	RoomID string `json:"room_id,omitempty"`

	// GameDuration is the new round duration in seconds (edit_room).
	GameDuration uint64 `json:"game_duration,omitempty"`

	// Guess is the submitted emote name (submit_guess).
	Guess string `json:"guess,omitempty"`
}

// NewUser announces the server-assigned user id after a successful handshake.
type NewUser struct {
	Command string `json:"command"`
	UserID  string `json:"user_id"`
}

// RoomJoin is the roster broadcast sent to every member of a room whenever
// its membership changes, and to a creator on room creation.
type RoomJoin struct {
	Command    string   `json:"command"`
	RoomID     string   `json:"room_id"`
	IsOwner    bool     `json:"is_owner"`
	PlayerList []string `json:"player_list"`
}

// Emote presents the recipient's current target: a fully masked hint string
// and the emote image URL.
type Emote struct {
	Command      string `json:"command"`
	MatchedChars string `json:"matched_chars"`
	URL          string `json:"url"`
}

// GuessResponse reports a guess or skip outcome to the requester only.
type GuessResponse struct {
	Command      string  `json:"command"`
	MatchedChars string  `json:"matched_chars"`
	Score        float64 `json:"score"`
}

// GameUpdate is the scoreboard broadcast: display name to score for every member.
type GameUpdate struct {
	Command string             `json:"command"`
	Scores  map[string]float64 `json:"scores"`
}

// GameOver tells every former member of an expired room where to regroup.
type GameOver struct {
	Command   string `json:"command"`
	NewRoomID string `json:"new_room_id"`
}

// Error is a user-visible, non-fatal protocol error.
type Error struct {
	Command string `json:"command"`
	ErrType string `json:"error_type"`
	ErrMsg  string `json:"error_msg"`
}

// NewUserMsg constructs a new_user message.
func NewUserMsg(userID string) NewUser {
	return NewUser{Command: MsgNewUser, UserID: userID}
}

// RoomJoinMsg constructs a room_join roster message.
func RoomJoinMsg(roomID string, isOwner bool, players []string) RoomJoin {
	return RoomJoin{Command: MsgRoomJoin, RoomID: roomID, IsOwner: isOwner, PlayerList: players}
}

// EmoteMsg constructs an emote target message.
func EmoteMsg(matchedChars, url string) Emote {
	return Emote{Command: MsgEmote, MatchedChars: matchedChars, URL: url}
}

// GuessResponseMsg constructs a guess_response message.
func GuessResponseMsg(matchedChars string, score float64) GuessResponse {
	return GuessResponse{Command: MsgGuessResponse, MatchedChars: matchedChars, Score: score}
}

// GameUpdateMsg constructs a game_update scoreboard message.
func GameUpdateMsg(scores map[string]float64) GameUpdate {
	return GameUpdate{Command: MsgGameUpdate, Scores: scores}
}

// GameOverMsg constructs a game_over message.
func GameOverMsg(newRoomID string) GameOver {
	return GameOver{Command: MsgGameOver, NewRoomID: newRoomID}
}

// ErrorMsg constructs an error message.
func ErrorMsg(errType, errMsg string) Error {
	return Error{Command: MsgError, ErrType: errType, ErrMsg: errMsg}
}

// ParseInbound decodes a raw text frame into an Inbound command. A frame
// without a command discriminant is rejected.
func ParseInbound(data []byte) (Inbound, error) {
	var in Inbound
	if err := json.Unmarshal(data, &in); err != nil {
		return Inbound{}, err
	}
	if in.Command == "" {
		return Inbound{}, ErrMissingCommand
	}
	return in, nil
}
