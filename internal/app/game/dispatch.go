/*
Package game contains the core logic of the emote guessing server.

This file is the request router: it maps one inbound command envelope to
exactly one directory operation, using the user id that was authenticated at
connection time. Unrecognized commands are logged and dropped; they never
close the connection.
*/
package game

import (
	"context"

	"emoteguessr/internal/protocol"
)

// Dispatch applies a single inbound command on behalf of userID. The caller
// guarantees commands from one user arrive here serially and in order.
func (d *Directory) Dispatch(ctx context.Context, userID string, in protocol.Inbound) {
	switch in.Command {
	case protocol.CmdCreateRoom:
		d.CreateRoom(userID)

	case protocol.CmdEditRoom:
		d.EditRoom(userID, in.RoomID, in.GameDuration)

	case protocol.CmdJoinRoom:
		d.JoinRoom(userID, in.RoomID)

	case protocol.CmdStartGame:
		d.StartGame(ctx, userID, in.RoomID)

	case protocol.CmdSubmitGuess:
		d.SubmitGuess(ctx, userID, in.RoomID, in.Guess)

	case protocol.CmdSkip:
		d.Skip(ctx, userID, in.RoomID)

	default:
		d.logger.Warn().
			Str("user_id", userID).
			Str("cmd", in.Command).
			Msg("User sent unsupported command.")
	}
}
