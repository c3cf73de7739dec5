/*
Package game contains the core logic of the emote guessing server.

This file implements the round timer coordinator. A round-end action is keyed
by the room id it targets; when it fires it re-validates that the room still
exists before acting, so a fire against a dissolved room is a benign no-op.
Timers are stopped best-effort when a room is dissolved or a round is
rescheduled, but a stop is only an optimization; correctness rests on the
existence check.
*/
package game

import (
	"time"

	"emoteguessr/internal/protocol"
)

// scheduleRound arms the round-end timer for the room's configured duration,
// replacing any previously armed timer. Caller must hold the directory write
// lock.
func (d *Directory) scheduleRound(room *Room) {
	room.stopTimer()

	roomID := room.ID
	room.timer = time.AfterFunc(room.Duration, func() {
		d.endRound(roomID)
	})
}

// endRound terminates the round for roomID: the room is removed from the
// directory, a brand-new room with a fresh id and seed is created for the
// same owner, and every former member is told where to regroup.
func (d *Directory) endRound(roomID string) {
	d.mu.Lock()
	room, ok := d.rooms[roomID]
	if !ok {
		d.mu.Unlock()
		d.logger.Debug().Str("room_id", roomID).Msg("Round timer fired for a room that no longer exists.")
		return
	}

	ownerID := room.OwnerID
	members := room.memberIDs()
	room.stopTimer()
	delete(d.rooms, roomID)
	d.mu.Unlock()

	d.logger.Info().
		Str("room_id", roomID).
		Str("owner_id", ownerID).
		Int("members", len(members)).
		Msg("Round ended.")

	newRoom, ok := d.createRoom(ownerID)
	if !ok {
		// The owner disconnected during the round; the survivors have no
		// room to regroup into.
		d.logger.Warn().
			Str("room_id", roomID).
			Str("owner_id", ownerID).
			Msg("Cannot create follow-up room, owner is gone.")
		return
	}

	d.broadcast(members, protocol.GameOverMsg(newRoom.ID))
}
