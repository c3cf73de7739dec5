/*
Package game contains the core logic of the emote guessing server.

This file implements message fan-out: a single logical event is marshaled once
and delivered to each resolved recipient independently through the session
registry. Partial delivery is expected and never aborts the remaining sends.
*/
package game

import (
	"encoding/json"

	"emoteguessr/internal/protocol"
)

// sendTo marshals msg and delivers it to one user, best-effort.
func (d *Directory) sendTo(userID string, msg any) {
	payload, err := json.Marshal(msg)
	if err != nil {
		d.logger.Error().Err(err).Msg("Cannot marshal outbound message.")
		return
	}

	d.registry.Send(userID, payload)
}

// broadcast marshals msg once and delivers it to every listed user. Absent
// recipients are skipped silently.
func (d *Directory) broadcast(userIDs []string, msg any) {
	payload, err := json.Marshal(msg)
	if err != nil {
		d.logger.Error().Err(err).Msg("Cannot marshal broadcast message.")
		return
	}

	for _, userID := range userIDs {
		d.registry.Send(userID, payload)
	}
}

// broadcastRoster sends every member the current roster view: the room id,
// whether the recipient owns the room, and all member display names.
func (d *Directory) broadcastRoster(roomID, ownerID string, memberIDs []string) {
	names := d.registry.DisplayNames(memberIDs)

	for _, memberID := range memberIDs {
		d.sendTo(memberID, protocol.RoomJoinMsg(roomID, memberID == ownerID, names))
	}
}

// broadcastScores sends every member the scoreboard: display name to score
// for the full roster.
func (d *Directory) broadcastScores(roomID string) {
	type memberScore struct {
		userID string
		score  float64
	}

	d.mu.RLock()
	room, ok := d.rooms[roomID]
	if !ok {
		d.mu.RUnlock()
		return
	}

	entries := make([]memberScore, 0, len(room.Players))
	for userID, state := range room.Players {
		entries = append(entries, memberScore{userID: userID, score: state.Score})
	}
	d.mu.RUnlock()

	scores := make(map[string]float64, len(entries))
	memberIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		memberIDs = append(memberIDs, entry.userID)

		name, ok := d.registry.DisplayName(entry.userID)
		if !ok {
			continue
		}
		scores[name] = entry.score
	}

	d.broadcast(memberIDs, protocol.GameUpdateMsg(scores))
}
