/*
Package game contains the core logic of the emote guessing server.

This file defines the Room model: one game session instance with an owner, a
member roster with per-member round progress, a fixed seed, and a round
duration. "In round" is defined as having an active round timer; there is no
separate state flag.
*/
package game

import (
	"time"
)

// Scoring constants. Fixed by the game rules, not configurable.
const (
	// CorrectScore is added for an exact (case-insensitive) name match.
	CorrectScore = 1.0

	// IncorrectScore is added for a wrong guess.
	IncorrectScore = -0.2

	// SkipScore is added when a player gives up on the current emote.
	SkipScore = -0.1
)

// PlayerState is the per-(user, room) round progress.
type PlayerState struct {
	// Score is the running score. It can go negative.
	Score float64

	// Advancement counts how many emotes of the room's deterministic
	// sequence this player has already consumed.
	Advancement uint32
}

// Room is a game session instance.
type Room struct {
	// ID is the unique room id generated at creation.
	ID string

	// OwnerID is the user id of the room owner. The owner is always a member
	// at creation time.
	OwnerID string

	// Duration is the configured round length, applied at the next round start.
	Duration time.Duration

	// Seed is the fixed 64-bit value driving the room's emote sequence.
	// Chosen at creation and never mutated.
	Seed uint64

	// Players maps member user id to per-room progress.
	Players map[string]*PlayerState

	// timer holds the pending round-end timer, nil outside a round.
	timer *time.Timer
}

// newRoom constructs a room with a single-member roster holding the owner at
// zero score and zero advancement.
func newRoom(id, ownerID string, duration time.Duration, seed uint64) *Room {
	return &Room{
		ID:       id,
		OwnerID:  ownerID,
		Duration: duration,
		Seed:     seed,
		Players: map[string]*PlayerState{
			ownerID: {},
		},
	}
}

// memberIDs returns a snapshot of the current member user ids.
func (r *Room) memberIDs() []string {
	ids := make([]string, 0, len(r.Players))
	for id := range r.Players {
		ids = append(ids, id)
	}
	return ids
}

// stopTimer halts any pending round-end timer, best-effort. A fire that is
// already in flight is tolerated by the existence re-check in the handler.
func (r *Room) stopTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
