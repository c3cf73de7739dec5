/*
Package game contains the core logic of the emote guessing server.

This file defines the Directory, which owns every live room and drives the
room lifecycle: create, join, start, score, and dissolve. It is the only
writer of room state besides the round timers it schedules.

Locking discipline: the Directory lock is always acquired before the session
registry's lock, and neither lock is ever held across a network send or a
catalog fetch. Cross-registry operations resolve id snapshots under a
short-lived Directory section, release it, then deliver messages through the
registry.
*/
package game

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"emoteguessr/internal/app/catalog"
	"emoteguessr/internal/pkg/logx"
	"emoteguessr/internal/pkg/randx"
	"emoteguessr/internal/protocol"
)

// Directory tracks all live rooms and applies game commands to them.
type Directory struct {
	// mu protects concurrent access to the rooms map and room contents.
	mu sync.RWMutex

	rooms map[string]*Room

	registry *Registry
	catalog  catalog.Provider

	// emoteSetID selects the guessable catalog.
	emoteSetID string

	// defaultDuration is the round length given to newly created rooms.
	defaultDuration time.Duration

	logger zerolog.Logger
}

// NewDirectory constructs an empty room directory backed by the given session
// registry and emote catalog provider.
func NewDirectory(registry *Registry, provider catalog.Provider, emoteSetID string, defaultDuration time.Duration) *Directory {
	return &Directory{
		rooms:           make(map[string]*Room),
		registry:        registry,
		catalog:         provider,
		emoteSetID:      emoteSetID,
		defaultDuration: defaultDuration,
		logger:          logx.Logger().With().Str("component", "Directory").Logger(),
	}
}

// RoomExists reports whether a room id is live. Used by the HTTP surface.
func (d *Directory) RoomExists(roomID string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.rooms[roomID]
	return ok
}

// createRoom allocates and registers a fresh room for ownerID. It returns
// false when the owner is not a registered user or seed generation fails.
func (d *Directory) createRoom(ownerID string) (*Room, bool) {
	if !d.registry.Exists(ownerID) {
		return nil, false
	}

	seed, err := randx.GameSeed()
	if err != nil {
		d.logger.Error().Err(err).Msg("Cannot generate room seed.")
		return nil, false
	}

	room := newRoom(randx.RoomID(), ownerID, d.defaultDuration, seed)

	d.mu.Lock()
	d.rooms[room.ID] = room
	d.mu.Unlock()

	d.logger.Info().
		Str("room_id", room.ID).
		Str("owner_id", ownerID).
		Msg("Room created.")

	return room, true
}

// CreateRoom creates a room owned by userID and replies to the creator with
// the single-member roster. A request from an unregistered user is dropped
// without a reply.
func (d *Directory) CreateRoom(userID string) {
	room, ok := d.createRoom(userID)
	if !ok {
		return
	}

	name, ok := d.registry.DisplayName(userID)
	if !ok {
		d.logger.Warn().Str("user_id", userID).Msg("Room creator vanished before the roster reply.")
		return
	}

	d.sendTo(userID, protocol.RoomJoinMsg(room.ID, true, []string{name}))
}

// EditRoom replaces a room's round duration. Only the room owner may edit;
// the new duration takes effect at the next round start.
func (d *Directory) EditRoom(userID, roomID string, durationSeconds uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	room, ok := d.rooms[roomID]
	if !ok {
		d.logger.Info().Str("room_id", roomID).Msg("Edit attempted on a room that does not exist.")
		return
	}

	if room.OwnerID != userID {
		d.logger.Warn().
			Str("room_id", roomID).
			Str("user_id", userID).
			Msg("Edit attempted by a non-owner, ignoring.")
		return
	}

	room.Duration = time.Duration(durationSeconds) * time.Second
}

// JoinRoom moves userID into the target room. The user first fully departs
// any room they currently occupy; every member of the target room (the joiner
// included) then receives the refreshed roster.
func (d *Directory) JoinRoom(userID, roomID string) {
	if !d.registry.Exists(userID) {
		return
	}

	if !d.RoomExists(roomID) {
		d.sendTo(userID, protocol.ErrorMsg(protocol.ErrTypeRoomJoinFailed, "Room does not exist"))
		return
	}

	d.leaveAllRooms(userID)

	d.mu.Lock()
	room, ok := d.rooms[roomID]
	if !ok {
		// The room vanished between the existence check and the insert.
		d.mu.Unlock()
		d.logger.Warn().
			Str("room_id", roomID).
			Str("user_id", userID).
			Msg("Room disappeared mid-join, abandoning.")
		return
	}

	room.Players[userID] = &PlayerState{}
	ownerID := room.OwnerID
	members := room.memberIDs()
	d.mu.Unlock()

	d.broadcastRoster(roomID, ownerID, members)
}

// leaveAllRooms fully departs userID from every room they occupy. Rooms the
// user owns are dissolved and the evicted co-members notified; plain
// memberships are removed and the remaining members get a refreshed roster.
// Any room left empty is destroyed.
func (d *Directory) leaveAllRooms(userID string) {
	type departure struct {
		roomID    string
		ownerID   string
		dissolved bool
		notify    []string
	}

	var departures []departure

	d.mu.Lock()
	for id, room := range d.rooms {
		if room.OwnerID == userID {
			room.stopTimer()
			delete(d.rooms, id)

			evicted := make([]string, 0, len(room.Players))
			for memberID := range room.Players {
				if memberID != userID {
					evicted = append(evicted, memberID)
				}
			}

			departures = append(departures, departure{roomID: id, dissolved: true, notify: evicted})
			continue
		}

		if _, isMember := room.Players[userID]; !isMember {
			continue
		}

		delete(room.Players, userID)

		if len(room.Players) == 0 {
			room.stopTimer()
			delete(d.rooms, id)
			continue
		}

		departures = append(departures, departure{
			roomID:  id,
			ownerID: room.OwnerID,
			notify:  room.memberIDs(),
		})
	}
	d.mu.Unlock()

	for _, dep := range departures {
		if dep.dissolved {
			d.logger.Info().
				Str("room_id", dep.roomID).
				Str("owner_id", userID).
				Msg("Room dissolved, owner left.")

			d.broadcast(dep.notify, protocol.ErrorMsg(protocol.ErrTypeRoomDisbanded, "room owner left room"))
			continue
		}

		d.broadcastRoster(dep.roomID, dep.ownerID, dep.notify)
	}
}

// StartGame (re)schedules the round-end timer for the room. Any registered
// user who can name the room restarts the clock; the initial emote push,
// however, only happens when the caller owns the room.
func (d *Directory) StartGame(ctx context.Context, userID, roomID string) {
	if !d.registry.Exists(userID) {
		return
	}

	d.mu.Lock()
	room, ok := d.rooms[roomID]
	if !ok {
		d.mu.Unlock()
		return
	}

	d.scheduleRound(room)
	isOwner := room.OwnerID == userID
	members := room.memberIDs()
	duration := room.Duration
	d.mu.Unlock()

	d.logger.Info().
		Str("room_id", roomID).
		Str("user_id", userID).
		Bool("is_owner", isOwner).
		Dur("duration", duration).
		Msg("Round timer scheduled.")

	if !isOwner {
		return
	}

	for _, memberID := range members {
		d.sendEmote(ctx, memberID, roomID)
	}
}

// SubmitGuess scores a guess against the member's current target emote.
// Correct: +1.0, advancement +1, a response with the fully revealed name, the
// next emote, and a scoreboard broadcast to the room. Wrong: -0.2 and the
// masked comparison to the guesser only; the target stays.
func (d *Directory) SubmitGuess(ctx context.Context, userID, roomID, guess string) {
	if !d.registry.Exists(userID) {
		return
	}

	d.mu.RLock()
	room, ok := d.rooms[roomID]
	if !ok {
		d.mu.RUnlock()
		return
	}
	state, ok := room.Players[userID]
	if !ok {
		d.mu.RUnlock()
		return
	}
	seed, advancement := room.Seed, state.Advancement
	d.mu.RUnlock()

	// Resolve the target without holding the directory lock; the catalog
	// fetch can be slow and must not stall unrelated rooms.
	emotes, err := d.catalog.Emotes(ctx, d.emoteSetID)
	if err != nil {
		d.logger.Error().Err(err).Str("room_id", roomID).Msg("Emote catalog unavailable, abandoning guess.")
		return
	}

	target, err := Pick(seed, emotes, advancement)
	if err != nil {
		d.logger.Error().Err(err).Str("room_id", roomID).Msg("Cannot pick target emote, abandoning guess.")
		return
	}

	masked, correct := CompareGuess(target.Name, guess)

	d.mu.Lock()
	room, ok = d.rooms[roomID]
	if !ok {
		d.mu.Unlock()
		d.logger.Warn().Str("room_id", roomID).Msg("Room vanished while resolving a guess, abandoning.")
		return
	}
	state, ok = room.Players[userID]
	if !ok {
		d.mu.Unlock()
		d.logger.Warn().
			Str("room_id", roomID).
			Str("user_id", userID).
			Msg("Membership vanished while resolving a guess, abandoning.")
		return
	}

	if correct {
		state.Score += CorrectScore
		state.Advancement++
	} else {
		state.Score += IncorrectScore
	}
	score := state.Score
	d.mu.Unlock()

	d.sendTo(userID, protocol.GuessResponseMsg(masked, score))

	if correct {
		d.sendEmote(ctx, userID, roomID)
		d.broadcastScores(roomID)
	}
}

// Skip gives up on the member's current target: -0.1, advancement +1, an
// empty-mask response with the updated score, then the next emote. The rest
// of the room is not informed.
func (d *Directory) Skip(ctx context.Context, userID, roomID string) {
	if !d.registry.Exists(userID) {
		return
	}

	d.mu.Lock()
	room, ok := d.rooms[roomID]
	if !ok {
		d.mu.Unlock()
		return
	}
	state, ok := room.Players[userID]
	if !ok {
		d.mu.Unlock()
		return
	}

	state.Score += SkipScore
	state.Advancement++
	score := state.Score
	d.mu.Unlock()

	d.sendTo(userID, protocol.GuessResponseMsg("", score))

	d.sendEmote(ctx, userID, roomID)
}

// RemoveUser handles a disconnect: the same full-departure path as an
// explicit leave (owned rooms dissolve with notification, memberships are
// removed with roster updates), then the session itself is dropped.
func (d *Directory) RemoveUser(userID string) {
	d.leaveAllRooms(userID)
	d.registry.Remove(userID)
}

// sendEmote pushes the member's current target emote: a fully masked hint
// plus the image URL. Silently does nothing when the room or membership is
// gone; failures of the catalog are logged and the push abandoned.
func (d *Directory) sendEmote(ctx context.Context, userID, roomID string) {
	d.mu.RLock()
	room, ok := d.rooms[roomID]
	if !ok {
		d.mu.RUnlock()
		return
	}
	state, ok := room.Players[userID]
	if !ok {
		d.mu.RUnlock()
		return
	}
	seed, advancement := room.Seed, state.Advancement
	d.mu.RUnlock()

	emotes, err := d.catalog.Emotes(ctx, d.emoteSetID)
	if err != nil {
		d.logger.Error().Err(err).Str("room_id", roomID).Msg("Emote catalog unavailable, cannot push emote.")
		return
	}

	emote, err := Pick(seed, emotes, advancement)
	if err != nil {
		d.logger.Error().Err(err).Str("room_id", roomID).Msg("Cannot pick emote to push.")
		return
	}

	d.sendTo(userID, protocol.EmoteMsg(MaskName(emote.Name), emote.URL))
}
