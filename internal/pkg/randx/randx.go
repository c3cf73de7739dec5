/*
Package randx provides identifier and seed generation.

User and room ids are UUID v4 strings; game seeds are cryptographically random
64-bit values fixed once per room and fed to the deterministic emote sequencer.
*/
package randx

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// UserID generates a unique identifier for a newly connected user.
func UserID() string {
	return uuid.New().String()
}

// RoomID generates a unique identifier for a new room.
func RoomID() string {
	return uuid.New().String()
}

// GameSeed generates a random 64-bit seed for a room's emote sequence.
func GameSeed() (uint64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("failed to generate game seed: %w", err)
	}

	return binary.LittleEndian.Uint64(buf[:]), nil
}
