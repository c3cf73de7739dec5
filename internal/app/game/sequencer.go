/*
Package game contains the core logic of the emote guessing server.

This file implements the deterministic emote sequencer: a seeded generator
whose draw sequence makes every room's emote order a fixed, replayable
permutation-with-repetition, plus the masked name comparison used by the
guessing protocol.
*/
package game

import (
	"errors"
	"math/rand/v2"
	"strings"

	"emoteguessr/internal/app/catalog"
	"emoteguessr/internal/protocol"
)

// ErrEmptyCatalog is returned when the catalog has no emotes to pick from.
var ErrEmptyCatalog = errors.New("emote catalog is empty")

// Pick derives the emote at position advancement of the sequence defined by
// seed over the given catalog. The generator is seeded fresh on every call and
// advanced past `advancement` throwaway draws, so the same (seed, advancement)
// pair yields the same emote regardless of wall clock, process, or call order,
// as long as the catalog itself is unchanged.
func Pick(seed uint64, emotes []catalog.Emote, advancement uint32) (catalog.Emote, error) {
	if len(emotes) == 0 {
		return catalog.Emote{}, ErrEmptyCatalog
	}

	rng := rand.New(rand.NewPCG(seed, seed))

	for i := uint32(0); i < advancement; i++ {
		_ = rng.IntN(len(emotes))
	}

	return emotes[rng.IntN(len(emotes))], nil
}

// MaskName renders a fully hidden hint for a target name: one mask glyph per
// rune.
func MaskName(name string) string {
	var b strings.Builder
	for range name {
		b.WriteRune(protocol.MaskGlyph)
	}
	return b.String()
}

// CompareGuess performs the masked, case-insensitive comparison of a guess
// against the target name. The result has one position per target rune:
// revealed where the guess matches, the mask glyph everywhere else, including
// positions beyond the guess's length. correct reports exact full-string
// equality (case-insensitive), the only thing that counts as a correct guess.
func CompareGuess(target, guess string) (masked string, correct bool) {
	targetLower := strings.ToLower(target)
	guessLower := strings.ToLower(guess)

	guessRunes := []rune(guessLower)

	var b strings.Builder
	for i, targetRune := range []rune(targetLower) {
		if i < len(guessRunes) && guessRunes[i] == targetRune {
			b.WriteRune(targetRune)
		} else {
			b.WriteRune(protocol.MaskGlyph)
		}
	}

	return b.String(), targetLower == guessLower
}
