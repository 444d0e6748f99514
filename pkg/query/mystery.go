package query

import (
	"unicode/utf16"

	"github.com/pbzzardari/PlayverseZone/pkg/domain"
)

// DailyMysteryPick returns the "game of the day" for dateKey (see common.DateKey).
// The same key and catalog order always yield the same game. Returns (nil, false)
// when no game is playable.
func DailyMysteryPick(games []*domain.Game, dateKey string) (*domain.Game, bool) {
	playable := make([]*domain.Game, 0, len(games))
	for _, g := range games {
		if g != nil && g.IsPlayable() {
			playable = append(playable, g)
		}
	}
	if len(playable) == 0 {
		return nil, false
	}

	h := DateHash(dateKey)
	if h < 0 {
		h = -h
	}
	return playable[h%int64(len(playable))], true
}

// DateHash is the rolling hash h = c + ((h << 5) - h) over the UTF-16 code
// units of key. Only the shift wraps to 32 bits; the subtraction and addition
// do not, so the result can leave the int32 range (but always fits in int64).
// Existing daily picks depend on this exact arithmetic.
func DateHash(key string) int64 {
	var h int64
	for _, c := range utf16.Encode([]rune(key)) {
		h = int64(c) + (int64(int32(h)<<5) - h)
	}
	return h
}
