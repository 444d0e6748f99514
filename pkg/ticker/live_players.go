package ticker

import (
	"context"
	"time"
)

const (
	// LivePlayersInterval is how often the counter drifts.
	LivePlayersInterval = 4 * time.Second

	livePlayersBase   = 1400
	livePlayersSpread = 800
	livePlayersDrift  = 5
)

// LivePlayers is the simulated "players online" counter of a game page.
// It is not safe for concurrent use.
type LivePlayers struct {
	r     Rand
	count int
}

// NewLivePlayers starts the counter somewhere in [1400, 2200).
func NewLivePlayers(r Rand) *LivePlayers {
	return &LivePlayers{
		r:     r,
		count: livePlayersBase + r.IntN(livePlayersSpread),
	}
}

// Count returns the current value.
func (l *LivePlayers) Count() int {
	return l.count
}

// Step moves the counter up or down by 0 to 4 and returns the new value.
// The counter never drops below zero.
func (l *LivePlayers) Step() int {
	sign := 1
	if l.r.IntN(2) == 0 {
		sign = -1
	}
	l.count = max(0, l.count+sign*l.r.IntN(livePlayersDrift))
	return l.count
}

// Run emits a new count on every tick until ctx is cancelled or ticks closes.
func (l *LivePlayers) Run(ctx context.Context, ticks <-chan time.Time) <-chan int {
	return Stream(ctx, ticks, func(time.Time) (int, bool) {
		return l.Step(), false
	})
}
