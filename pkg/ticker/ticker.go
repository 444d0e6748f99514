// Package ticker produces the cosmetic, time-driven display values shown around
// a game: the live player counter, the launch loading sequence and the 2026
// countdown. None of it touches visitor progress.
package ticker

import (
	"context"
	"time"
)

// Rand is the randomness source used by the simulations.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Every returns a channel that receives the current time every d until ctx is
// cancelled. The underlying time.Ticker is stopped when ctx is done.
func Every(ctx context.Context, d time.Duration) <-chan time.Time {
	out := make(chan time.Time)
	t := time.NewTicker(d)

	go func() {
		defer t.Stop()
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				select {
				case out <- now:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// Stream calls step for every tick and sends the result on the returned
// channel. It stops, closing the channel, when ctx is cancelled, ticks is
// closed, or step reports done after sending its final value.
func Stream[T any](ctx context.Context, ticks <-chan time.Time, step func(now time.Time) (value T, done bool)) <-chan T {
	out := make(chan T)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case now, ok := <-ticks:
				if !ok {
					return
				}
				v, done := step(now)
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
				if done {
					return
				}
			}
		}
	}()

	return out
}
