package ticker

import (
	"context"
	"time"
)

const (
	// LoadingInterval is how often the loading overlay advances.
	LoadingInterval = 800 * time.Millisecond

	loadingStep = 15

	// LoadingCeiling is where the bar waits until the game frame reports ready.
	LoadingCeiling = 95
)

// LoadingMessages are shown in turn while a game frame loads.
var LoadingMessages = []string{
	"Initializing secure handshake...",
	"Allocating neural buffers...",
	"Encrypting game stream (AES-256)...",
	"Compiling low-latency shaders...",
	"Verifying content safety rating...",
	"Establishing V4.0 cloud link...",
	"Handshake successful. Launching...",
}

// LoadingFrame is one state of the loading overlay.
type LoadingFrame struct {
	Message  string `json:"message"`
	Progress int    `json:"progress"`
}

// LoadingSequence cycles the loading messages and fills the bar in steps of 15
// up to LoadingCeiling. The zero value is ready to use.
type LoadingSequence struct {
	idx      int
	progress int
}

// Current returns the frame on screen.
func (s *LoadingSequence) Current() LoadingFrame {
	return LoadingFrame{Message: LoadingMessages[s.idx], Progress: s.progress}
}

// Step advances one tick and returns the new frame.
func (s *LoadingSequence) Step() LoadingFrame {
	s.idx = (s.idx + 1) % len(LoadingMessages)
	s.progress = min(s.progress+loadingStep, LoadingCeiling)
	return s.Current()
}

// Run emits a frame on every tick until ctx is cancelled or ticks closes.
func (s *LoadingSequence) Run(ctx context.Context, ticks <-chan time.Time) <-chan LoadingFrame {
	return Stream(ctx, ticks, func(time.Time) (LoadingFrame, bool) {
		return s.Step(), false
	})
}
