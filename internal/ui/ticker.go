package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// revealTicker drives the reveal animation from a background goroutine. Each
// step runs on the UI goroutine and returns the delay before the next one, so
// a speed change takes effect on the following tick.
type revealTicker struct {
	mu   sync.Mutex
	stop chan struct{}

	// run executes a step on the UI goroutine and waits for it.
	run func(func())
}

func newRevealTicker() *revealTicker {
	return &revealTicker{run: fyne.DoAndWait}
}

// Start cancels any running ticker and begins a new one. step reports the
// next delay and whether to keep going.
func (t *revealTicker) Start(first time.Duration, step func() (time.Duration, bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		close(t.stop)
	}
	stop := make(chan struct{})
	t.stop = stop
	go t.loop(stop, first, step)
}

// Stop cancels the running ticker, if any.
func (t *revealTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

func (t *revealTicker) loop(stop chan struct{}, delay time.Duration, step func() (time.Duration, bool)) {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	for {
		select {
		case <-stop:
			return
		case <-timer.C:
		}

		var next time.Duration
		more := false
		t.run(func() {
			// A stop that raced with the timer wins.
			select {
			case <-stop:
				return
			default:
			}
			next, more = step()
		})
		if !more {
			return
		}
		timer.Reset(next)
	}
}
