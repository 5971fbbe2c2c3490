// Package clock provides cancellable delayed and repeating tasks.
//
// The session schedules its countdown tick and pulse clear through Clock so
// tests can replace wall time with Manual.
package clock

import (
	"sync"
	"time"
)

// Timer is a handle to a scheduled task.
type Timer interface {
	// Stop cancels the task. It reports whether the call stopped it.
	Stop() bool
}

// Clock schedules tasks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
	Every(d time.Duration, f func()) Timer
}

// System is the Clock backed by the runtime timers.
var System Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (systemClock) Every(d time.Duration, f func()) Timer {
	if d <= 0 {
		d = time.Second
	}
	repeating := &repeatingTimer{
		ticker: time.NewTicker(d),
		stopCh: make(chan struct{}),
	}
	go repeating.run(f)
	return repeating
}

type repeatingTimer struct {
	ticker   *time.Ticker
	stopCh   chan struct{}
	stopOnce sync.Once
}

func (repeating *repeatingTimer) run(f func()) {
	for {
		select {
		case <-repeating.stopCh:
			return
		case <-repeating.ticker.C:
			f()
		}
	}
}

func (repeating *repeatingTimer) Stop() bool {
	stopped := false
	repeating.stopOnce.Do(func() {
		repeating.ticker.Stop()
		close(repeating.stopCh)
		stopped = true
	})
	return stopped
}
