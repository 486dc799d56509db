package execution

import (
	"context"
	"sync"
	"time"
)

// Heartbeat periodically reports elapsed time while a long operation runs
type Heartbeat struct {
	interval time.Duration
	notify   func(elapsed time.Duration)
}

// NewHeartbeat creates a heartbeat calling notify every interval.
// A non-positive interval disables it.
func NewHeartbeat(interval time.Duration, notify func(elapsed time.Duration)) *Heartbeat {
	return &Heartbeat{
		interval: interval,
		notify:   notify,
	}
}

// Start begins ticking in the background and returns the function that
// stops it. Stop is safe to call more than once; once it returns notify
// is not called again.
func (h *Heartbeat) Start(ctx context.Context) (stop func()) {
	if h.interval <= 0 || h.notify == nil {
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	start := time.Now()

	go func() {
		defer close(done)
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// A tick and a cancel can be ready together
				if ctx.Err() != nil {
					return
				}
				h.notify(time.Since(start))
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}
