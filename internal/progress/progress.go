// Package progress collapses rapid, repeated "still searching" events
// into a single log line per quiet interval using a time.AfterFunc-based
// debounce: wait for a round's batches to settle, then log once.
package progress

import (
	"sync"
	"time"
)

// Reporter debounces calls to Note behind a fixed quiet interval.
type Reporter struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
}

// NewReporter returns a Reporter that fires at most once per interval of
// quiet (no further Note calls).
func NewReporter(interval time.Duration) *Reporter {
	return &Reporter{interval: interval}
}

// Note schedules f to run once interval has elapsed with no further Note
// calls, restarting the timer on every call.
func (r *Reporter) Note(f func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.interval, f)
}
