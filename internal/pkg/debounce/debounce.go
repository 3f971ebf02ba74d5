// Package debounce provides a cancellable delayed-commit value holder,
// used to collapse bursts of search input into a single committed query.
package debounce

import (
	"sync"
	"time"
)

// DefaultQuiet is the quiet window after the last Set before a commit fires.
const DefaultQuiet = 300 * time.Millisecond

// Debouncer holds a pending value and commits it after a quiet period.
// Each Set cancels the previous timer and arms a fresh one, so for any burst
// of updates inside the window exactly one commit fires, carrying the last
// value. At most one timer is pending at a time.
//
// Commits carry a monotonically increasing sequence number. Consumers that
// fire asynchronous work per commit should record the sequence and discard
// results that arrive for anything but the latest one.
type Debouncer[T any] struct {
	mu      sync.Mutex
	quiet   time.Duration
	timer   *time.Timer
	pending T
	seq     uint64
	stopped bool
	commit  func(v T, seq uint64)
}

// New creates a Debouncer invoking commit after each quiet window.
// A non-positive quiet duration falls back to DefaultQuiet.
func New[T any](quiet time.Duration, commit func(v T, seq uint64)) *Debouncer[T] {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer[T]{quiet: quiet, commit: commit}
}

// Set updates the pending value and rearms the timer.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending = v
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() {
		d.fire(seq)
	})
}

// fire commits the pending value if no newer Set arrived meanwhile.
func (d *Debouncer[T]) fire(seq uint64) {
	d.mu.Lock()
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.mu.Unlock()

	d.commit(v, seq)
}

// Pending returns the most recent value passed to Set, committed or not.
func (d *Debouncer[T]) Pending() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Seq returns the latest sequence number handed out. A consumer holding a
// commit with a lower sequence is looking at a stale result.
func (d *Debouncer[T]) Seq() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seq
}

// cancelPending stops the armed timer without tearing the debouncer down.
// The sequence still advances so any in-flight fire becomes a no-op.
func (d *Debouncer[T]) cancelPending() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancels any pending timer. Further Sets are ignored; use on teardown
// so a late commit never touches released state.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Search debounces query strings with a minimum-length gate: inputs shorter
// than MinLength (after trimming) never commit and invoke the clear callback
// instead, so one- and two-character queries don't reach the network at all.
type Search struct {
	d         *Debouncer[string]
	minLength int
	clear     func()
}

// NewSearch creates a debounced search input. minLength <= 0 disables the gate.
func NewSearch(quiet time.Duration, minLength int, commit func(q string, seq uint64), clear func()) *Search {
	s := &Search{minLength: minLength, clear: clear}
	s.d = New(quiet, commit)
	return s
}

// Input feeds one keystroke's worth of query text.
func (s *Search) Input(q string) {
	if s.minLength > 0 && len([]rune(q)) < s.minLength {
		// Too short to search: cancel whatever was pending and clear results.
		s.d.cancelPending()
		if s.clear != nil {
			s.clear()
		}
		return
	}
	s.d.Set(q)
}

// Stop cancels the underlying debouncer.
func (s *Search) Stop() { s.d.Stop() }

// Seq exposes the latest sequence number for stale-result fencing.
func (s *Search) Seq() uint64 { return s.d.Seq() }
