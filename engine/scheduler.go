package engine

import (
	"sort"
	"time"
)

// FrameID identifies a pending frame callback, zero is never issued
type FrameID uint64

// FrameFunc runs once on the next tick after it was requested
type FrameFunc func(now time.Time)

type frameEntry struct {
	id FrameID
	fn FrameFunc
}

// Scheduler is a cooperative, display-synchronized callback queue
// Animation chains resubmit themselves from inside their callback, so a callback
// requested during tick N runs in tick N+1. Due deadlines fire at the start of a
// tick, before frame callbacks. Not safe for concurrent use: the owning loop
// goroutine is the only caller
type Scheduler struct {
	clock TimeProvider

	nextFrameID uint64
	pending     []frameEntry
	running     []frameEntry

	nextDeadlineID uint64
	deadlines      []*Deadline

	frame uint64
}

// NewScheduler creates a scheduler reading time from clock
func NewScheduler(clock TimeProvider) *Scheduler {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	return &Scheduler{
		clock:   clock,
		pending: make([]frameEntry, 0, 8),
	}
}

// Now returns the scheduler clock reading
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// FrameNumber returns the count of completed ticks
func (s *Scheduler) FrameNumber() uint64 {
	return s.frame
}

// RequestFrame queues fn for the next tick and returns its cancellation handle
func (s *Scheduler) RequestFrame(fn FrameFunc) FrameID {
	s.nextFrameID++
	id := FrameID(s.nextFrameID)
	s.pending = append(s.pending, frameEntry{id: id, fn: fn})
	return id
}

// CancelFrame drops a queued callback; unknown, zero or already-run ids are ignored
// A callback canceled by an earlier callback of the same tick does not run
func (s *Scheduler) CancelFrame(id FrameID) {
	if id == 0 {
		return
	}
	for i := range s.pending {
		if s.pending[i].id == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
	for i := range s.running {
		if s.running[i].id == id {
			s.running[i].fn = nil
			return
		}
	}
}

// PendingFrames returns the number of callbacks queued for the next tick
func (s *Scheduler) PendingFrames() int {
	return len(s.pending)
}

// Tick fires due deadlines, then runs every callback queued before the tick began
// Frames requested by a deadline callback wait for the next tick like any other
func (s *Scheduler) Tick() {
	now := s.clock.Now()

	s.running, s.pending = s.pending, s.running[:0]
	s.fireDeadlines(now)

	for i := 0; i < len(s.running); i++ {
		fn := s.running[i].fn
		if fn == nil {
			continue
		}
		s.running[i].fn = nil
		fn(now)
	}
	s.running = s.running[:0]
	s.frame++
}

// fireDeadlines runs due deadlines ordered by due time, then registration order
func (s *Scheduler) fireDeadlines(now time.Time) {
	var due []*Deadline
	for _, d := range s.deadlines {
		if d.armed && !now.Before(d.at) {
			due = append(due, d)
		}
	}
	if len(due) == 0 {
		return
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].at.Before(due[j].at)
	})
	for _, d := range due {
		// An earlier deadline may have stopped or re-armed this one
		if !d.armed || now.Before(d.at) {
			continue
		}
		d.armed = false
		if d.oneShot {
			d.Release()
		}
		d.fire(now)
	}
}

// Deadlines returns the number of registered deadlines, armed or not
func (s *Scheduler) Deadlines() int {
	return len(s.deadlines)
}

// ArmedDeadlines returns the number of deadlines waiting to fire
func (s *Scheduler) ArmedDeadlines() int {
	n := 0
	for _, d := range s.deadlines {
		if d.armed {
			n++
		}
	}
	return n
}

func (s *Scheduler) unregister(d *Deadline) {
	for i, r := range s.deadlines {
		if r == d {
			s.deadlines = append(s.deadlines[:i], s.deadlines[i+1:]...)
			return
		}
	}
}
