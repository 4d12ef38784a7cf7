package engine

import "time"

// Deadline is an explicit due time re-computed on every qualifying event
// and checked by the Scheduler at the start of each tick. Replaces
// cancel-and-reschedule timer handles: re-arming only moves the due time
type Deadline struct {
	sched      *Scheduler
	id         uint64
	at         time.Time
	armed      bool
	oneShot    bool
	registered bool
	fire       func(now time.Time)
}

// NewDeadline registers a disarmed deadline that calls fire when due
func (s *Scheduler) NewDeadline(fire func(now time.Time)) *Deadline {
	s.nextDeadlineID++
	d := &Deadline{
		sched:      s,
		id:         s.nextDeadlineID,
		fire:       fire,
		registered: true,
	}
	s.deadlines = append(s.deadlines, d)
	return d
}

// AfterFunc registers a one-shot deadline due after delay
// The deadline unregisters itself once it fires
func (s *Scheduler) AfterFunc(delay time.Duration, fn func(now time.Time)) *Deadline {
	d := s.NewDeadline(fn)
	d.oneShot = true
	d.Reset(delay)
	return d
}

// Reset arms the deadline to fire delay after the scheduler's current time
func (d *Deadline) Reset(delay time.Duration) {
	d.ResetAt(d.sched.Now().Add(delay))
}

// ResetAt arms the deadline for an absolute due time
func (d *Deadline) ResetAt(at time.Time) {
	if !d.registered {
		return
	}
	d.at = at
	d.armed = true
}

// Stop disarms the deadline, returns true if it was armed
func (d *Deadline) Stop() bool {
	was := d.armed
	d.armed = false
	return was
}

// Release disarms and unregisters the deadline; it cannot be re-armed
func (d *Deadline) Release() {
	d.armed = false
	if !d.registered {
		return
	}
	d.registered = false
	d.sched.unregister(d)
}

// Armed reports whether the deadline is waiting to fire
func (d *Deadline) Armed() bool {
	return d.armed
}

// When returns the due time of an armed deadline, zero otherwise
func (d *Deadline) When() time.Time {
	if !d.armed {
		return time.Time{}
	}
	return d.at
}
