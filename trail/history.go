package trail

import (
	"time"

	"github.com/lixenwraith/cursorfx/vmath"
)

// Sample is one timestamped target position
type Sample struct {
	Pos vmath.Vec2
	At  time.Time
}

// History is a fixed-capacity sliding window of target samples, oldest first
type History struct {
	samples []Sample
	head    int
	count   int
}

// NewHistory creates a window holding at most capacity samples
func NewHistory(capacity int) *History {
	if capacity < 2 {
		capacity = 2
	}
	return &History{samples: make([]Sample, capacity)}
}

// Push appends a sample, evicting the oldest when full
func (h *History) Push(s Sample) {
	idx := (h.head + h.count) % len(h.samples)
	if h.count == len(h.samples) {
		h.samples[h.head] = s
		h.head = (h.head + 1) % len(h.samples)
		return
	}
	h.samples[idx] = s
	h.count++
}

// Len returns the number of held samples
func (h *History) Len() int {
	return h.count
}

// Cap returns the window capacity
func (h *History) Cap() int {
	return len(h.samples)
}

// Oldest returns the first sample in the window
func (h *History) Oldest() (Sample, bool) {
	if h.count == 0 {
		return Sample{}, false
	}
	return h.samples[h.head], true
}

// Newest returns the last pushed sample
func (h *History) Newest() (Sample, bool) {
	if h.count == 0 {
		return Sample{}, false
	}
	return h.samples[(h.head+h.count-1)%len(h.samples)], true
}

// Reset drops every sample
func (h *History) Reset() {
	h.head = 0
	h.count = 0
}

// Velocity estimates speed as distance(oldest, newest) / elapsed ms * scale
// Returns 0 with fewer than two samples or when no time has elapsed
func (h *History) Velocity(scale float64) float64 {
	if h.count < 2 {
		return 0
	}
	oldest, _ := h.Oldest()
	newest, _ := h.Newest()
	elapsed := float64(newest.At.Sub(oldest.At)) / float64(time.Millisecond)
	if elapsed <= 0 {
		return 0
	}
	v := oldest.Pos.Dist(newest.Pos) / elapsed * scale
	if !vmath.IsFinite(v) {
		return 0
	}
	return v
}
