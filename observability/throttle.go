package observability

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Throttled rate-limits a hot-path warning; suppressed entries are counted and
// reported on the next one that gets through
type Throttled struct {
	mu         sync.Mutex
	logger     *zap.Logger
	limiter    *rate.Limiter
	suppressed int
}

// NewThrottled allows one entry per interval with the given burst
func NewThrottled(logger *zap.Logger, interval time.Duration, burst int) *Throttled {
	return &Throttled{
		logger:  logger,
		limiter: rate.NewLimiter(rate.Every(interval), burst),
	}
}

// Warn logs msg if the limiter allows it, returns whether it was written
func (t *Throttled) Warn(msg string, fields ...zap.Field) bool {
	return t.warnAt(time.Now(), msg, fields...)
}

func (t *Throttled) warnAt(now time.Time, msg string, fields ...zap.Field) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.limiter.AllowN(now, 1) {
		t.suppressed++
		return false
	}
	if t.suppressed > 0 {
		fields = append(fields, zap.Int("suppressed", t.suppressed))
		t.suppressed = 0
	}
	t.logger.Warn(msg, fields...)
	return true
}

// Suppressed returns the number of entries dropped since the last written one
func (t *Throttled) Suppressed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.suppressed
}
