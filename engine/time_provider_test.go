package engine

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(5 * time.Millisecond)
	t2 := provider.Now()

	if !t2.After(t1) {
		t.Errorf("Expected t2 after t1, got t1=%v t2=%v", t1, t2)
	}
	if diff := t2.Sub(t1); diff < 5*time.Millisecond {
		t.Errorf("Expected at least 5ms difference, got %v", diff)
	}
	if !strings.Contains(t1.String(), " m=") {
		t.Errorf("Expected a monotonic reading, got %v", t1)
	}
}

func TestMockTimeProvider(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)

	if now := mock.Now(); !now.Equal(start) {
		t.Errorf("Expected initial time %v, got %v", start, now)
	}

	mock.Advance(16 * time.Millisecond)
	mock.Advance(16 * time.Millisecond)
	if want := start.Add(32 * time.Millisecond); !mock.Now().Equal(want) {
		t.Errorf("Expected %v after two frames, got %v", want, mock.Now())
	}

	reset := start.Add(time.Hour)
	mock.SetTime(reset)
	if !mock.Now().Equal(reset) {
		t.Errorf("Expected %v after SetTime, got %v", reset, mock.Now())
	}
}

func TestMockTimeProviderConcurrentAdvance(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = mock.Now()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				mock.Advance(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	if want := start.Add(200 * time.Millisecond); !mock.Now().Equal(want) {
		t.Errorf("Expected %v after concurrent advances, got %v", want, mock.Now())
	}
}

func TestTimeProviderInterface(t *testing.T) {
	var _ TimeProvider = wallClock{}
	var _ TimeProvider = &MockTimeProvider{}
}
