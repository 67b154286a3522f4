package progress

import (
	"testing"
	"time"
)

func TestTracker_TotalAndPercent(t *testing.T) {
	tr := NewTracker(0)
	if tr.Percent() != -1 {
		t.Fatalf("Percent() before any info = %v, want -1", tr.Percent())
	}

	tr.SetDuration(10 * time.Second)
	if tr.Total() != 0 {
		t.Fatalf("Total() with duration only = %d, want 0", tr.Total())
	}

	tr.SetStreamRate(30)
	if tr.Total() != 300 {
		t.Fatalf("Total() = %d, want 300", tr.Total())
	}

	tr.Tick(150)
	if got := tr.Percent(); got != 50 {
		t.Errorf("Percent() = %v, want 50", got)
	}

	tr.Tick(400)
	if got := tr.Percent(); got != 100 {
		t.Errorf("Percent() past total = %v, want 100", got)
	}
}

func TestTracker_RateOrder(t *testing.T) {
	tr := NewTracker(0)
	tr.SetStreamRate(25)
	tr.SetDuration(4 * time.Second)
	if tr.Total() != 100 {
		t.Errorf("Total() = %d, want 100", tr.Total())
	}
}

func TestTracker_TargetRatePinned(t *testing.T) {
	tr := NewTracker(24)
	tr.SetDuration(10 * time.Second)
	tr.SetStreamRate(60)
	if tr.Total() != 240 {
		t.Errorf("Total() = %d, want 240", tr.Total())
	}
}

func TestTracker_ETA(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := base
	tr := NewTracker(30)
	tr.now = func() time.Time { return clock }
	tr.started = base

	tr.SetDuration(10 * time.Second)
	if _, ok := tr.ETA(); ok {
		t.Fatal("ETA() ok before any frame")
	}

	clock = base.Add(5 * time.Second)
	tr.Tick(100)
	eta, ok := tr.ETA()
	if !ok {
		t.Fatal("ETA() not ok")
	}
	if eta != 10*time.Second {
		t.Errorf("ETA() = %v, want 10s", eta)
	}
	if tr.Elapsed() != 5*time.Second {
		t.Errorf("Elapsed() = %v, want 5s", tr.Elapsed())
	}
}
