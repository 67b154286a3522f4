package progress

import (
	"math"
	"time"
)

// Tracker turns duration, frame-rate and frame ticks into completion state
// for a single job. It is not safe for concurrent use.
type Tracker struct {
	duration  time.Duration
	frameRate float64
	fixedRate bool

	total   int64
	current int64

	started time.Time
	now     func() time.Time
}

// NewTracker returns a tracker. A positive targetRate pins the frame-rate used
// for the expected frame count; otherwise the parsed stream rate is used.
func NewTracker(targetRate float64) *Tracker {
	t := &Tracker{now: time.Now}
	if targetRate > 0 {
		t.frameRate = targetRate
		t.fixedRate = true
	}
	t.started = t.now()
	return t
}

// SetDuration records the source duration.
func (t *Tracker) SetDuration(d time.Duration) {
	t.duration = d
	t.recompute()
}

// SetStreamRate records the parsed stream frame-rate unless a target rate is pinned.
func (t *Tracker) SetStreamRate(fps float64) {
	if t.fixedRate || fps <= 0 {
		return
	}
	t.frameRate = fps
	t.recompute()
}

func (t *Tracker) recompute() {
	if t.duration <= 0 || t.frameRate <= 0 {
		return
	}
	t.total = int64(math.Floor(t.duration.Seconds() * t.frameRate))
}

// Tick records the current encoded frame number.
func (t *Tracker) Tick(frame int64) {
	if frame < 0 {
		return
	}
	t.current = frame
}

// Total is the expected frame count, 0 until both duration and rate are known.
func (t *Tracker) Total() int64 { return t.total }

// Current is the last reported frame.
func (t *Tracker) Current() int64 { return t.current }

// Percent returns completion in 0..100, or -1 while the total is unknown.
func (t *Tracker) Percent() float64 {
	if t.total <= 0 {
		return -1
	}
	p := float64(t.current) / float64(t.total) * 100
	if p > 100 {
		return 100
	}
	return p
}

// Elapsed is the time since the tracker was created.
func (t *Tracker) Elapsed() time.Duration {
	return t.now().Sub(t.started)
}

// ETA extrapolates the remaining time from the average rate so far.
func (t *Tracker) ETA() (time.Duration, bool) {
	if t.total <= 0 || t.current <= 0 {
		return 0, false
	}
	remaining := t.total - t.current
	if remaining <= 0 {
		return 0, true
	}
	perFrame := float64(t.Elapsed()) / float64(t.current)
	return time.Duration(perFrame * float64(remaining)), true
}
