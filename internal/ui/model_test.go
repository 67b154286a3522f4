package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"encsweep/internal/progress"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewModel(ctx, cancel, "encsweep", "clip.mp4")
}

func step(t *testing.T, m Model, msg any) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModel_RegistrationSortedByOrder(t *testing.T) {
	m := newTestModel(t)
	for _, reg := range []progress.Registration{
		{JobID: "job-3", Order: 2, Label: "RES: 480p"},
		{JobID: "job-1", Order: 0, Label: "RES: 1080p"},
		{JobID: "job-2", Order: 1, Label: "RES: 720p"},
		{JobID: "job-1", Order: 0, Label: "duplicate"},
	} {
		m = step(t, m, jobRegisterMsg{R: reg})
	}

	if got := strings.Join(m.jobOrder, ","); got != "job-1,job-2,job-3" {
		t.Errorf("order = %s", got)
	}
	if m.jobs["job-1"].label != "RES: 1080p" {
		t.Errorf("duplicate registration replaced the job")
	}
}

func TestModel_ProgressAndResults(t *testing.T) {
	m := newTestModel(t)
	m = step(t, m, jobRegisterMsg{R: progress.Registration{JobID: "a", Order: 0, Label: "RES: 720p, FPS: 30, CRF: 20"}})
	m = step(t, m, jobRegisterMsg{R: progress.Registration{JobID: "b", Order: 1, Label: "RES: 720p, FPS: 30, CRF: 40"}})

	eta := 5 * time.Second
	m = step(t, m, jobUpdateMsg{U: progress.Update{JobID: "a", Stage: progress.StageEncoding, Percent: 50, Position: 150, Length: 300, Elapsed: 5 * time.Second, ETA: &eta, Message: "encoding..."}})
	m = step(t, m, jobLogMsg{L: progress.Log{JobID: "a", Level: progress.LevelWarning, Line: "codec frame size is not set\r\n"}})

	a := m.jobs["a"]
	if a.position != 150 || a.length != 300 || a.percent != 50 {
		t.Errorf("job a = %+v", a)
	}
	if a.warnings != 1 || a.lastWarning != "codec frame size is not set" {
		t.Errorf("warnings = %d %q", a.warnings, a.lastWarning)
	}
	if b := m.jobs["b"]; b.percent != -1 || b.position != 0 {
		t.Errorf("job b touched by a's update: %+v", b)
	}

	view := m.View()
	for _, want := range []string{"150/300", "50.0%", "eta 5s", "1 warning(s)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m = step(t, m, jobResultMsg{R: progress.Result{JobID: "a", OutputPath: "/o/a.mp4", Bytes: 1_500_000}})
	m = step(t, m, jobResultMsg{R: progress.Result{JobID: "b", Err: errors.New("ffmpeg fatal: Invalid NAL unit size")}})
	// Late progress after completion is ignored.
	m = step(t, m, jobUpdateMsg{U: progress.Update{JobID: "a", Stage: progress.StageEncoding, Percent: 10}})

	view = m.View()
	for _, want := range []string{"✓ encoded: 1.5 MB", "✗ failed: ffmpeg fatal: Invalid NAL unit size", "Jobs: 2/2 done", "1 failed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if m.jobs["a"].stage != progress.StageCompleted {
		t.Errorf("job a stage = %s", m.jobs["a"].stage)
	}
}

func TestModel_WorkDoneQuits(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(workDoneMsg{Err: nil})
	if !next.(Model).workDone {
		t.Error("workDone not set")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestModel_QuitCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewModel(ctx, cancel, "t", "s")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	select {
	case <-ctx.Done():
	default:
		t.Error("quitting did not cancel the work context")
	}
}

func TestTeaReporter_DoesNotBlockAfterDisplayGone(t *testing.T) {
	done := make(chan struct{})
	close(done)
	rep := teaReporter{ch: make(chan tea.Msg), done: done}

	finished := make(chan struct{})
	go func() {
		rep.Register(progress.Registration{JobID: "x"})
		rep.Update(progress.Update{JobID: "x", Stage: progress.StageEncoding})
		rep.Update(progress.Update{JobID: "x", Stage: progress.StageCompleted})
		rep.Log(progress.Log{JobID: "x"})
		rep.Result(progress.Result{JobID: "x"})
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("reporter blocked")
	}
}

func TestTeaReporter_WarningsWaitForBacklog(t *testing.T) {
	ch := make(chan tea.Msg, 1)
	ch <- jobUpdateMsg{}
	rep := teaReporter{ch: ch, done: make(chan struct{})}

	rep.Log(progress.Log{JobID: "x", Level: progress.LevelInfo, Line: "chatter"})

	delivered := make(chan struct{})
	go func() {
		rep.Log(progress.Log{JobID: "x", Level: progress.LevelWarning, Line: "VBV underflow"})
		close(delivered)
	}()
	select {
	case <-delivered:
		t.Fatal("warning returned while the channel was full")
	case <-time.After(20 * time.Millisecond):
	}

	<-ch
	got := (<-ch).(jobLogMsg)
	<-delivered
	if got.L.Line != "VBV underflow" {
		t.Errorf("delivered %q, want the warning", got.L.Line)
	}
}

func TestTeaReporter_ConcurrentRegistration(t *testing.T) {
	m := newTestModel(t)
	rep := teaReporter{ch: m.eventCh, done: m.ctx.Done()}

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rep.Register(progress.Registration{JobID: string(rune('a' + i)), Order: i})
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		m = step(t, m, <-m.eventCh)
	}
	if len(m.jobOrder) != n {
		t.Fatalf("registered %d jobs, want %d", len(m.jobOrder), n)
	}
	for i, id := range m.jobOrder {
		if m.jobs[id].order != i {
			t.Errorf("position %d holds order %d", i, m.jobs[id].order)
		}
	}
}

func TestPlainReporter_ThrottlesProgress(t *testing.T) {
	var buf bytes.Buffer
	rep := NewPlainReporter(zerolog.New(&buf), 25)

	rep.Register(progress.Registration{JobID: "j", Label: "RES: 720p"})
	for _, p := range []float64{1, 10, 26, 30, 51, 99, 100} {
		rep.Update(progress.Update{JobID: "j", Stage: progress.StageEncoding, Percent: p})
	}
	rep.Log(progress.Log{JobID: "j", Level: progress.LevelInfo, Line: "dropped"})
	rep.Log(progress.Log{JobID: "j", Level: progress.LevelWarning, Line: "kept warning"})
	rep.Result(progress.Result{JobID: "j", OutputPath: "/o.mp4", Bytes: 2000})

	out := buf.String()
	// register + buckets 0,25,50,75,100 + warning + result
	if got := strings.Count(out, "\n"); got != 8 {
		t.Errorf("got %d lines:\n%s", got, out)
	}
	if strings.Contains(out, "dropped") || !strings.Contains(out, "kept warning") {
		t.Errorf("log filtering wrong:\n%s", out)
	}
	if !strings.Contains(out, "RES: 720p encoded") || !strings.Contains(out, "2.0 kB") {
		t.Errorf("result line missing:\n%s", out)
	}
}
