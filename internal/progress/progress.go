package progress

import "time"

// Stage identifies where a job is in its lifecycle.
type Stage string

const (
	StageQueued    Stage = "queued"
	StageEncoding  Stage = "encoding"
	StageCompleted Stage = "completed"
	StageError     Stage = "error"
)

// Level is the severity of a job log line surfaced to the display.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// Update conveys progress or stage changes for a job.
// Percent is 0..100 when known; negative means unknown.
type Update struct {
	JobID    string
	Stage    Stage
	Percent  float64
	Position int64 // current frame
	Length   int64 // expected total frames, 0 if unknown

	Elapsed time.Duration
	ETA     *time.Duration // optional
	Message string         // short human-friendly status line
}

// Log is a diagnostic line associated with a job.
type Log struct {
	JobID string
	Level Level
	Line  string
}

// Result is emitted once per job when it completes or fails.
type Result struct {
	JobID      string
	OutputPath string
	Bytes      int64
	Err        error // nil on success
}

// Registration announces a job to a display before it reports anything.
// Order is the job's position in the sweep; displays sort by it because jobs
// register concurrently.
type Registration struct {
	JobID string
	Order int
	Label string
}

// Reporter is implemented by the UI or any observer interested in progress
// events. Implementations must accept calls from many jobs concurrently.
type Reporter interface {
	Register(r Registration)
	Update(u Update)
	Log(l Log)
	Result(r Result)
}

// Discard is a Reporter that drops everything.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Register(Registration) {}
func (discard) Update(Update)         {}
func (discard) Log(Log)               {}
func (discard) Result(Result)         {}
