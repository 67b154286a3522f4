package ui

import (
	"math"
	"sync"

	"github.com/rs/zerolog"

	"encsweep/internal/log"
	"encsweep/internal/progress"
	"encsweep/internal/util/format"
)

// PlainReporter writes job progress as log entries, for when stdout is not a
// terminal. Progress is logged at most once per step percent per job.
type PlainReporter struct {
	logger zerolog.Logger
	step   float64

	mu     sync.Mutex
	labels map[string]string
	last   map[string]float64
}

// NewPlainReporter returns a reporter logging through l every step percent.
func NewPlainReporter(l zerolog.Logger, step float64) *PlainReporter {
	if step <= 0 {
		step = 10
	}
	return &PlainReporter{
		logger: l,
		step:   step,
		labels: make(map[string]string),
		last:   make(map[string]float64),
	}
}

func (r *PlainReporter) Register(reg progress.Registration) {
	r.mu.Lock()
	r.labels[reg.JobID] = reg.Label
	r.last[reg.JobID] = -1
	r.mu.Unlock()

	r.logger.Info().Str(log.FieldJobID, reg.JobID).Msg(reg.Label)
}

func (r *PlainReporter) Update(u progress.Update) {
	if u.Stage != progress.StageEncoding || u.Percent < 0 {
		return
	}
	bucket := math.Floor(u.Percent/r.step) * r.step

	r.mu.Lock()
	prev, ok := r.last[u.JobID]
	if ok && bucket <= prev {
		r.mu.Unlock()
		return
	}
	r.last[u.JobID] = bucket
	label := r.labels[u.JobID]
	r.mu.Unlock()

	ev := r.logger.Info().
		Str(log.FieldJobID, u.JobID).
		Int64("frame", u.Position).
		Int64("frames", u.Length).
		Dur("elapsed", u.Elapsed)
	if u.ETA != nil {
		ev = ev.Dur("eta", *u.ETA)
	}
	ev.Msgf("%s %3.0f%%", label, bucket)
}

func (r *PlainReporter) Log(l progress.Log) {
	if l.Level < progress.LevelWarning {
		return
	}
	r.logger.Warn().Str(log.FieldJobID, l.JobID).Msg(l.Line)
}

func (r *PlainReporter) Result(res progress.Result) {
	r.mu.Lock()
	label := r.labels[res.JobID]
	r.mu.Unlock()

	if res.Err != nil {
		r.logger.Error().Str(log.FieldJobID, res.JobID).Err(res.Err).Msg(label + " failed")
		return
	}
	r.logger.Info().
		Str(log.FieldJobID, res.JobID).
		Str(log.FieldOutput, res.OutputPath).
		Str("size", format.HumanizeBytes(res.Bytes)).
		Msg(label + " encoded")
}
