package ui

import (
	"time"

	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"

	"encsweep/internal/progress"
)

type jobState struct {
	id     string
	order  int
	label  string
	stage  progress.Stage
	status string
	err    error
	done   bool

	outputPath string
	bytes      int64
	percent    float64 // -1 means unknown
	position   int64
	length     int64
	elapsed    time.Duration
	eta        *time.Duration

	warnings    int
	lastWarning string

	spinner spinner.Model
	bar     bubblesprogress.Model
}

func newJobState(reg progress.Registration, styles Styles) *jobState {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner
	bar := bubblesprogress.New(
		bubblesprogress.WithDefaultGradient(),
		bubblesprogress.WithWidth(30),
		bubblesprogress.WithoutPercentage(),
	)
	return &jobState{
		id:      reg.JobID,
		order:   reg.Order,
		label:   reg.Label,
		stage:   progress.StageQueued,
		status:  "queued",
		percent: -1,
		spinner: sp,
		bar:     bar,
	}
}

func (js *jobState) apply(u progress.Update) {
	js.stage = u.Stage
	js.percent = u.Percent
	if u.Length > 0 {
		js.length = u.Length
	}
	if u.Position > 0 {
		js.position = u.Position
	}
	js.elapsed = u.Elapsed
	js.eta = u.ETA
	if u.Message != "" {
		js.status = u.Message
	}
}
