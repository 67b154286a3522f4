// Package ui renders concurrently running encode jobs in the terminal.
package ui

import (
	"context"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"encsweep/internal/progress"
)

// Model is the display container shared by every job. Jobs register into it
// concurrently through a teaReporter; each job only ever mutates its own row.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	title    string
	subtitle string

	jobOrder []string
	jobs     map[string]*jobState

	workDone bool
	workErr  error

	width  int
	styles Styles

	// Internal event channel used by reporter to feed tea messages
	eventCh chan tea.Msg
}

// NewModel returns an empty container. cancel is called when the user quits.
func NewModel(ctx context.Context, cancel context.CancelFunc, title, subtitle string) Model {
	return Model{
		ctx:      ctx,
		cancel:   cancel,
		title:    title,
		subtitle: subtitle,
		jobs:     make(map[string]*jobState),
		styles:   defaultStyles(),
		eventCh:  make(chan tea.Msg, 256),
	}
}

func (m Model) Init() tea.Cmd {
	return m.listenEventsCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case jobRegisterMsg:
		var tick tea.Cmd
		if _, ok := m.jobs[msg.R.JobID]; !ok {
			js := newJobState(msg.R, m.styles)
			m.jobs[js.id] = js
			m.jobOrder = append(m.jobOrder, js.id)
			sort.SliceStable(m.jobOrder, func(i, j int) bool {
				return m.jobs[m.jobOrder[i]].order < m.jobs[m.jobOrder[j]].order
			})
			tick = js.spinner.Tick
		}
		return m, tea.Batch(tick, m.listenEventsCmd())

	case jobUpdateMsg:
		if js, ok := m.jobs[msg.U.JobID]; ok && !js.done {
			js.apply(msg.U)
		}
		return m, m.listenEventsCmd()

	case jobLogMsg:
		if js, ok := m.jobs[msg.L.JobID]; ok && msg.L.Level >= progress.LevelWarning {
			js.warnings++
			js.lastWarning = strings.TrimRight(msg.L.Line, "\r\n")
		}
		return m, m.listenEventsCmd()

	case jobResultMsg:
		if js, ok := m.jobs[msg.R.JobID]; ok {
			js.done = true
			js.err = msg.R.Err
			js.outputPath = msg.R.OutputPath
			js.bytes = msg.R.Bytes
			if msg.R.Err == nil {
				js.stage = progress.StageCompleted
				js.percent = 100
			} else {
				js.stage = progress.StageError
				js.percent = -1
			}
		}
		return m, m.listenEventsCmd()

	case workDoneMsg:
		m.workDone = true
		m.workErr = msg.Err
		return m, tea.Quit
	}

	// Spinner ticks carry their spinner's ID, so only the owner advances.
	var cmds []tea.Cmd
	for _, id := range m.jobOrder {
		js := m.jobs[id]
		if js.done {
			continue
		}
		var c tea.Cmd
		js.spinner, c = js.spinner.Update(msg)
		if c != nil {
			cmds = append(cmds, c)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	return m.viewHeader() + "\n\n" + m.viewJobs()
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return nil
		case msg := <-m.eventCh:
			return msg
		}
	}
}

// teaReporter turns Reporter calls into tea messages. Progress updates and
// info logs are dropped when the display falls behind; registrations, stage
// changes, warnings and results are always delivered unless the display has
// gone away.
type teaReporter struct {
	ch   chan tea.Msg
	done <-chan struct{}
}

func (r teaReporter) send(msg tea.Msg) {
	select {
	case r.ch <- msg:
	case <-r.done:
	}
}

func (r teaReporter) Register(reg progress.Registration) {
	r.send(jobRegisterMsg{R: reg})
}

func (r teaReporter) Update(u progress.Update) {
	if u.Stage == progress.StageCompleted || u.Stage == progress.StageError {
		r.send(jobUpdateMsg{U: u})
		return
	}
	select {
	case r.ch <- jobUpdateMsg{U: u}:
	default:
	}
}

func (r teaReporter) Log(l progress.Log) {
	if l.Level >= progress.LevelWarning {
		r.send(jobLogMsg{L: l})
		return
	}
	select {
	case r.ch <- jobLogMsg{L: l}:
	default:
	}
}

func (r teaReporter) Result(res progress.Result) {
	r.send(jobResultMsg{R: res})
}
