// Package report prints sweep results.
package report

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"encsweep/internal/model"
	"encsweep/internal/pipeline"
	"encsweep/internal/util/format"
)

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E"))
	failureStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

var errNoOutcome = errors.New("no outcome recorded")

// Print writes the banner, one line per failure and a summary table.
// configs[i] and outcomes[i] describe the same job. It returns the number of
// failed jobs; a config without an outcome counts as failed. Write errors are
// ignored.
func Print(w io.Writer, configs []model.EncodeConfig, outcomes []model.Outcome) int {
	type row struct {
		cfg model.EncodeConfig
		out model.Outcome
	}
	rows := make([]row, len(configs))
	var failed []row
	for i, cfg := range configs {
		r := row{cfg: cfg, out: model.Outcome{Config: cfg, Err: errNoOutcome}}
		if i < len(outcomes) {
			r.out = outcomes[i]
		}
		rows[i] = r
		if !r.out.Succeeded() {
			failed = append(failed, r)
		}
	}

	if len(failed) == 0 {
		fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("✓ all %d encodes succeeded", len(configs))))
	} else {
		fmt.Fprintln(w, failureStyle.Render(fmt.Sprintf("✗ %d of %d encodes failed", len(failed), len(configs))))
		for _, r := range failed {
			fmt.Fprintf(w, "  - %s: %v\n", r.cfg, r.out.Err)
		}
	}
	if len(configs) == 0 {
		return 0
	}

	tw := newTable(w, colIndex, colRes, colFPS, colCRF, colAudio,
		column{"Status", false}, column{"Size", true}, column{"Output", false})
	for i, r := range rows {
		status, size := "ok", format.HumanizeBytes(r.out.Bytes)
		if !r.out.Succeeded() {
			status, size = "failed", "-"
		}
		tw.AppendRow(table.Row{
			i + 1,
			r.cfg.Resolution.String(),
			frameRate(r.cfg),
			r.cfg.QualityFactor,
			yesNo(r.cfg.IncludeAudio),
			status,
			size,
			filepath.Base(r.out.OutputPath),
		})
	}
	tw.Render()
	return len(failed)
}

// PrintSource writes the probed source metadata.
func PrintSource(w io.Writer, stat *model.SourceStat) {
	if stat == nil {
		return
	}
	v := stat.Video
	audio := make([]string, 0, len(stat.AudioStreams))
	for _, a := range stat.AudioStreams {
		audio = append(audio, a.Codec)
	}
	audioDesc := "none"
	if len(audio) > 0 {
		audioDesc = strings.Join(audio, ", ")
	}

	tw := newTable(w, column{title: "Field"}, column{title: "Value"})
	tw.AppendRows([]table.Row{
		{"Path", stat.Path},
		{"Size", format.HumanizeBytes(stat.FileSize)},
		{"Duration", stat.Duration.String()},
		{"Video", fmt.Sprintf("%s %s %s fps %s", v.Codec, model.DimensionsLabel(v.Dimensions()), model.FormatFrameRate(v.FrameRate), v.PixFmt)},
		{"Audio", audioDesc},
	})
	tw.Render()
}

// PrintPlan writes the job matrix with each job's validation verdict.
// It returns the number of jobs that would be rejected.
func PrintPlan(w io.Writer, plan []pipeline.PlannedJob) int {
	tw := newTable(w, colIndex, colRes, column{"Target", false}, colFPS, colCRF, colAudio,
		column{"Verdict", false}, column{"Output", false})
	rejected := 0
	for i, p := range plan {
		verdict := "run"
		if p.Err != nil {
			verdict = "skip: " + p.Err.Error()
			rejected++
		}
		cfg := p.Job.Config
		tw.AppendRow(table.Row{
			i + 1,
			cfg.Resolution.String(),
			p.Target.String(),
			frameRate(cfg),
			cfg.QualityFactor,
			yesNo(cfg.IncludeAudio),
			verdict,
			p.Job.OutputPath,
		})
	}
	tw.Render()
	fmt.Fprintln(w, faintStyle.Render(fmt.Sprintf("%d job(s), %d would run, %d rejected", len(plan), len(plan)-rejected, rejected)))
	return rejected
}

func frameRate(cfg model.EncodeConfig) string {
	if cfg.KeepsSourceRate() {
		return "source"
	}
	return model.FormatFrameRate(cfg.FrameRate)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
