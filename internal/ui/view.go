package ui

import (
	"fmt"
	"strings"
	"time"

	"encsweep/internal/progress"
	"encsweep/internal/util/format"
)

func (m Model) viewHeader() string {
	done, failed, total := 0, 0, len(m.jobOrder)
	for _, id := range m.jobOrder {
		js := m.jobs[id]
		if js.done {
			done++
			if js.err != nil {
				failed++
			}
		}
	}
	title := m.styles.Title.Render(m.title)
	counts := fmt.Sprintf("Jobs: %d/%d done", done, total)
	if failed > 0 {
		counts += m.styles.Error.Render(fmt.Sprintf(" • %d failed", failed))
	}
	sub := m.styles.Subtitle.Render(m.subtitle + " • " + counts + " • q: quit")
	return title + "\n" + sub
}

func (m Model) viewJobs() string {
	var b strings.Builder
	for _, id := range m.jobOrder {
		b.WriteString(m.viewJob(m.jobs[id]))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewJob(js *jobState) string {
	stageStyle := m.styles.JobInfo
	switch js.stage {
	case progress.StageQueued:
		stageStyle = m.styles.StageWait
	case progress.StageEncoding:
		stageStyle = m.styles.StageEnc
	case progress.StageCompleted:
		stageStyle = m.styles.Success
	case progress.StageError:
		stageStyle = m.styles.Error
	}

	line1 := fmt.Sprintf("%s  %s", m.styles.JobTitle.Render(js.label), stageStyle.Render(string(js.stage)))

	var line2 string
	switch {
	case js.done && js.err == nil:
		line2 = m.styles.Success.Render("✓ encoded: " + format.HumanizeBytes(js.bytes))
	case js.done:
		line2 = m.styles.Error.Render("✗ failed: " + truncate(js.err.Error(), 120))
	case js.percent >= 0:
		line2 = fmt.Sprintf("%s %s %5.1f%%  %s",
			js.bar.ViewAs(js.percent/100.0),
			frames(js.position, js.length),
			js.percent,
			m.styles.Faint.Render(timing(js.elapsed, js.eta)))
	default:
		line2 = m.styles.Spinner.Render(js.spinner.View()) + " " + m.styles.Faint.Render(js.status)
	}

	lines := []string{line1, line2}
	if !js.done && js.percent >= 0 && js.status != "" {
		lines = append(lines, m.styles.JobInfo.Render(js.status))
	}
	if js.warnings > 0 {
		lines = append(lines, m.styles.Warning.Render(fmt.Sprintf("⚠ %d warning(s), last: %s", js.warnings, truncate(js.lastWarning, 100))))
	}
	return m.styles.Box.Render(strings.Join(lines, "\n"))
}

func frames(pos, length int64) string {
	if length <= 0 {
		return fmt.Sprintf("%d/?", pos)
	}
	return fmt.Sprintf("%d/%d", pos, length)
}

func timing(elapsed time.Duration, eta *time.Duration) string {
	s := "elapsed " + elapsed.Round(time.Second).String()
	if eta != nil {
		s += " • eta " + eta.Round(time.Second).String()
	}
	return s
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if n <= 0 || len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
