package runner

import (
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type stepStatus string

const (
	statusOK      stepStatus = "ok"
	statusFailed  stepStatus = "failed"
	statusSkipped stepStatus = "skipped"
)

type stepRecord struct {
	job      string
	step     string
	status   stepStatus
	duration time.Duration
}

// report accumulates per-step outcomes and renders them as a summary table
// at the end of the run.
type report struct {
	records []stepRecord
}

func (r *report) add(jobName, stepName string, status stepStatus, duration time.Duration) {
	r.records = append(r.records, stepRecord{
		job:      jobName,
		step:     stepName,
		status:   status,
		duration: duration,
	})
}

func (r *report) render(w io.Writer) {
	if len(r.records) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"JOB", "STEP", "STATUS", "DURATION"})

	for _, rec := range r.records {
		status := string(rec.status)
		switch rec.status {
		case statusOK:
			status = text.FgGreen.Sprint(status)
		case statusFailed:
			status = text.FgRed.Sprint(status)
		case statusSkipped:
			status = text.FgYellow.Sprint(status)
		}

		duration := ""
		if rec.status != statusSkipped {
			duration = rec.duration.Round(time.Millisecond).String()
		}

		t.AppendRow(table.Row{rec.job, rec.step, status, duration})
	}

	t.Render()
}
