package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/tubefetch/tubefetch/internal/model"
)

// jobRow is one active download in the list. It is keyed by job ID and
// updated in place on every reconciliation pass.
type jobRow struct {
	id string

	title     *widget.Label
	status    *widget.Label
	progress  *widget.ProgressBar
	cancelBtn *widget.Button

	box *fyne.Container
}

// newJobRow builds the widgets for a freshly active job
func newJobRow(job model.Job, onCancel func(id string)) *jobRow {
	row := &jobRow{
		id:       job.ID,
		title:    widget.NewLabel(job.Title),
		status:   widget.NewLabel(""),
		progress: widget.NewProgressBar(),
	}
	row.title.Truncation = fyne.TextTruncateEllipsis
	row.cancelBtn = widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
		onCancel(row.id)
	})

	row.box = container.NewBorder(nil, nil, nil, row.cancelBtn,
		container.NewVBox(row.title, row.progress, row.status))

	row.Update(job)
	return row
}

// Update refreshes the row widgets from the job without recreating them
func (r *jobRow) Update(job model.Job) {
	if job.Title != "" && r.title.Text != job.Title {
		r.title.SetText(job.Title)
	}
	r.progress.SetValue(job.Progress / 100)

	text := statusText(job)
	if r.status.Text != text {
		r.status.SetText(text)
	}
}

// statusText renders the status line shown under the progress bar
func statusText(job model.Job) string {
	switch job.Status {
	case model.StatusStarting:
		return "Starting..."
	case model.StatusDownloading:
		if job.Converting {
			return fmt.Sprintf("Converting (%.0f%%)", job.Progress)
		}
		return fmt.Sprintf("Downloading %.0f%%", job.Progress)
	case model.StatusConverting:
		return "Converting..."
	case model.StatusDownloadComplete:
		return "Finishing..."
	case model.StatusCompleted:
		return "Completed"
	case model.StatusFailed:
		return "Failed"
	default:
		return job.Status.String()
	}
}
