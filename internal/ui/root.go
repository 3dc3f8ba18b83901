package ui

import (
	"context"
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/tubefetch/tubefetch/internal/config"
	"github.com/tubefetch/tubefetch/internal/download"
	"github.com/tubefetch/tubefetch/internal/engine"
	"github.com/tubefetch/tubefetch/internal/model"
	"github.com/tubefetch/tubefetch/internal/platform"
)

// RootUI is the main window: fetch form on top, candidate selection in the
// middle, active downloads at the bottom.
type RootUI struct {
	window   fyne.Window
	settings *config.Settings
	orch     *download.Orchestrator
	metadata *platform.MetadataService

	urlEntry    *widget.Entry
	fetchBtn    *widget.Button
	downloadBtn *widget.Button

	parallelSelect *widget.Select
	kindSelect     *widget.RadioGroup
	qualitySelect  *widget.Select

	selectAllCheck  *widget.Check
	candidateBox    *fyne.Container
	candidateChecks []*widget.Check
	batchLabel      *widget.Label
	syncingChecks   bool

	jobsBox      *fyne.Container
	rows         map[string]*jobRow
	cancelAllBtn *widget.Button

	notificationLabel *widget.Label
}

// NewRootUI creates and wires the main UI
func NewRootUI(window fyne.Window, app fyne.App, orch *download.Orchestrator, metadata *platform.MetadataService) *RootUI {
	ui := &RootUI{
		window:   window,
		settings: config.NewSettings(app),
		orch:     orch,
		metadata: metadata,
		rows:     make(map[string]*jobRow),
	}

	ui.buildWidgets()
	orch.SetChangeCallback(ui.onActiveJobsChanged)
	window.SetContent(ui.buildLayout())
	return ui
}

// Notifier returns the notification sink for the orchestrator
func (ui *RootUI) Notifier() download.Notifier {
	return notifier{ui: ui}
}

func (ui *RootUI) buildWidgets() {
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder("Video or playlist URL")
	ui.fetchBtn = widget.NewButton("Fetch", ui.onFetch)
	ui.downloadBtn = widget.NewButton("Download", ui.onDispatch)

	parallelOptions := make([]string, 0, config.MaxParallel)
	for i := config.MinParallel; i <= config.MaxParallel; i++ {
		parallelOptions = append(parallelOptions, strconv.Itoa(i))
	}
	ui.parallelSelect = widget.NewSelect(parallelOptions, func(value string) {
		if n, err := strconv.Atoi(value); err == nil {
			ui.settings.SetMaxParallelDownloads(n)
		}
	})
	ui.parallelSelect.SetSelected(strconv.Itoa(ui.settings.GetMaxParallelDownloads()))

	ui.kindSelect = widget.NewRadioGroup([]string{engine.KindVideo, engine.KindAudio}, func(value string) {
		ui.settings.SetDownloadKind(value)
	})
	ui.kindSelect.Horizontal = true
	ui.kindSelect.SetSelected(ui.settings.GetDownloadKind())

	ui.qualitySelect = widget.NewSelect(ui.settings.GetVideoQualityOptions(), func(value string) {
		ui.settings.SetVideoQuality(value)
	})
	ui.qualitySelect.SetSelected(ui.settings.GetVideoQuality())

	ui.selectAllCheck = widget.NewCheck("Select all", ui.onSelectAll)
	ui.selectAllCheck.Checked = true
	ui.batchLabel = widget.NewLabel("")
	ui.candidateBox = container.NewVBox()

	ui.jobsBox = container.NewVBox()
	ui.cancelAllBtn = widget.NewButton("Cancel all", ui.onCancelAll)

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Hide()
}

func (ui *RootUI) buildLayout() fyne.CanvasObject {
	fetchRow := container.NewBorder(nil, nil, nil, ui.fetchBtn, ui.urlEntry)

	controls := container.NewHBox(
		widget.NewLabel("Parallel:"), ui.parallelSelect,
		ui.kindSelect,
		widget.NewLabel("Quality:"), ui.qualitySelect,
		ui.downloadBtn,
	)

	candidates := container.NewBorder(
		container.NewHBox(ui.selectAllCheck, ui.batchLabel), nil, nil, nil,
		container.NewVScroll(ui.candidateBox),
	)

	jobs := container.NewBorder(
		container.NewHBox(widget.NewLabel("Downloads"), ui.cancelAllBtn), nil, nil, nil,
		container.NewVScroll(ui.jobsBox),
	)

	top := container.NewVBox(fetchRow, ui.notificationLabel, controls)
	split := container.NewVSplit(candidates, jobs)
	return container.NewBorder(top, nil, nil, nil, split)
}

// onFetch resolves the entered URL into a candidate batch
func (ui *RootUI) onFetch() {
	url := ui.urlEntry.Text
	if url == "" {
		ui.showNotification("Please enter a URL")
		return
	}

	ui.fetchBtn.Disable()
	ui.showNotification("Fetching...")

	go func() {
		batch, err := ui.metadata.FetchBatch(context.Background(), url)
		fyne.Do(func() {
			ui.fetchBtn.Enable()
			if err != nil {
				ui.showNotification(fmt.Sprintf("Fetch failed: %v", err))
				return
			}
			ui.hideNotification()
			ui.orch.LoadBatch(batch)
			ui.rebuildCandidates(batch)
		})
	}()
}

// rebuildCandidates replaces the candidate list for a new batch. The
// selection was just re-seeded with everything included.
func (ui *RootUI) rebuildCandidates(batch model.Batch) {
	ui.candidateBox.RemoveAll()
	ui.candidateChecks = ui.candidateChecks[:0]

	for i, video := range batch.Videos {
		index := i
		check := widget.NewCheck(video.DisplayTitle(), func(bool) {
			if ui.syncingChecks {
				return
			}
			ui.orch.Selection().Toggle(index)
			ui.syncSelectAllCheck()
		})
		check.Checked = true
		ui.candidateChecks = append(ui.candidateChecks, check)
		ui.candidateBox.Add(check)
	}

	if batch.Title != "" {
		ui.batchLabel.SetText(batch.Title)
	} else {
		ui.batchLabel.SetText(fmt.Sprintf("%d item(s)", len(batch.Videos)))
	}
	ui.syncSelectAllCheck()
	ui.candidateBox.Refresh()
}

// onSelectAll applies the select-all checkbox to the whole batch
func (ui *RootUI) onSelectAll(checked bool) {
	if ui.syncingChecks {
		return
	}
	if checked {
		ui.orch.Selection().SelectAll()
	} else {
		ui.orch.Selection().DeselectAll()
	}
	ui.syncingChecks = true
	for _, check := range ui.candidateChecks {
		check.SetChecked(checked)
	}
	ui.syncingChecks = false
}

// syncSelectAllCheck mirrors the selection state into the header checkbox
// without re-triggering its callback.
func (ui *RootUI) syncSelectAllCheck() {
	ui.syncingChecks = true
	ui.selectAllCheck.SetChecked(ui.orch.Selection().IsAllSelected())
	ui.syncingChecks = false
}

// onDispatch admits the selected candidates under the configured budget
func (ui *RootUI) onDispatch() {
	if ui.orch.Selection().Count() == 0 {
		ui.showNotification("Select at least one item to download")
		return
	}

	opts := ui.settings.StartOptions()
	budget := ui.settings.GetMaxParallelDownloads()

	go func() {
		if err := ui.orch.DispatchSelected(context.Background(), opts, budget); err != nil {
			ui.showNotification(fmt.Sprintf("Nothing dispatched: %v", err))
		}
	}()
}

func (ui *RootUI) onCancel(id string) {
	go ui.orch.Cancel(id)
}

func (ui *RootUI) onCancelAll() {
	go ui.orch.CancelAll()
}

// onActiveJobsChanged receives the full active view after every
// reconciliation pass, on an arbitrary goroutine.
func (ui *RootUI) onActiveJobsChanged(jobs []model.Job) {
	fyne.Do(func() {
		ui.syncRows(jobs)
	})
}

// syncRows reconciles the row widgets against the active set by ID:
// existing rows update in place, new IDs get rows, vanished IDs are
// removed. Never rebuilt wholesale, so a cancelled job cannot reappear
// and progress bars do not re-animate.
func (ui *RootUI) syncRows(jobs []model.Job) {
	seen := make(map[string]struct{}, len(jobs))
	for _, job := range jobs {
		seen[job.ID] = struct{}{}
		if row, ok := ui.rows[job.ID]; ok {
			row.Update(job)
			continue
		}
		row := newJobRow(job, ui.onCancel)
		ui.rows[job.ID] = row
		ui.jobsBox.Add(row.box)
	}

	for id, row := range ui.rows {
		if _, ok := seen[id]; !ok {
			ui.jobsBox.Remove(row.box)
			delete(ui.rows, id)
		}
	}
	ui.jobsBox.Refresh()
}

// showNotification displays a message in the strip under the URL input
func (ui *RootUI) showNotification(message string) {
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		ui.notificationLabel.Show()
	})
}

// hideNotification hides the notification strip
func (ui *RootUI) hideNotification() {
	fyne.Do(func() {
		ui.notificationLabel.SetText("")
		ui.notificationLabel.Hide()
	})
}
