package ui

import (
	"fmt"

	"fyne.io/fyne/v2"

	"github.com/tubefetch/tubefetch/internal/model"
)

// Notification messages
const (
	msgBotDetection = "The video service flagged automated access. Try again later or from a different network."
)

// notifier surfaces orchestrator notifications in the notification strip.
// Calls arrive on worker goroutines; showNotification hops to the UI
// thread itself.
type notifier struct {
	ui *RootUI
}

func (n notifier) StartFailed(item model.VideoInfo, err error) {
	n.ui.showNotification(fmt.Sprintf("Could not start %s: %v", item.DisplayTitle(), err))
}

func (n notifier) CancelFailed(jobID string, err error) {
	n.ui.showNotification(fmt.Sprintf("Cancel may not have reached the downloader: %v", err))
}

func (n notifier) EngineError(sourceKey, message string, botDetected bool) {
	if botDetected {
		n.ui.showNotification(msgBotDetection)
		fyne.CurrentApp().SendNotification(&fyne.Notification{
			Title:   "Download blocked",
			Content: msgBotDetection,
		})
		return
	}
	n.ui.showNotification(fmt.Sprintf("Download failed for %s: %s", sourceKey, truncate(message, 200)))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
