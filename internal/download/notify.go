package download

import (
	"log"
	"strings"

	"github.com/tubefetch/tubefetch/internal/model"
)

// Notifier receives the user-facing notifications raised by the
// orchestration core. All notifications are non-fatal and per-job.
type Notifier interface {
	// StartFailed reports that a single item could not be admitted; the
	// rest of the batch continues.
	StartFailed(item model.VideoInfo, err error)

	// CancelFailed reports that the engine could not stop a job. The job
	// stays tombstoned and absent from the active view regardless.
	CancelFailed(jobID string, err error)

	// EngineError reports a failure not attributable to a job ID, keyed by
	// the original request identity. botDetected marks the distinct
	// anti-automation category.
	EngineError(sourceKey, message string, botDetected bool)
}

// LogNotifier writes notifications to the process log. It is the default
// when no presentation surface is attached.
type LogNotifier struct{}

func (LogNotifier) StartFailed(item model.VideoInfo, err error) {
	log.Printf("start failed for %s: %v", item.URL, err)
}

func (LogNotifier) CancelFailed(jobID string, err error) {
	log.Printf("cancel failed for job %s: %v", jobID, err)
}

func (LogNotifier) EngineError(sourceKey, message string, botDetected bool) {
	if botDetected {
		log.Printf("engine error (bot detection) for %s: %s", sourceKey, message)
		return
	}
	log.Printf("engine error for %s: %s", sourceKey, message)
}

// botDetectionPhrases are matched case-insensitively against free-text
// engine errors to surface anti-automation failures with actionable advice.
// Best-effort only; a miss degrades to the generic category.
var botDetectionPhrases = []string{
	"sign in to confirm",
	"not a bot",
	"captcha",
	"http error 429",
	"too many requests",
}

// IsBotDetection classifies an engine error message
func IsBotDetection(message string) bool {
	lower := strings.ToLower(message)
	for _, phrase := range botDetectionPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
