package engine

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lrstanley/go-ytdlp"

	"github.com/tubefetch/tubefetch/internal/model"
	"github.com/tubefetch/tubefetch/internal/platform"
)

// ErrUnknownJob is returned by Cancel for an ID the engine is not running
var ErrUnknownJob = fmt.Errorf("unknown job")

// Anchored at both ends; only plain query parameters may follow the video
// ID, so nothing else ever reaches the spawned process.
var videoURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com/watch\?v=[\w-]+(&[\w=&%-]*)?|youtu\.be/[\w-]+(\?[\w=&%-]*)?)$`)

const (
	progressInterval = 500 * time.Millisecond
	eventBuffer      = 64
)

// run tracks one spawned download for cancellation and cleanup
type run struct {
	cancel    context.CancelFunc
	cancelled bool
	outputDir string
	title     string
}

// Service runs downloads through yt-dlp and reports their lifecycle on a
// single event stream. Job IDs are assigned here, at start time.
type Service struct {
	mu     sync.Mutex
	runs   map[string]*run
	events chan model.Event
	tuning Tuning
}

// NewService creates an engine with the given network tuning
func NewService(tuning Tuning) *Service {
	return &Service{
		runs:   make(map[string]*run),
		events: make(chan model.Event, eventBuffer),
		tuning: tuning,
	}
}

// Events returns the inbound stream consumed by the reconciler. Progress
// events for a given job are sent in order; no ordering is guaranteed
// across jobs.
func (s *Service) Events() <-chan model.Event {
	return s.events
}

// Start validates the item, assigns a job ID and spawns the download. It
// returns once the job is admitted; progress arrives asynchronously on the
// event stream.
func (s *Service) Start(ctx context.Context, item model.VideoInfo, opts StartOptions) (string, error) {
	if !videoURLPattern.MatchString(item.URL) {
		return "", fmt.Errorf("invalid video URL: %s", item.URL)
	}
	if err := platform.CreateDirectoryIfNotExists(opts.OutputDir); err != nil {
		return "", fmt.Errorf("output directory: %w", err)
	}

	id := uuid.NewString()

	// The run outlives the dispatch call; cancellation goes through Cancel.
	runCtx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.runs[id] = &run{cancel: cancel, outputDir: opts.OutputDir, title: item.Title}
	s.mu.Unlock()

	s.emit(model.ProgressEvent{
		ID:     id,
		Status: model.StatusStarting,
		Title:  item.Title,
		Kind:   opts.Kind,
	})

	go s.download(runCtx, id, item, opts)

	return id, nil
}

// Cancel stops a running job. The engine stops emitting events for the job
// before this returns, whether or not yt-dlp dies cleanly.
func (s *Service) Cancel(id string) error {
	s.mu.Lock()
	r, ok := s.runs[id]
	if ok {
		r.cancelled = true
		r.cancel()
	}
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, id)
	}
	return nil
}

func (s *Service) download(ctx context.Context, id string, item model.VideoInfo, opts StartOptions) {
	template := opts.FilenameTemplate
	if template == "" {
		template = "%(title)s.%(ext)s"
	}

	dl := ytdlp.New().
		ForceOverwrites().
		RestrictFilenames().
		NoPlaylist().
		NoCacheDir().
		Format(formatFor(opts.Kind, opts.Quality)).
		UserAgent(s.tuning.UserAgent).
		Referer(s.tuning.Referer).
		ExtractorRetries(strconv.Itoa(s.tuning.ExtractorRetries)).
		SocketTimeout(float64(s.tuning.SocketTimeoutSec)).
		Output(filepath.Join(opts.OutputDir, template))

	dl.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
		s.reportProgress(id, update)
	})

	_, err := dl.Run(ctx, item.URL)

	s.mu.Lock()
	r := s.runs[id]
	cancelled := r != nil && r.cancelled
	title := item.Title
	if r != nil && r.title != "" {
		title = r.title
	}
	delete(s.runs, id)
	s.mu.Unlock()

	if cancelled {
		// The process is gone; best-effort sweep of its temporaries.
		if cleanErr := platform.CleanupPartialFiles(opts.OutputDir, title); cleanErr != nil {
			log.Printf("job %s: partial file cleanup: %v", id, cleanErr)
		}
		return
	}

	if err != nil {
		s.emit(model.ProgressEvent{ID: id, Status: model.StatusFailed})
		s.emit(model.ErrorEvent{SourceKey: item.URL, Message: err.Error()})
		return
	}

	s.emit(model.ProgressEvent{ID: id, Status: model.StatusCompleted, Progress: 100})
}

// reportProgress translates one yt-dlp progress update into a job event
func (s *Service) reportProgress(id string, update ytdlp.ProgressUpdate) {
	status := model.StatusDownloading
	converting := false

	switch update.Status {
	case ytdlp.ProgressStatusStarting:
		status = model.StatusStarting
	case ytdlp.ProgressStatusPostProcessing:
		status = model.StatusConverting
		converting = true
	case ytdlp.ProgressStatusFinished:
		status = model.StatusDownloadComplete
	case ytdlp.ProgressStatusError:
		// Terminal outcome is reported once Run returns.
		return
	}

	var progress float64
	if update.TotalBytes > 0 {
		progress = float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
	}
	if status == model.StatusDownloadComplete {
		progress = 100
	}

	var title string
	if update.Info != nil && update.Info.Title != nil {
		title = *update.Info.Title
	}
	if title != "" {
		s.mu.Lock()
		if r, ok := s.runs[id]; ok && r.title == "" {
			r.title = title
		}
		s.mu.Unlock()
	}

	s.emit(model.ProgressEvent{
		ID:         id,
		Status:     status,
		Progress:   progress,
		Title:      title,
		Converting: &converting,
	})
}

// emit forwards an event unless the job was cancelled in the meantime. The
// tombstone set upstream suppresses stragglers regardless; this just keeps
// the stream quiet for dead jobs.
func (s *Service) emit(ev model.Event) {
	if pe, ok := ev.(model.ProgressEvent); ok {
		s.mu.Lock()
		r, tracked := s.runs[pe.ID]
		cancelled := tracked && r.cancelled
		s.mu.Unlock()
		if cancelled {
			return
		}
	}
	s.events <- ev
}
