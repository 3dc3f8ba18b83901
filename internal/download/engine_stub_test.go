package download

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tubefetch/tubefetch/internal/engine"
	"github.com/tubefetch/tubefetch/internal/model"
)

// fakeEngine records start and cancel calls and never spawns anything.
// Events are pushed into its channel by the tests themselves.
type fakeEngine struct {
	mu         sync.Mutex
	started    []string
	active     int
	maxActive  int
	nextID     int
	startDelay time.Duration
	failURLs   map[string]bool
	cancelErr  error
	cancelled  []string
	onCancel   func(id string)
	events     chan model.Event
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		failURLs: make(map[string]bool),
		events:   make(chan model.Event, 64),
	}
}

func (f *fakeEngine) Start(ctx context.Context, item model.VideoInfo, opts engine.StartOptions) (string, error) {
	f.mu.Lock()
	f.active++
	if f.active > f.maxActive {
		f.maxActive = f.active
	}
	delay := f.startDelay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.active--
	if f.failURLs[item.URL] {
		return "", fmt.Errorf("start refused: %s", item.URL)
	}
	f.nextID++
	f.started = append(f.started, item.URL)
	return fmt.Sprintf("job-%d", f.nextID), nil
}

func (f *fakeEngine) Cancel(id string) error {
	if f.onCancel != nil {
		f.onCancel(id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, id)
	return f.cancelErr
}

func (f *fakeEngine) Events() <-chan model.Event {
	return f.events
}

func (f *fakeEngine) startedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.started...)
}

func (f *fakeEngine) highWater() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxActive
}

// recordingNotifier captures notifications for assertions
type recordingNotifier struct {
	mu           sync.Mutex
	startFailed  []string
	cancelFailed []string
	engineErrors []string
	botFlags     []bool
}

func (n *recordingNotifier) StartFailed(item model.VideoInfo, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.startFailed = append(n.startFailed, item.URL)
}

func (n *recordingNotifier) CancelFailed(jobID string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelFailed = append(n.cancelFailed, jobID)
}

func (n *recordingNotifier) EngineError(sourceKey, message string, botDetected bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.engineErrors = append(n.engineErrors, message)
	n.botFlags = append(n.botFlags, botDetected)
}

// newTestOrchestrator shortens the pacing delay so dispatch tests finish
// quickly.
func newTestOrchestrator(eng Engine, notifier Notifier) *Orchestrator {
	o := NewOrchestrator(eng, notifier)
	o.paceDelay = time.Millisecond
	return o
}
