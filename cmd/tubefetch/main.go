package main

import (
	"context"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/tubefetch/tubefetch/internal/config"
	"github.com/tubefetch/tubefetch/internal/download"
	"github.com/tubefetch/tubefetch/internal/engine"
	"github.com/tubefetch/tubefetch/internal/platform"
	"github.com/tubefetch/tubefetch/internal/ui"
)

func main() {
	// Create new Fyne app
	myApp := app.NewWithID("com.tubefetch.tubefetch")
	myWindow := myApp.NewWindow("TubeFetch")
	myWindow.Resize(fyne.NewSize(800, 600))

	tuning := loadTuning()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Engine and orchestrator; the UI notifier is wired in below
	eng := engine.NewService(tuning)
	orch := download.NewOrchestrator(eng, nil)

	// Make sure a yt-dlp binary is available before the first download
	go func() {
		if _, err := platform.EnsureYTDLP(); err != nil {
			log.Printf("yt-dlp install failed: %v", err)
		}
	}()

	// Create and setup UI, then start reconciling engine events
	rootUI := ui.NewRootUI(myWindow, myApp, orch, platform.NewMetadataService())
	orch.SetNotifier(rootUI.Notifier())
	go orch.Run(ctx)

	// Show and run
	myWindow.ShowAndRun()
}

func loadTuning() engine.Tuning {
	path, err := config.DefaultEngineConfigPath()
	if err != nil {
		log.Printf("engine config path unavailable: %v", err)
		return engine.DefaultTuning()
	}
	tuning, err := config.LoadEngineTuning(path)
	if err != nil {
		log.Printf("engine config %s: %v", path, err)
		return engine.DefaultTuning()
	}
	return tuning
}
