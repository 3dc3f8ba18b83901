package engine

import (
	"strings"
	"testing"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		quality string
		want    string
	}{
		{"audio ignores quality", KindAudio, "1080p", "bestaudio/best"},
		{"video 4k", KindVideo, "4k", "best[height<=?2160][ext=mp4]/best[ext=mp4]/best"},
		{"video 1080p", KindVideo, "1080p", "best[height<=?1080][ext=mp4]/best[ext=mp4]/best"},
		{"video 720p", KindVideo, "720p", "best[height<=?720][ext=mp4]/best[ext=mp4]/best"},
		{"video 480p", KindVideo, "480p", "best[height<=?480][ext=mp4]/best[ext=mp4]/best"},
		{"video default", KindVideo, "", "best[ext=mp4]/best"},
		{"video unknown quality", KindVideo, "8k", "best[ext=mp4]/best"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatFor(tt.kind, tt.quality); got != tt.want {
				t.Errorf("formatFor(%q, %q) = %q, want %q", tt.kind, tt.quality, got, tt.want)
			}
		})
	}
}

func TestDefaultTuning(t *testing.T) {
	tuning := DefaultTuning()

	if tuning.UserAgent == "" {
		t.Error("Default user agent should not be empty")
	}
	if !strings.Contains(tuning.Referer, "youtube.com") {
		t.Errorf("Expected youtube referer, got %q", tuning.Referer)
	}
	if tuning.ExtractorRetries <= 0 {
		t.Errorf("Expected positive extractor retries, got %d", tuning.ExtractorRetries)
	}
	if tuning.SocketTimeoutSec <= 0 {
		t.Errorf("Expected positive socket timeout, got %d", tuning.SocketTimeoutSec)
	}
}
