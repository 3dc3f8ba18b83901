package engine

// Download kinds
const (
	KindVideo = "video"
	KindAudio = "audio"
)

// StartOptions are the output parameters for one start call. The
// orchestration core passes them through without interpreting them.
type StartOptions struct {
	OutputDir        string
	Kind             string // KindVideo or KindAudio
	Quality          string // "4k", "1080p", "720p", "480p" or "" for best
	FilenameTemplate string // yt-dlp output template, e.g. "%(title)s.%(ext)s"
}

// Tuning carries the network workaround knobs passed to every yt-dlp run.
type Tuning struct {
	UserAgent        string
	Referer          string
	ExtractorRetries int
	SocketTimeoutSec int
}

// DefaultTuning returns the stock anti-throttling flags
func DefaultTuning() Tuning {
	return Tuning{
		UserAgent:        "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
		Referer:          "https://www.youtube.com/",
		ExtractorRetries: 3,
		SocketTimeoutSec: 30,
	}
}

// formatFor maps kind/quality to a yt-dlp format selector. Video formats
// are restricted to pre-merged files so no FFmpeg merge step is required.
func formatFor(kind, quality string) string {
	if kind == KindAudio {
		return "bestaudio/best"
	}
	switch quality {
	case "4k":
		return "best[height<=?2160][ext=mp4]/best[ext=mp4]/best"
	case "1080p":
		return "best[height<=?1080][ext=mp4]/best[ext=mp4]/best"
	case "720p":
		return "best[height<=?720][ext=mp4]/best[ext=mp4]/best"
	case "480p":
		return "best[height<=?480][ext=mp4]/best[ext=mp4]/best"
	default:
		return "best[ext=mp4]/best"
	}
}
