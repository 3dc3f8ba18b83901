package platform

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
)

const downloadTimeout = 30 * time.Second

// EnsureYTDLP returns a usable yt-dlp path: the one already on PATH, a
// previously installed copy in the app data dir, or a fresh download of
// the platform-specific release binary.
func EnsureYTDLP() (string, error) {
	if path, err := exec.LookPath(YTDLPBinaryName()); err == nil {
		return path, nil
	}

	dataDir, err := AppDataDir()
	if err != nil {
		return "", err
	}
	installed := filepath.Join(dataDir, YTDLPBinaryName())
	if _, err := os.Stat(installed); err == nil {
		return installed, nil
	}

	if err := downloadYTDLP(dataDir); err != nil {
		return "", err
	}
	return installed, nil
}

// downloadYTDLP fetches the release binary into targetDir and marks it
// executable.
func downloadYTDLP(targetDir string) error {
	if err := CreateDirectoryIfNotExists(targetDir); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	url := ytdlpDownloadURL()
	client := &http.Client{Timeout: downloadTimeout}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download yt-dlp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("failed to download yt-dlp: HTTP %d", resp.StatusCode)
	}

	target := filepath.Join(targetDir, YTDLPBinaryName())
	tmp := target + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(tmp, 0755); err != nil {
			return fmt.Errorf("failed to set executable permissions: %w", err)
		}
	}
	return os.Rename(tmp, target)
}

// ytdlpDownloadURL returns the platform-specific yt-dlp release URL
func ytdlpDownloadURL() string {
	switch runtime.GOOS {
	case "windows":
		return "https://github.com/yt-dlp/yt-dlp/releases/latest/download/yt-dlp.exe"
	case "darwin":
		return "https://github.com/yt-dlp/yt-dlp/releases/latest/download/yt-dlp_macos"
	case "linux":
		return "https://github.com/yt-dlp/yt-dlp/releases/latest/download/yt-dlp_linux"
	default:
		return "https://github.com/yt-dlp/yt-dlp/releases/latest/download/yt-dlp"
	}
}
