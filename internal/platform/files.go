package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Temporary extensions yt-dlp leaves behind for an interrupted download
var partialExtensions = []string{".part", ".temp", ".ytdl"}

// CreateDirectoryIfNotExists creates a directory and all parents
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the user's Downloads directory
func GetHomeDownloadsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "Downloads"), nil
}

// AppDataDir returns the per-user data directory for the app
func AppDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(base, "tubefetch"), nil
}

// CleanupPartialFiles removes the temporary files a cancelled download left
// in outputDir. Only files whose names start with the job title are
// touched, so concurrent downloads into the same directory are unaffected.
// An empty title cleans nothing.
func CleanupPartialFiles(outputDir, title string) error {
	if title == "" {
		return nil
	}
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read output directory: %w", err)
	}

	var firstErr error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, title) {
			continue
		}
		if !isPartialFile(name) {
			continue
		}
		if err := os.Remove(filepath.Join(outputDir, name)); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// isPartialFile reports whether the name carries a temporary extension,
// including fragment names like "title.mp4.part-Frag35.part".
func isPartialFile(name string) bool {
	for _, ext := range partialExtensions {
		if strings.HasSuffix(name, ext) || strings.Contains(name, ext+"-") || strings.Contains(name, ext+".") {
			return true
		}
	}
	return false
}

// YTDLPBinaryName returns the yt-dlp binary name for the current platform
func YTDLPBinaryName() string {
	if runtime.GOOS == "windows" {
		return "yt-dlp.exe"
	}
	return "yt-dlp"
}
