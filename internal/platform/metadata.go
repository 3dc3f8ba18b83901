package platform

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/tubefetch/tubefetch/internal/model"
)

// Timeout constants
const (
	DefaultFetchTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// URL templates
const (
	VideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

var (
	watchIDPattern = regexp.MustCompile(`[?&]v=([\w-]+)`)
	shortIDPattern = regexp.MustCompile(`youtu\.be/([\w-]+)`)
)

// MetadataService resolves a source URL into the immutable candidate batch
// the selection set indexes into.
type MetadataService struct {
	timeout time.Duration
}

// NewMetadataService creates a metadata service with the default timeout
func NewMetadataService() *MetadataService {
	return &MetadataService{timeout: DefaultFetchTimeout}
}

// SetTimeout sets the timeout for fetch operations
func (m *MetadataService) SetTimeout(timeout time.Duration) {
	m.timeout = timeout
}

// FetchBatch expands a playlist URL into its items, or wraps a single
// video URL into a one-element batch. A single-video candidate carries an
// empty title; the engine backfills it once the download reports progress.
func (m *MetadataService) FetchBatch(ctx context.Context, url string) (model.Batch, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if IsPlaylistURL(url) {
		return m.fetchPlaylist(ctx, url)
	}
	return m.fetchSingle(url)
}

func (m *MetadataService) fetchPlaylist(ctx context.Context, url string) (model.Batch, error) {
	playlistID := ExtractPlaylistID(url)
	if playlistID == "" {
		return model.Batch{}, fmt.Errorf("could not extract playlist ID from URL: %s", url)
	}

	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return model.Batch{}, fmt.Errorf("failed to get playlist items: %w", err)
	}

	videos := make([]model.VideoInfo, 0, len(items))
	for _, it := range items {
		videos = append(videos, model.VideoInfo{
			ID:    it.VideoID,
			Title: it.Title,
			URL:   fmt.Sprintf(VideoURLTemplate, it.VideoID),
		})
	}

	title := "Empty Playlist"
	if len(videos) > 0 {
		title = fmt.Sprintf("Playlist with %d videos", len(videos))
	}

	return model.Batch{Title: title, URL: url, Videos: videos}, nil
}

func (m *MetadataService) fetchSingle(url string) (model.Batch, error) {
	id := ExtractVideoID(url)
	if id == "" {
		return model.Batch{}, fmt.Errorf("unrecognized video URL: %s", url)
	}

	video := model.VideoInfo{ID: id, URL: url}
	return model.Batch{URL: url, Videos: []model.VideoInfo{video}}, nil
}

// IsPlaylistURL reports whether the URL names a playlist-like collection
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam) || strings.Contains(url, "playlist")
}

// ExtractPlaylistID pulls the playlist ID out of a URL's list parameter
func ExtractPlaylistID(url string) string {
	if !strings.Contains(url, PlaylistParam) {
		return ""
	}
	parts := strings.Split(url, PlaylistParam)
	if len(parts) < 2 {
		return ""
	}
	id := parts[1]
	if strings.Contains(id, ParamSeparator) {
		id = strings.Split(id, ParamSeparator)[0]
	}
	return id
}

// ExtractVideoID pulls the video ID out of a watch or youtu.be URL
func ExtractVideoID(url string) string {
	if match := watchIDPattern.FindStringSubmatch(url); match != nil {
		return match[1]
	}
	if match := shortIDPattern.FindStringSubmatch(url); match != nil {
		return match[1]
	}
	return ""
}
