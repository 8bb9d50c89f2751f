package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"
)

// Timeout constants
const (
	DefaultExpandTimeout = 60 * time.Second
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

// IsPlaylistURL checks if the URL carries a playlist parameter.
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam)
}

// ExtractPlaylistID extracts the playlist ID from various URL formats.
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

// PlaylistExpander resolves a playlist URL into its individual video URLs
// so they can be translated and downloaded like any other URL list.
type PlaylistExpander struct {
	timeout time.Duration
}

// NewPlaylistExpander creates a new expander service.
func NewPlaylistExpander() *PlaylistExpander {
	return &PlaylistExpander{timeout: DefaultExpandTimeout}
}

// SetTimeout sets the timeout for listing operations.
func (p *PlaylistExpander) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// Expand lists the video URLs of the playlist, in playlist order.
func (p *PlaylistExpander) Expand(ctx context.Context, url string) ([]string, error) {
	playlistID := ExtractPlaylistID(url)
	if playlistID == "" {
		return nil, fmt.Errorf("not a playlist URL: %s", url)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlist items: %w", err)
	}

	urls := make([]string, 0, len(items))
	for _, it := range items {
		urls = append(urls, fmt.Sprintf(VideoURLTemplate, it.VideoID))
	}
	return urls, nil
}
