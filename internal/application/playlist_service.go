package application

import (
	"context"
	"strings"

	"github.com/alorle/iptv-player/internal/channel"
	"github.com/alorle/iptv-player/internal/m3u"
)

// ChannelLister provides a read-only view of the channel list.
type ChannelLister interface {
	Channels() []channel.Channel
}

// PlaylistService provides use cases for playlist generation.
type PlaylistService struct {
	channels ChannelLister
}

// NewPlaylistService creates a new PlaylistService reading from the given lister.
func NewPlaylistService(channels ChannelLister) *PlaylistService {
	return &PlaylistService{
		channels: channels,
	}
}

// GenerateM3U generates an M3U playlist with every channel in list order.
// Returns a playlist with only the #EXTM3U header if the list is empty.
func (p *PlaylistService) GenerateM3U(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	enc := m3u.NewEncoder()
	for _, ch := range p.channels.Channels() {
		enc.AddChannel(&m3u.Channel{
			Title:    ch.Name(),
			URI:      ch.URL(),
			Duration: -1,
			TVGTags: &m3u.TVGTags{
				Name: ch.Name(),
				Logo: ch.Logo(),
			},
		})
	}

	var builder strings.Builder
	if err := enc.Encode(&builder); err != nil {
		return "", err
	}

	return builder.String(), nil
}
