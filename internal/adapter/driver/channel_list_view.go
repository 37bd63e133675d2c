package driver

import (
	"sync"

	"github.com/alorle/iptv-player/internal/channel"
)

// ChannelListView is the UI's read-only projection of the channel list.
// It implements the ListObserver port and is updated only through change
// notifications; readers get copies.
type ChannelListView struct {
	mu       sync.RWMutex
	channels []channel.Channel
}

// NewChannelListView creates an empty projection.
func NewChannelListView() *ChannelListView {
	return &ChannelListView{channels: []channel.Channel{}}
}

// Reset replaces the projection.
func (v *ChannelListView) Reset(channels []channel.Channel) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.channels = make([]channel.Channel, len(channels))
	copy(v.channels, channels)
}

// Inserted adds ch at index. Indexes past the end append.
func (v *ChannelListView) Inserted(index int, ch channel.Channel) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if index < 0 || index >= len(v.channels) {
		v.channels = append(v.channels, ch)
		return
	}
	v.channels = append(v.channels[:index+1], v.channels[index:]...)
	v.channels[index] = ch
}

// Changed replaces the channel at index.
func (v *ChannelListView) Changed(index int, ch channel.Channel) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if index < 0 || index >= len(v.channels) {
		return
	}
	v.channels[index] = ch
}

// Removed drops the channel at index.
func (v *ChannelListView) Removed(index int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if index < 0 || index >= len(v.channels) {
		return
	}
	v.channels = append(v.channels[:index], v.channels[index+1:]...)
}

// Channels returns a copy of the projected list.
func (v *ChannelListView) Channels() []channel.Channel {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]channel.Channel, len(v.channels))
	copy(out, v.channels)
	return out
}

// At returns the projected channel at index.
func (v *ChannelListView) At(index int) (channel.Channel, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if index < 0 || index >= len(v.channels) {
		return channel.Channel{}, false
	}
	return v.channels[index], true
}
