package driven

import "github.com/alorle/iptv-player/internal/channel"

// ChannelCodec converts a channel list to and from its persisted string form.
type ChannelCodec interface {
	// Encode serializes the whole list, preserving order.
	Encode(channels []channel.Channel) (string, error)

	// Decode parses a persisted snapshot. Every record must carry name, url
	// and logo; implementations return an error wrapping
	// channel.ErrCorruptPersistedData otherwise.
	Decode(data string) ([]channel.Channel, error)
}
