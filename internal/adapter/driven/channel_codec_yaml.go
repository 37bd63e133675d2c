package driven

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/alorle/iptv-player/internal/channel"
)

// YAMLChannelCodec encodes the channel list as a YAML sequence of
// name/url/logo mappings.
type YAMLChannelCodec struct{}

// NewYAMLChannelCodec creates a YAML channel codec.
func NewYAMLChannelCodec() *YAMLChannelCodec {
	return &YAMLChannelCodec{}
}

// Encode serializes channels as a YAML sequence.
func (YAMLChannelCodec) Encode(channels []channel.Channel) (string, error) {
	data, err := yaml.Marshal(channelsToRecords(channels))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses a YAML sequence of channel records.
func (YAMLChannelCodec) Decode(data string) ([]channel.Channel, error) {
	var records []channelRecordDTO
	if err := yaml.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", channel.ErrCorruptPersistedData, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: not a YAML sequence", channel.ErrCorruptPersistedData)
	}
	return recordsToChannels(records)
}
