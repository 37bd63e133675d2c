package driven

import (
	"encoding/json"
	"fmt"

	"github.com/alorle/iptv-player/internal/channel"
)

// channelRecordDTO is the persisted form of a channel. Pointer fields let
// decoding tell a missing key from an empty string.
type channelRecordDTO struct {
	Name *string `json:"name" yaml:"name"`
	URL  *string `json:"url" yaml:"url"`
	Logo *string `json:"logo" yaml:"logo"`
}

func channelToRecord(ch channel.Channel) channelRecordDTO {
	name, url, logo := ch.Name(), ch.URL(), ch.Logo()
	return channelRecordDTO{Name: &name, URL: &url, Logo: &logo}
}

func recordsToChannels(records []channelRecordDTO) ([]channel.Channel, error) {
	channels := make([]channel.Channel, 0, len(records))
	for i, rec := range records {
		switch {
		case rec.Name == nil:
			return nil, fmt.Errorf("%w: record %d is missing name", channel.ErrCorruptPersistedData, i)
		case rec.URL == nil:
			return nil, fmt.Errorf("%w: record %d is missing url", channel.ErrCorruptPersistedData, i)
		case rec.Logo == nil:
			return nil, fmt.Errorf("%w: record %d is missing logo", channel.ErrCorruptPersistedData, i)
		}
		channels = append(channels, channel.NewChannel(*rec.Name, *rec.URL, *rec.Logo))
	}
	return channels, nil
}

func channelsToRecords(channels []channel.Channel) []channelRecordDTO {
	records := make([]channelRecordDTO, 0, len(channels))
	for _, ch := range channels {
		records = append(records, channelToRecord(ch))
	}
	return records
}

// JSONChannelCodec encodes the channel list as a JSON array of
// {"name","url","logo"} objects.
type JSONChannelCodec struct{}

// NewJSONChannelCodec creates a JSON channel codec.
func NewJSONChannelCodec() *JSONChannelCodec {
	return &JSONChannelCodec{}
}

// Encode serializes channels as a JSON array.
func (JSONChannelCodec) Encode(channels []channel.Channel) (string, error) {
	data, err := json.Marshal(channelsToRecords(channels))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses a JSON array of channel records. Keys are matched exactly;
// encoding/json alone would accept "Name" or "URL" for the struct fields.
func (JSONChannelCodec) Decode(data string) ([]channel.Channel, error) {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", channel.ErrCorruptPersistedData, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: not a JSON array", channel.ErrCorruptPersistedData)
	}

	records := make([]channelRecordDTO, len(raw))
	for i, fields := range raw {
		var err error
		if records[i].Name, err = stringField(fields, "name"); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", channel.ErrCorruptPersistedData, i, err)
		}
		if records[i].URL, err = stringField(fields, "url"); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", channel.ErrCorruptPersistedData, i, err)
		}
		if records[i].Logo, err = stringField(fields, "logo"); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", channel.ErrCorruptPersistedData, i, err)
		}
	}
	return recordsToChannels(records)
}

// stringField returns the string stored under the exact key, or nil when
// the key is absent or null.
func stringField(fields map[string]json.RawMessage, key string) (*string, error) {
	value, ok := fields[key]
	if !ok || string(value) == "null" {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, fmt.Errorf("field %s: %v", key, err)
	}
	return &s, nil
}
