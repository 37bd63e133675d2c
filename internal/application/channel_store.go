package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alorle/iptv-player/internal/channel"
	"github.com/alorle/iptv-player/internal/port/driven"
	"github.com/alorle/iptv-player/metrics"
)

// ChannelListKey is the preference key holding the persisted channel list.
const ChannelListKey = "CHANNEL_LIST"

// ChannelStore owns the ordered channel list and is the only reader and
// writer of its persisted snapshot. Every mutation updates memory first and
// then rewrites the full snapshot.
//
// ChannelStore is not safe for concurrent use; callers serialize access.
type ChannelStore struct {
	prefs    driven.PreferenceStore
	codec    driven.ChannelCodec
	logger   *slog.Logger
	channels []channel.Channel
}

// NewChannelStore creates a ChannelStore backed by the given preference store
// and codec. The list is empty until Load is called.
func NewChannelStore(prefs driven.PreferenceStore, codec driven.ChannelCodec, logger *slog.Logger) *ChannelStore {
	return &ChannelStore{
		prefs:    prefs,
		codec:    codec,
		logger:   logger,
		channels: []channel.Channel{},
	}
}

// Load reads the persisted snapshot into memory and returns a copy of it.
// When nothing is persisted the default channels are used. When the snapshot
// cannot be decoded the defaults are installed as well and the returned
// error wraps channel.ErrCorruptPersistedData; the returned list is usable.
// Any other error means the store could not be read and no list is returned.
func (s *ChannelStore) Load(ctx context.Context) ([]channel.Channel, error) {
	data, ok, err := s.prefs.Get(ctx, ChannelListKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read channel list: %w", err)
	}

	if !ok {
		s.channels = channel.Defaults()
		metrics.SetChannelsTotal(len(s.channels))
		return s.Channels(), nil
	}

	decoded, err := s.codec.Decode(data)
	if err != nil {
		s.channels = channel.Defaults()
		metrics.SetChannelsTotal(len(s.channels))
		if !errors.Is(err, channel.ErrCorruptPersistedData) {
			err = fmt.Errorf("%w: %v", channel.ErrCorruptPersistedData, err)
		}
		return s.Channels(), err
	}

	s.channels = decoded
	metrics.SetChannelsTotal(len(s.channels))
	return s.Channels(), nil
}

// Save encodes the whole in-memory list and writes it under ChannelListKey.
// Writes are best effort: failures are logged and counted, not returned.
func (s *ChannelStore) Save(ctx context.Context) {
	data, err := s.codec.Encode(s.channels)
	if err != nil {
		metrics.RecordPersistFailure("encode")
		s.logger.Warn("failed to encode channel list", "channels", len(s.channels), "error", err)
		return
	}

	if err := s.prefs.Set(ctx, ChannelListKey, data); err != nil {
		metrics.RecordPersistFailure("write")
		s.logger.Warn("failed to persist channel list", "channels", len(s.channels), "error", err)
		return
	}

	s.logger.Debug("channel list persisted", "channels", len(s.channels))
}

// Append adds ch to the end of the list and persists the list.
func (s *ChannelStore) Append(ctx context.Context, ch channel.Channel) {
	s.channels = append(s.channels, ch)
	metrics.RecordChannelMutation("append")
	metrics.SetChannelsTotal(len(s.channels))
	s.Save(ctx)
}

// ReplaceAt replaces the channel at index and persists the list.
// Returns an error wrapping channel.ErrIndexOutOfRange for an invalid index.
func (s *ChannelStore) ReplaceAt(ctx context.Context, index int, ch channel.Channel) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}

	s.channels[index] = ch
	metrics.RecordChannelMutation("replace")
	s.Save(ctx)
	return nil
}

// RemoveAt removes the channel at index, shifting later channels down, and
// persists the list. Returns an error wrapping channel.ErrIndexOutOfRange
// for an invalid index.
func (s *ChannelStore) RemoveAt(ctx context.Context, index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}

	s.channels = append(s.channels[:index], s.channels[index+1:]...)
	metrics.RecordChannelMutation("remove")
	metrics.SetChannelsTotal(len(s.channels))
	s.Save(ctx)
	return nil
}

// At returns the channel at index.
func (s *ChannelStore) At(index int) (channel.Channel, error) {
	if err := s.checkIndex(index); err != nil {
		return channel.Channel{}, err
	}
	return s.channels[index], nil
}

// Len returns the number of channels in the list.
func (s *ChannelStore) Len() int {
	return len(s.channels)
}

// Channels returns a copy of the current list.
func (s *ChannelStore) Channels() []channel.Channel {
	out := make([]channel.Channel, len(s.channels))
	copy(out, s.channels)
	return out
}

func (s *ChannelStore) checkIndex(index int) error {
	if index < 0 || index >= len(s.channels) {
		return fmt.Errorf("%w: index %d, length %d", channel.ErrIndexOutOfRange, index, len(s.channels))
	}
	return nil
}
