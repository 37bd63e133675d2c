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

// ChannelEventHandler is the set of UI and lifecycle events a UI layer
// delivers to the core. Implementations expect calls one at a time.
type ChannelEventHandler interface {
	OnStart(ctx context.Context) error
	OnSelect(ctx context.Context, index int) error
	OnAdd(ctx context.Context, ch channel.Channel) error
	OnEdit(ctx context.Context, index int, ch channel.Channel) error
	OnDelete(ctx context.Context, index int) error
	OnStop(ctx context.Context) error
}

var _ ChannelEventHandler = (*ChannelListController)(nil)

// ChannelListController routes UI events to the ChannelStore and the Player,
// and keeps a UI projection informed through a ListObserver.
type ChannelListController struct {
	store    *ChannelStore
	player   driven.Player
	observer driven.ListObserver
	logger   *slog.Logger
}

// NewChannelListController creates a controller. observer may be nil when
// no projection needs to be kept in sync.
func NewChannelListController(store *ChannelStore, player driven.Player, observer driven.ListObserver, logger *slog.Logger) *ChannelListController {
	return &ChannelListController{
		store:    store,
		player:   player,
		observer: observer,
		logger:   logger,
	}
}

// Store returns the underlying channel store.
func (c *ChannelListController) Store() *ChannelStore {
	return c.store
}

// OnStart loads the channel list and plays the first channel, if any.
// Corrupt persisted data is reported as a warning and the defaults are used.
func (c *ChannelListController) OnStart(ctx context.Context) error {
	channels, err := c.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, channel.ErrCorruptPersistedData) {
			return err
		}
		metrics.RecordCorruptLoad()
		c.logger.Warn("persisted channel list is corrupt, using defaults", "error", err)
	}

	c.logger.Info("channel list loaded", "channels", len(channels))

	if c.observer != nil {
		c.observer.Reset(channels)
	}

	if len(channels) == 0 {
		return nil
	}

	return c.play(ctx, channels[0])
}

// OnSelect plays the channel at index. The list is not modified.
func (c *ChannelListController) OnSelect(ctx context.Context, index int) error {
	ch, err := c.store.At(index)
	if err != nil {
		return err
	}

	return c.play(ctx, ch)
}

// OnAdd appends ch to the list.
func (c *ChannelListController) OnAdd(ctx context.Context, ch channel.Channel) error {
	c.store.Append(ctx, ch)

	index := c.store.Len() - 1
	c.logger.Info("channel added", "index", index, "name", ch.Name())

	if c.observer != nil {
		c.observer.Inserted(index, ch)
	}
	return nil
}

// OnEdit replaces the channel at index with ch.
func (c *ChannelListController) OnEdit(ctx context.Context, index int, ch channel.Channel) error {
	if err := c.store.ReplaceAt(ctx, index, ch); err != nil {
		return err
	}

	c.logger.Info("channel updated", "index", index, "name", ch.Name())

	if c.observer != nil {
		c.observer.Changed(index, ch)
	}
	return nil
}

// OnDelete removes the channel at index.
func (c *ChannelListController) OnDelete(ctx context.Context, index int) error {
	if err := c.store.RemoveAt(ctx, index); err != nil {
		return err
	}

	c.logger.Info("channel deleted", "index", index)

	if c.observer != nil {
		c.observer.Removed(index)
	}
	return nil
}

// OnStop releases the player and then re-persists the in-memory list.
// The list is saved even when the release fails.
func (c *ChannelListController) OnStop(ctx context.Context) error {
	var releaseErr error
	if err := c.player.Release(ctx); err != nil {
		c.logger.Error("failed to release player", "error", err)
		releaseErr = fmt.Errorf("failed to release player: %w", err)
	}

	c.store.Save(ctx)
	c.logger.Info("channel list saved on stop", "channels", c.store.Len())

	return releaseErr
}

func (c *ChannelListController) play(ctx context.Context, ch channel.Channel) error {
	if err := c.player.Play(ctx, ch.URL()); err != nil {
		metrics.RecordPlayback(false)
		c.logger.Error("failed to play channel", "name", ch.Name(), "url", ch.URL(), "error", err)
		return fmt.Errorf("failed to play channel %q: %w", ch.Name(), err)
	}

	metrics.RecordPlayback(true)
	c.logger.Info("playing channel", "name", ch.Name(), "url", ch.URL())
	return nil
}
