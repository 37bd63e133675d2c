package driven

import "github.com/alorle/iptv-player/internal/channel"

// ListObserver receives change notifications for the channel list so a UI
// projection can stay in sync without touching the list itself.
type ListObserver interface {
	// Reset replaces the whole projection, e.g. after the list is loaded.
	Reset(channels []channel.Channel)

	// Inserted reports a channel added at index.
	Inserted(index int, ch channel.Channel)

	// Changed reports the channel at index was replaced.
	Changed(index int, ch channel.Channel)

	// Removed reports the channel at index was removed; later entries shift down.
	Removed(index int)
}
