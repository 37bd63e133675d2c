package driven

import "context"

// Player defines the interface for the external media player.
// It owns its own buffering, error and ready states; callers only ask it
// to load a source or to let go of its resources.
type Player interface {
	// Play loads the given source URL and begins playback immediately.
	Play(ctx context.Context, url string) error

	// Release frees playback resources. Releasing an idle player is a no-op.
	Release(ctx context.Context) error
}
