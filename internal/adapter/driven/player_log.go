package driven

import (
	"context"
	"log/slog"
	"sync"
)

// LogPlayer implements the Player port without rendering anything: it only
// logs and remembers what it was asked to play. Used on headless hosts
// where no player command is configured.
type LogPlayer struct {
	logger *slog.Logger

	mu      sync.Mutex
	current string
	playing bool
}

// NewLogPlayer creates a log-only player.
func NewLogPlayer(logger *slog.Logger) *LogPlayer {
	return &LogPlayer{logger: logger}
}

// Play records url as the current source.
func (p *LogPlayer) Play(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = url
	p.playing = true
	p.logger.Info("play requested", "url", url)
	return nil
}

// Release clears the current source.
func (p *LogPlayer) Release(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing {
		p.logger.Info("player released", "url", p.current)
	}
	p.current = ""
	p.playing = false
	return nil
}

// NowPlaying returns the URL of the current source.
func (p *LogPlayer) NowPlaying() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.current, p.playing
}
