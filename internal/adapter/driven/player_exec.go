package driven

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// playback is one running player process.
type playback struct {
	id   string
	url  string
	cmd  *exec.Cmd
	done chan struct{}
}

// ExecPlayer implements the Player port by launching an external media
// player (mpv by default) with the stream URL as its last argument.
// At most one process runs at a time; a new Play stops the previous one.
type ExecPlayer struct {
	command     string
	args        []string
	stopTimeout time.Duration
	logger      *slog.Logger

	mu      sync.Mutex
	current *playback
}

// NewExecPlayer creates a player that runs `command args... url`.
// stopTimeout bounds how long Release waits after SIGTERM before killing.
func NewExecPlayer(command string, args []string, stopTimeout time.Duration, logger *slog.Logger) *ExecPlayer {
	return &ExecPlayer{
		command:     command,
		args:        args,
		stopTimeout: stopTimeout,
		logger:      logger,
	}
}

// Play stops any running playback and starts a new process for url.
func (p *ExecPlayer) Play(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.stopLocked(ctx); err != nil {
		return err
	}

	args := append(append([]string{}, p.args...), url)
	// Not bound to ctx: playback outlives the request that started it.
	cmd := exec.Command(p.command, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start player %q: %w", p.command, err)
	}

	pb := &playback{
		id:   uuid.New().String(),
		url:  url,
		cmd:  cmd,
		done: make(chan struct{}),
	}
	p.current = pb

	p.logger.Debug("player started", "session", pb.id, "pid", cmd.Process.Pid, "url", url)

	go func() {
		err := cmd.Wait()
		close(pb.done)
		if err != nil {
			p.logger.Debug("player exited", "session", pb.id, "error", err)
			return
		}
		p.logger.Debug("player exited", "session", pb.id)
	}()

	return nil
}

// Release stops the running playback, if any.
func (p *ExecPlayer) Release(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.stopLocked(ctx)
}

// NowPlaying returns the URL of the running playback.
func (p *ExecPlayer) NowPlaying() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return "", false
	}
	select {
	case <-p.current.done:
		return "", false
	default:
		return p.current.url, true
	}
}

func (p *ExecPlayer) stopLocked(ctx context.Context) error {
	pb := p.current
	if pb == nil {
		return nil
	}
	p.current = nil

	select {
	case <-pb.done:
		return nil
	default:
	}

	if err := pb.cmd.Process.Signal(syscall.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) {
		p.logger.Debug("failed to signal player", "session", pb.id, "error", err)
	}

	timer := time.NewTimer(p.stopTimeout)
	defer timer.Stop()

	select {
	case <-pb.done:
	case <-timer.C:
		p.logger.Warn("player did not stop in time, killing", "session", pb.id, "timeout", p.stopTimeout)
		_ = pb.cmd.Process.Kill()
		<-pb.done
	case <-ctx.Done():
		_ = pb.cmd.Process.Kill()
		<-pb.done
		return ctx.Err()
	}

	p.logger.Debug("player stopped", "session", pb.id)
	return nil
}
