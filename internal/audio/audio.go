package audio

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoCommand is returned when an audio command line is empty.
var ErrNoCommand = errors.New("audio command is empty")

// Player starts playback of an audio prompt. Play returns once playback has
// started; it does not wait for it to finish.
type Player interface {
	Play(ctx context.Context, url string) error
}

// Nop is a Player that does nothing. It is used when audio is disabled.
type Nop struct{}

func (Nop) Play(context.Context, string) error { return nil }

// CommandPlayer plays audio by running an external command with the URL
// appended as its last argument.
type CommandPlayer struct {
	name   string
	args   []string
	onExit func(url string, err error)
}

// Option configures a CommandPlayer.
type Option func(*CommandPlayer)

// WithExitHandler registers fn to be called when a playback command exits.
// err is nil on a clean exit.
func WithExitHandler(fn func(url string, err error)) Option {
	return func(p *CommandPlayer) { p.onExit = fn }
}

// NewCommandPlayer builds a CommandPlayer from a command line such as
// "mpv --really-quiet". Arguments are split on whitespace.
func NewCommandPlayer(cmdline string, opts ...Option) (*CommandPlayer, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil, ErrNoCommand
	}
	p := &CommandPlayer{name: fields[0], args: fields[1:]}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// New returns a CommandPlayer for cmdline, or Nop when cmdline is empty.
func New(cmdline string, opts ...Option) (Player, error) {
	if strings.TrimSpace(cmdline) == "" {
		return Nop{}, nil
	}
	return NewCommandPlayer(cmdline, opts...)
}

// Play starts the command in the background. Start failures are returned;
// the exit status is reported to the exit handler.
func (p *CommandPlayer) Play(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}
	args := append(append([]string(nil), p.args...), url)
	cmd := exec.CommandContext(ctx, p.name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", p.name, err)
	}

	go func() {
		err := cmd.Wait()
		if p.onExit != nil {
			p.onExit(url, err)
		}
	}()
	return nil
}
