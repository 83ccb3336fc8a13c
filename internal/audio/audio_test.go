package audio

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmptyIsNop(t *testing.T) {
	p, err := New("   ")
	require.NoError(t, err)
	assert.IsType(t, Nop{}, p)
	assert.NoError(t, p.Play(context.Background(), "https://example.com/a.mp3"))
}

func TestNewCommandPlayer(t *testing.T) {
	p, err := NewCommandPlayer("mpv --really-quiet --no-video")
	require.NoError(t, err)
	assert.Equal(t, "mpv", p.name)
	assert.Equal(t, []string{"--really-quiet", "--no-video"}, p.args)

	_, err = NewCommandPlayer("")
	assert.ErrorIs(t, err, ErrNoCommand)
}

func TestCommandPlayer_PlayDoesNotBlock(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	exited := make(chan error, 1)
	p, err := NewCommandPlayer("sleep", WithExitHandler(func(_ string, err error) {
		exited <- err
	}))
	require.NoError(t, err)

	start := time.Now()
	// sleep takes the URL as its duration argument.
	require.NoError(t, p.Play(context.Background(), "0.2"))
	assert.Less(t, time.Since(start), 150*time.Millisecond)

	select {
	case err := <-exited:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("exit handler not called")
	}
}

func TestCommandPlayer_StartFailure(t *testing.T) {
	p, err := NewCommandPlayer("ioequiz-no-such-player-binary")
	require.NoError(t, err)

	err = p.Play(context.Background(), "x.mp3")
	assert.ErrorContains(t, err, "start ioequiz-no-such-player-binary")
}

func TestCommandPlayer_EmptyURL(t *testing.T) {
	p, err := NewCommandPlayer("ioequiz-no-such-player-binary")
	require.NoError(t, err)
	assert.NoError(t, p.Play(context.Background(), ""))
}
