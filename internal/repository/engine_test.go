package repository

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"usi_bridge/internal/errors"
)

// fakeEngine answers the handshake lines and closes its output when its
// input is closed.
func fakeEngine(stdin io.Reader, stdout io.WriteCloser) {
	defer stdout.Close()

	sc := bufio.NewScanner(stdin)
	for sc.Scan() {
		switch sc.Text() {
		case "usi":
			fmt.Fprintln(stdout, "id name Fake 1.0")
			fmt.Fprintln(stdout, "usiok")
		case "isready":
			fmt.Fprintln(stdout, "readyok")
		}
	}
}

func receive(t *testing.T, lines <-chan string) (string, bool) {
	t.Helper()
	select {
	case line, ok := <-lines:
		return line, ok
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for engine output")
		return "", false
	}
}

func drain(t *testing.T, lines <-chan string) {
	t.Helper()
	for {
		if _, ok := receive(t, lines); !ok {
			return
		}
	}
}

func TestEngineClientRoundTrip(t *testing.T) {
	stdinR, stdinW := io.Pipe()
	stdoutR, stdoutW := io.Pipe()
	go fakeEngine(stdinR, stdoutW)

	client := NewEngineClient(stdinW, stdoutR, zaptest.NewLogger(t).Sugar())

	require.NoError(t, client.Send("usi"))
	line, ok := receive(t, client.Lines())
	require.True(t, ok)
	assert.Equal(t, "id name Fake 1.0", line)
	line, _ = receive(t, client.Lines())
	assert.Equal(t, "usiok", line)

	require.NoError(t, client.Send("isready"))
	line, _ = receive(t, client.Lines())
	assert.Equal(t, "readyok", line)

	require.NoError(t, client.Close())
	drain(t, client.Lines())

	assert.ErrorIs(t, client.Send("quit"), errors.ErrEngineClosed)
	assert.NoError(t, client.Close(), "second close is a no-op")
}

func TestEngineClientEOF(t *testing.T) {
	stdinR, stdinW := io.Pipe()
	stdoutR, stdoutW := io.Pipe()
	defer stdinR.Close()

	client := NewEngineClient(stdinW, stdoutR, zaptest.NewLogger(t).Sugar())

	go func() {
		fmt.Fprintln(stdoutW, "info string bye")
		stdoutW.Close()
	}()

	line, ok := receive(t, client.Lines())
	require.True(t, ok)
	assert.Equal(t, "info string bye", line)
	_, ok = receive(t, client.Lines())
	assert.False(t, ok, "lines channel is closed at EOF")

	require.NoError(t, client.Close())
}

func TestEngineClientCloseStopsReader(t *testing.T) {
	stdinR, stdinW := io.Pipe()
	stdoutR, stdoutW := io.Pipe()
	defer stdinR.Close()

	// The engine neither writes nor closes its output.
	client := NewEngineClient(stdinW, stdoutR, zaptest.NewLogger(t).Sugar())

	done := make(chan error, 1)
	go func() { done <- client.Close() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(closeTimeout / 2):
		t.Fatal("Close did not return")
	}

	_, ok := <-client.Lines()
	assert.False(t, ok, "reader has stopped once Close returns")

	_, err := fmt.Fprintln(stdoutW, "info string late")
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestStartEngineNotConfigured(t *testing.T) {
	_, err := StartEngine(context.Background(), "", nil, zaptest.NewLogger(t).Sugar())
	assert.ErrorIs(t, err, errors.ErrEngineNotConfigured)
}

func TestStartEngineProcess(t *testing.T) {
	cat, err := exec.LookPath("cat")
	if err != nil {
		t.Skip("cat is not available")
	}

	client, err := StartEngine(context.Background(), cat, nil, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)

	require.NoError(t, client.Send("bestmove 7g7f ponder 8c8d"))
	line, ok := receive(t, client.Lines())
	require.True(t, ok)
	assert.Equal(t, "bestmove 7g7f ponder 8c8d", line)

	require.NoError(t, client.Close())
	drain(t, client.Lines())
}
