package repository

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"

	"usi_bridge/internal/errors"
)

const (
	maxLineSize  = 1 << 20
	closeTimeout = 5 * time.Second
)

// EngineClient owns one engine connection: it writes GUI lines to the
// engine's stdin and hands out its stdout line by line. It does not look
// inside the lines.
type EngineClient struct {
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	writer    *bufio.Writer
	stdout    *bufio.Scanner
	stdoutEnd io.Closer
	lines     chan string
	done      chan struct{}
	listening chan struct{}
	mu        sync.Mutex
	closed    bool
	log       *zap.SugaredLogger
}

// StartEngine spawns the engine executable. Cancelling ctx kills the process.
func StartEngine(ctx context.Context, path string, args []string, log *zap.SugaredLogger) (*EngineClient, error) {
	if path == "" {
		return nil, errors.ErrEngineNotConfigured
	}

	cmd := exec.CommandContext(ctx, path, args...)

	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("engine stdin: %w", err)
	}
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("engine stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start engine %s: %w", path, err)
	}

	client := newEngineClient(stdinPipe, stdoutPipe, log)
	client.cmd = cmd
	go client.listen()

	log.Infow("engine started", "path", path, "args", args, "pid", cmd.Process.Pid)
	return client, nil
}

// NewEngineClient wraps an already connected pipe pair. If stdout is an
// io.Closer, Close closes it.
func NewEngineClient(stdin io.WriteCloser, stdout io.Reader, log *zap.SugaredLogger) *EngineClient {
	client := newEngineClient(stdin, stdout, log)
	go client.listen()
	return client
}

func newEngineClient(stdin io.WriteCloser, stdout io.Reader, log *zap.SugaredLogger) *EngineClient {
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	client := &EngineClient{
		stdin:     stdin,
		writer:    bufio.NewWriter(stdin),
		stdout:    scanner,
		lines:     make(chan string, 64),
		done:      make(chan struct{}),
		listening: make(chan struct{}),
		log:       log,
	}
	if closer, ok := stdout.(io.Closer); ok {
		client.stdoutEnd = closer
	}
	return client
}

func (c *EngineClient) listen() {
	defer close(c.listening)
	defer close(c.lines)

	for c.stdout.Scan() {
		select {
		case c.lines <- c.stdout.Text():
		case <-c.done:
			return
		}
	}

	select {
	case <-c.done:
	default:
		if err := c.stdout.Err(); err != nil {
			c.log.Warnw("engine output stopped", "error", err)
		} else {
			c.log.Infow("engine output closed")
		}
	}
}

// Lines yields engine output in order. The channel is closed at EOF or
// after Close.
func (c *EngineClient) Lines() <-chan string {
	return c.lines
}

func (c *EngineClient) Send(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errors.ErrEngineClosed
	}
	if _, err := c.writer.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("write to engine: %w", err)
	}
	if err := c.writer.Flush(); err != nil {
		return fmt.Errorf("flush to engine: %w", err)
	}
	return nil
}

// Close closes both pipe ends and waits for the reader goroutine. For
// spawned engines it then waits for the process to exit, killing it after
// closeTimeout.
func (c *EngineClient) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	err := c.stdin.Close()
	c.mu.Unlock()

	if c.stdoutEnd != nil {
		_ = c.stdoutEnd.Close()
	}

	// cmd.Wait must not run while stdout is still being read.
	select {
	case <-c.listening:
	case <-time.After(closeTimeout):
		c.log.Warnw("engine output reader did not stop")
	}

	if c.cmd == nil {
		return err
	}

	waitErr := make(chan error, 1)
	go func() { waitErr <- c.cmd.Wait() }()

	select {
	case err = <-waitErr:
	case <-time.After(closeTimeout):
		c.log.Warnw("engine did not exit, killing", "pid", c.cmd.Process.Pid)
		_ = c.cmd.Process.Kill()
		err = <-waitErr
	}
	return err
}
