package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

type readResult struct {
	data []byte
	err  error
}

// Console is the single owner of the input stream. Reads honour ctx, and a
// read abandoned by a cancelled caller is handed to the next caller instead of
// racing a second reader on the same stream.
type Console struct {
	in       *bufio.Reader
	fd       int
	terminal bool

	mu       sync.Mutex
	inflight chan readResult
}

// NewConsole wraps in. Secrets are read without echo when in is a terminal.
func NewConsole(in io.Reader) *Console {
	c := &Console{in: bufio.NewReader(in), fd: -1}
	if f, ok := in.(*os.File); ok {
		c.fd = int(f.Fd())
		c.terminal = term.IsTerminal(c.fd)
	}
	return c
}

// ReadLine returns the next line without its line terminator. A final line
// without a newline is returned as is; an empty stream yields io.EOF.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	b, err := c.read(ctx, c.readLine)
	return string(b), err
}

// ReadSecret reads one line, without echo on a terminal.
func (c *Console) ReadSecret(ctx context.Context) ([]byte, error) {
	if !c.terminal {
		return c.read(ctx, c.readLine)
	}
	return c.read(ctx, func() ([]byte, error) { return readPassword(c.fd) })
}

func (c *Console) readLine() ([]byte, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return []byte(strings.TrimRight(line, "\r\n")), nil
		}
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

func (c *Console) read(ctx context.Context, fn func() ([]byte, error)) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	ch := c.inflight
	if ch == nil {
		ch = make(chan readResult, 1)
		c.inflight = ch
		go func() {
			data, err := fn()
			ch <- readResult{data: data, err: err}
		}()
	}
	c.mu.Unlock()

	select {
	case r := <-ch:
		c.mu.Lock()
		if c.inflight == ch {
			c.inflight = nil
		}
		c.mu.Unlock()
		return r.data, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
