package executor

import (
	"io"
	"strings"
	"sync"
)

// Capture is an ordered, append-only record of everything the child wrote.
type Capture struct {
	mu     sync.Mutex
	chunks []string
	size   int
}

func (c *Capture) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	c.mu.Lock()
	c.chunks = append(c.chunks, string(p))
	c.size += len(p)
	c.mu.Unlock()
	return len(p), nil
}

func (c *Capture) Chunks() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.chunks...)
}

func (c *Capture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var sb strings.Builder
	sb.Grow(c.size)
	for _, chunk := range c.chunks {
		sb.WriteString(chunk)
	}
	return sb.String()
}

func (c *Capture) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// tee records into the capture first, then echoes to the operator. A failing
// echo never costs captured output.
type tee struct {
	mu      sync.Mutex
	capture *Capture
	echo    io.Writer
}

func (t *tee) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, _ := t.capture.Write(p)
	if t.echo != nil {
		_, _ = t.echo.Write(p)
	}
	return n, nil
}
