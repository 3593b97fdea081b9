package tcp

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/dkeye/Chat/internal/core"
)

var ErrChannelClosed = errors.New("channel closed")

// lineChannel adapts a net.Conn into the line-oriented Channel contract.
// Reads are owned by the session goroutine; writes can come from any
// session doing a broadcast, so they are serialized by the mutex.
type lineChannel struct {
	conn   net.Conn
	reader *bufio.Reader

	mu     sync.Mutex
	closed bool
}

func NewLineChannel(conn net.Conn) core.Channel {
	return &lineChannel{
		conn:   conn,
		reader: bufio.NewReader(conn),
	}
}

// ReadLine blocks until a full line arrives and returns it with the
// terminator stripped. io.EOF surfaces when the peer closes cleanly.
func (c *lineChannel) ReadLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read line: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WriteLine sends line plus a terminator in a single write; nothing is
// buffered across calls.
func (c *lineChannel) WriteLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrChannelClosed
	}
	if _, err := c.conn.Write([]byte(line + "\n")); err != nil {
		return fmt.Errorf("write line: %w", err)
	}
	return nil
}

func (c *lineChannel) SetReadDeadline(t time.Time) error {
	return c.conn.SetReadDeadline(t)
}

// Close releases the socket exactly once no matter how many goroutines
// call it. Closing unblocks a pending ReadLine.
func (c *lineChannel) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()
	_ = c.conn.Close()
}
