package app

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dkeye/Chat/internal/core"
)

type countingChannel struct {
	closes atomic.Int32
}

func (c *countingChannel) ReadLine() (string, error)       { return "", nil }
func (c *countingChannel) WriteLine(string) error          { return nil }
func (c *countingChannel) SetReadDeadline(time.Time) error { return nil }
func (c *countingChannel) Close()                          { c.closes.Add(1) }

func TestRegistry_BindUnbind(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	ch := &countingChannel{}
	reg.Bind("sid-1", ch)
	req.Equal(1, reg.Count())

	reg.Unbind("sid-1")
	req.Zero(reg.Count())

	// unbinding twice is harmless
	reg.Unbind("sid-1")
	req.Zero(reg.Count())
}

func TestRegistry_CloseAll(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	channels := []*countingChannel{{}, {}, {}}
	for i, ch := range channels {
		reg.Bind(core.SessionID(fmt.Sprintf("sid-%d", i)), ch)
	}

	req.Equal(3, reg.CloseAll())
	for _, ch := range channels {
		req.Equal(int32(1), ch.closes.Load())
	}
}
