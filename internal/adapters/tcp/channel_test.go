package tcp

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func pipeChannel(t *testing.T) (ch *lineChannel, peer net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	t.Cleanup(func() {
		_ = server.Close()
		_ = client.Close()
	})
	return NewLineChannel(server).(*lineChannel), client
}

func TestLineChannel_ReadLineStripsTerminator(t *testing.T) {
	req := require.New(t)
	ch, peer := pipeChannel(t)

	go func() {
		_, _ = peer.Write([]byte("hello\n"))
		_, _ = peer.Write([]byte("windows line\r\n"))
	}()

	line, err := ch.ReadLine()
	req.NoError(err)
	req.Equal("hello", line)

	line, err = ch.ReadLine()
	req.NoError(err)
	req.Equal("windows line", line)
}

func TestLineChannel_WriteLineAppendsTerminator(t *testing.T) {
	req := require.New(t)
	ch, peer := pipeChannel(t)

	go func() {
		req.NoError(ch.WriteLine("hi there"))
	}()

	reader := bufio.NewReader(peer)
	line, err := reader.ReadString('\n')
	req.NoError(err)
	req.Equal("hi there\n", line)
}

func TestLineChannel_EOFOnPeerClose(t *testing.T) {
	req := require.New(t)
	ch, peer := pipeChannel(t)

	req.NoError(peer.Close())

	_, err := ch.ReadLine()
	req.ErrorIs(err, io.EOF)
}

func TestLineChannel_CloseIdempotentAcrossGoroutines(t *testing.T) {
	req := require.New(t)
	ch, _ := pipeChannel(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch.Close()
		}()
	}
	wg.Wait()

	err := ch.WriteLine("too late")
	req.ErrorIs(err, ErrChannelClosed)
}

func TestLineChannel_CloseUnblocksPendingRead(t *testing.T) {
	req := require.New(t)
	ch, _ := pipeChannel(t)

	errs := make(chan error, 1)
	go func() {
		_, err := ch.ReadLine()
		errs <- err
	}()

	ch.Close()
	req.Error(<-errs)
}

func TestLineChannel_ConcurrentWriters(t *testing.T) {
	req := require.New(t)
	ch, peer := pipeChannel(t)

	const writers = 5
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = ch.WriteLine(fmt.Sprintf("writer-%d", n))
		}(i)
	}

	reader := bufio.NewReader(peer)
	seen := map[string]bool{}
	for i := 0; i < writers; i++ {
		line, err := reader.ReadString('\n')
		req.NoError(err)
		seen[line] = true
	}
	wg.Wait()

	// every line arrives whole, never interleaved
	req.Len(seen, writers)
	for line := range seen {
		req.Regexp(`^writer-\d\n$`, line)
	}
}
