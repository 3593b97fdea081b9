package main

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/gookit/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Chat/internal/config"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	cfg, err := config.Load()
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to server at %s: %w", addr, err)
	}
	defer conn.Close()

	color.Green.Printf("Connected to %s (Ctrl+C to quit)\n", addr)

	done := make(chan struct{})
	go receiveLoop(conn, done)
	go sendLoop(conn)

	select {
	case <-ctx.Done():
	case <-done:
	}
	return exitOK, nil
}

// receiveLoop prints every server line until the connection drops.
func receiveLoop(conn net.Conn, done chan struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		printServerLine(scanner.Text())
	}
	color.Yellow.Println("Disconnected from server.")
}

// sendLoop forwards stdin lines to the server; /quit ends the session
// server-side, which in turn ends the receive loop.
func sendLoop(conn net.Conn) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if _, err := fmt.Fprintln(conn, scanner.Text()); err != nil {
			return
		}
	}
	// stdin closed, hang up
	_ = conn.Close()
}

func printServerLine(line string) {
	switch {
	case strings.HasPrefix(line, "[Private from"):
		color.Magenta.Println(line)
	case strings.HasPrefix(line, "["):
		color.Cyan.Println(line)
	default:
		color.Gray.Println(line)
	}
}
