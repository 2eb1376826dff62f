package main

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerAddress string `env:"CHAT_SERVER_ADDR,default=localhost:8080"`
	Username      string `env:"CHAT_USERNAME"`
}

func main() {
	// The main function manages the OS exit code based on run()'s return.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run handles the TCP client lifecycle: configuration loading, the
// username handshake, and the two I/O loops (server reader, stdin writer).
func run() (int, error) {
	// 1. Load configuration from environment variables.
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	stdin := bufio.NewReader(os.Stdin)
	username := config.Username
	if username == "" {
		color.Cyan.Print("Enter your username: ")
		line, err := stdin.ReadString('\n')
		if err != nil {
			return exitConfig, fmt.Errorf("could not read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	if username == "" {
		return exitConfig, fmt.Errorf("username must not be empty")
	}

	// 2. Setup context to handle termination signals (Ctrl+C).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Establish connection to the chat server.
	conn, err := net.Dial("tcp", config.ServerAddress)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to server at %s: %w", config.ServerAddress, err)
	}
	defer func() { _ = conn.Close() }()

	// 4. The first line sent is the username handshake.
	if _, err := fmt.Fprintf(conn, "%s\n", username); err != nil {
		return exitRuntime, fmt.Errorf("handshake failed: %w", err)
	}
	color.Green.Printf(">>> Connected to %s as '%s' (Ctrl+C or /quit to leave)\n",
		config.ServerAddress, username)

	// 5. Reception loop in its own goroutine: print every server line
	// until the connection drops.
	done := make(chan error, 1)
	go func() {
		reader := bufio.NewReader(conn)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				done <- err
				return
			}
			display(strings.TrimRight(line, "\r\n"))
		}
	}()

	// 6. Input loop: forward stdin lines until /quit or shutdown.
	go func() {
		for {
			line, err := stdin.ReadString('\n')
			if err != nil {
				done <- err
				return
			}
			line = strings.TrimRight(line, "\r\n")
			if line == "/quit" {
				done <- nil
				return
			}
			if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
				done <- err
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		color.Gray.Println("Stopping client...")
		return exitOK, nil
	case err := <-done:
		if err != nil && ctx.Err() == nil {
			return exitRuntime, fmt.Errorf("connection lost: %w", err)
		}
		return exitOK, nil
	}
}

// display colors a server line by kind: private messages stand out,
// room notices are dimmed, everything else prints as-is.
func display(line string) {
	switch {
	case strings.Contains(line, "[PM from ") || strings.Contains(line, "[PM to "):
		color.Magenta.Println(line)
	case strings.HasSuffix(line, "joined the room") || strings.HasSuffix(line, "left the room"):
		color.Gray.Println(line)
	default:
		fmt.Println(line)
	}
}
