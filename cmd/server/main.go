package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"chat-relay/ledger"
	"chat-relay/moderation"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
	"chat-relay/tcp"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

//go:embed censored.txt
var defaultCensoredWords string

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the listener and background workers.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Moderation
	replacement, err := CharacterRune(config.CharReplacement)
	if err != nil {
		return err
	}
	words := censoredWords(config.CensoredWords)
	moderator, err := moderation.NewModerator(words, replacement)
	if err != nil {
		return fmt.Errorf("moderation setup failed: %w", err)
	}
	log.Info(fmt.Sprintf("%d censored words loaded", len(words)))

	// 3. Shared state & send pipeline
	registry := runtime.NewRegistry()
	chat := runtime.NewChatService(log,
		ledger.NewLedger(config.HistoryCapacity),
		ledger.NewUndoRedo(),
		&moderator,
		config.BufferSize)

	// 4. Listener. A bind failure here is the only fatal startup error.
	server := tcp.NewServer(log, registry, chat, config.DefaultRoom, config.ConnectionBufferSize)
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	if err := server.Listen(address); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	log.Info("Chat server started", "address", address, "default_room", config.DefaultRoom)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Supervised workers: accept loop, broadcast dispatcher, telemetry.
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		server,
		workers.NewBroadcastWorker(log, registry, chat.Outgoing()),
		workers.NewTelemetryWorker(log, config.MetricInterval, registry, chat.LedgerLen),
	)
	sup.Run(ctx)

	log.Info("Program stopped cleanly")
	return nil
}

// censoredWords prefers the environment override and falls back to the
// embedded default list.
func censoredWords(override string) []string {
	raw := defaultCensoredWords
	sep := "\n"
	if override != "" {
		raw = override
		sep = ","
	}
	var words []string
	for _, w := range strings.Split(raw, sep) {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}
