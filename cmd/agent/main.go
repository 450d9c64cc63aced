package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"

	"transfer-agent/internal"
	"transfer-agent/runtime"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Agent terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the agent lifecycle, and
// centralizes error reporting. This pattern is preferred over calling os.Exit
// or panic directly because it ensures deferred cleanup executes and keeps
// the initialization logic testable.
func run() (int, error) {
	// 1. Configuration & Logger
	// A .env file is optional; real deployments inject the environment.
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	logger := internal.NewLogger(config.LogLevel)
	logger.Info("Transfer agent starting",
		"source", config.SourceDir,
		"destination", config.DestinationDir,
		"workers", config.WorkerCount,
	)

	// 2. Context & Signals
	// NotifyContext captures OS signals and cancels the context to trigger a shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orchestrator := runtime.NewOrchestrator(logger, config)

	errChan := make(chan error, 1)
	go func() {
		if err := orchestrator.Start(ctx); err != nil {
			errChan <- fmt.Errorf("orchestrator error: %w", err)
			return
		}
		errChan <- nil
	}()

	// 3. Wait for Stop or Error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		if err != nil {
			return exitRuntime, err
		}
		return exitOK, nil
	}

	// 4. Graceful Shutdown
	// Cancel supervision and let in-flight copies abort cleanly; partial
	// temporary files are discarded by the owning worker on the way out.
	orchestrator.Stop()
	<-errChan
	logger.Info("Agent stopped cleanly")

	return exitOK, nil
}
