package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/ular-tangga-admin/internal/app"
	"github.com/jrsteele09/ular-tangga-admin/internal/config"
	"github.com/jrsteele09/ular-tangga-admin/server"
	"github.com/jrsteele09/ular-tangga-admin/server/loginsession"
	"github.com/rs/zerolog"
)

const (
	maxRestarts    = 5
	restartDelay   = 1 * time.Second
	visitorMaxIdle = 2 * time.Hour
)

var errPanicRecovered = errors.New("panic recovered")

func main() {
	if err := runWithRestarts(run, maxRestarts, restartDelay); err != nil {
		log.Fatalf("Error running server: %s\n", err)
	}
	log.Printf("Server stopped\n")
}

// runWithRestarts calls run again after a recovered panic, up to
// maxRestarts times. Any other error is returned straight away.
func runWithRestarts(run func() error, maxRestarts int, delay time.Duration) error {
	for attempt := 0; ; attempt++ {
		err := run()
		if err == nil {
			return nil
		}
		if !errors.Is(err, errPanicRecovered) || attempt >= maxRestarts {
			return err
		}
		log.Printf("Restarting server in %s: %s\n", delay, err)
		time.Sleep(delay)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = fmt.Errorf("%w: %v", errPanicRecovered, r)
		}
	}()

	c, err := config.New()
	if err != nil {
		return err
	}
	displayAppname(c.GetAppName())

	logger := app.NewLogger(c, os.Stderr)
	a, err := app.New(c, logger, "ular-tangga-admin-server")
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Err(err).Msg("failed to close app")
		}
	}()

	// each browser gets its own session under a key prefix of the shared backend
	visitors := loginsession.NewInMemoryRepo(a.Storage, a.BuildSession,
		loginsession.WithLogger(logger.With().Str("component", "loginsession").Logger()),
		loginsession.WithMaxIdle(visitorMaxIdle),
	)
	defer visitors.Close()

	handler, err := server.New(c, visitors, a.Client, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: c.GetPort(), Handler: handler}
	errCh := make(chan error, 1)
	go func() { errCh <- listenAndServe(srv, logger) }()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-waitForStopSignal():
	}
	return shutdown(srv)
}

func listenAndServe(server *http.Server, logger zerolog.Logger) error {
	logger.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
