package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/reversi/internal/config"
	"github.com/rocketscienceinc/reversi/internal/console"
	"github.com/rocketscienceinc/reversi/internal/repository"
	"github.com/rocketscienceinc/reversi/internal/repository/storage"
	"github.com/rocketscienceinc/reversi/internal/reversi"
	"github.com/rocketscienceinc/reversi/internal/usecase"
)

// shutdownTimeout bounds the wait for a console blocked on input that cannot be closed.
const shutdownTimeout = 2 * time.Second

// RunApp - runs the game on the process's standard input and output.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return Run(ctx, logger, conf, os.Stdin, os.Stdout)
}

// Run - wires the game and plays until the console stops or ctx is cancelled.
// On cancellation in is closed if it is an io.Closer and Run waits for the console to stop.
// A reader that cannot be closed is owned by the caller, and the console may outlive Run
// by up to shutdownTimeout while it stays blocked on it.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	var results repository.ResultRepository

	if conf.Redis.Enabled {
		redisAddr := conf.Redis.GetRedisAddr()

		redisStorage, err := storage.New(ctx, redisAddr)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		log.Info("Result ledger enabled", "addr", redisAddr)
		results = repository.NewResultRepository(redisStorage, conf.Ledger.RecentLimit)
	}

	status := console.NewStatusLine(logger, out)
	controller := reversi.NewGameController(reversi.WithCountsListener(status.Update))
	manager := usecase.NewMatchManager(logger, controller, results)
	term := console.New(logger, in, out, manager, controller, console.Options{
		HideHints:  conf.Console.HideHints,
		ShowRecent: conf.Ledger.ShowRecent,
	})

	consoleErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting console", "match_id", manager.MatchID())
		consoleErrCh <- term.Run(ctx)
	}()

	select {
	case err := <-consoleErrCh:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("console error: %w", err)
		}

		log.Info("Console closed")

		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")

		stopConsole(log, in, consoleErrCh)

		return nil
	}
}

// stopConsole - unblocks the console by closing in when it can be closed, then waits for the
// console to return so nothing writes to out or the ledger after Run.
func stopConsole(log *slog.Logger, in io.Reader, consoleErrCh <-chan error) {
	if closer, ok := in.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Error("could not close console input", "error", err)
		}
	}

	select {
	case <-consoleErrCh:
		log.Info("Console closed")
	case <-time.After(shutdownTimeout):
		log.Warn("Console did not stop in time", "timeout", shutdownTimeout)
	}
}
