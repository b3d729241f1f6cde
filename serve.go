package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"resumidor/core"
	"resumidor/shutdown"
	"resumidor/webui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web interface",
		Long: `Start the HTTP server with the upload page on HOST:PORT.

SIGINT or SIGTERM stop accepting uploads, wait up to SHUTDOWN_TIMEOUT_SECONDS
for summaries in progress and remove leftover uploads. A second signal exits
immediately.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	a, err := loadApp(false)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	manager := shutdown.NewManager(a.logger.Zap(), shutdown.WithTimeout(a.cfg.ShutdownTimeout))
	manager.Start()

	err = runServer(a, manager, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if code := manager.ExitCode(nil); code != core.ExitCodeSuccess {
		return exitStatus(code)
	}
	return nil
}

// runServer serves HTTP until the manager's context is cancelled, then runs
// the shutdown sequence. Signal handling is left to the caller.
func runServer(a *app, manager *shutdown.Manager, out io.Writer) error {
	zlog := a.logger.Zap()

	removed, err := shutdown.SweepUploads(context.Background(), zlog, a.cfg.UploadDir, time.Time{})
	if err != nil {
		a.logger.Warn("Failed to sweep upload directory", zap.Error(err))
	} else if removed > 0 {
		a.logger.Info("Removed uploads left by a previous run", zap.Int("count", removed))
	}

	processor, err := a.newProcessor(summaryOptions{}, nil)
	if err != nil {
		return err
	}

	server, err := webui.NewServer(webui.ServerConfigFromCore(a.cfg), processor, manager, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create web server: %w", err)
	}

	tickers, stopTickers := context.WithCancel(context.Background())
	defer stopTickers()

	manager.Register("http", shutdown.PriorityHTTP, server.Shutdown)
	manager.Register("sessions", shutdown.PrioritySessions, func(context.Context) error {
		stopTickers()
		return nil
	})
	manager.Register("uploads", shutdown.PriorityUploads, shutdown.CleanupUploads(zlog, a.cfg.UploadDir))
	manager.Register("logger", shutdown.PriorityLogger, func(context.Context) error {
		return a.logger.Sync()
	})

	printBanner(newPrinter(out), a.cfg)

	serveErr := make(chan error, 1)
	go func() {
		if err := server.Start(tickers); err != nil {
			serveErr <- err
			manager.Trigger()
		}
	}()

	<-manager.Done()
	shutdownErr := manager.Shutdown()

	select {
	case err := <-serveErr:
		return err
	default:
	}
	if shutdownErr != nil && !errors.Is(shutdownErr, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", shutdownErr)
	}
	return nil
}

func printBanner(p *printer, cfg *core.Config) {
	p.header("resumidor " + core.Version)
	p.item("Listening", "http://"+cfg.Addr())
	p.item("Mode", cfg.SummaryMode+", "+strconv.Itoa(cfg.Summarizer.NumSentences)+" sentences")
	p.item("Upload limit", core.FormatBytes(cfg.MaxFileSize))
	p.item("Uploads", cfg.UploadDir)
	p.item("Log file", cfg.LogFile)
	fmt.Fprintln(p.out)
}
