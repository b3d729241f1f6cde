package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"resumidor/shutdown"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serviceActions are the accepted "resumidor service" arguments.
var serviceActions = []string{"install", "uninstall", "start", "stop", "restart", "status", "run"}

// program adapts the web server to the system service lifecycle. The
// service manager delivers stop requests, so no signal handler is installed.
type program struct {
	app     *app
	manager *shutdown.Manager
	done    chan error
}

func (p *program) Start(s service.Service) error {
	a, err := loadApp(false)
	if err != nil {
		return err
	}
	p.app = a
	p.manager = shutdown.NewManager(a.logger.Zap(), shutdown.WithTimeout(a.cfg.ShutdownTimeout))
	p.done = make(chan error, 1)

	go func() {
		err := runServer(a, p.manager, io.Discard)
		if err != nil {
			a.logger.Error("Web server stopped with error", zap.Error(err))
		}
		p.done <- err
	}()
	return nil
}

func (p *program) Stop(s service.Service) error {
	if p.manager == nil {
		return nil
	}
	p.manager.Trigger()

	select {
	case err := <-p.done:
		return err
	case <-time.After(p.app.cfg.ShutdownTimeout + 5*time.Second):
		return errors.New("timed out waiting for the web server to stop")
	}
}

// serviceConfig describes the installed service. The working directory is
// where .env and the upload directory are resolved.
func serviceConfig(workDir string) *service.Config {
	return &service.Config{
		Name:             "resumidor",
		DisplayName:      "Resumidor de PDFs",
		Description:      "Extractive summaries of Portuguese PDF documents over HTTP",
		Arguments:        []string{"service", "run"},
		WorkingDirectory: workDir,
		Option: service.KeyValue{
			"StartType": "automatic",
		},
	}
}

func newServiceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "service <" + strings.Join(serviceActions, "|") + ">",
		Short: "Manage resumidor as a system service",
		Long: `Install or control resumidor as a system service (systemd, launchd or
Windows services). "install" records the current directory as the service
working directory. "run" is what the service manager executes.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: serviceActions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServiceAction(cmd, args[0])
		},
	}
}

func runServiceAction(cmd *cobra.Command, action string) error {
	if !validServiceAction(action) {
		return fmt.Errorf("unknown service action %q, use one of %s", action, strings.Join(serviceActions, ", "))
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}
	svc, err := service.New(&program{}, serviceConfig(workDir))
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	out := newPrinter(cmd.OutOrStdout())
	switch action {
	case "run":
		return svc.Run()
	case "status":
		status, err := svc.Status()
		if err != nil {
			return fmt.Errorf("failed to get service status: %w", err)
		}
		out.item("Service", statusName(status))
		return nil
	default:
		if err := service.Control(svc, action); err != nil {
			return fmt.Errorf("service %s failed: %w", action, err)
		}
		out.item("Service", action+" done")
		return nil
	}
}

func validServiceAction(action string) bool {
	for _, a := range serviceActions {
		if a == action {
			return true
		}
	}
	return false
}

func statusName(status service.Status) string {
	switch status {
	case service.StatusRunning:
		return "running"
	case service.StatusStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
