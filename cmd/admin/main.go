// Command admin manages the team roster from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mishasvintus/team_roster_admin/internal/config"
	"github.com/mishasvintus/team_roster_admin/internal/logger"
	"github.com/mishasvintus/team_roster_admin/internal/remote"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "admin: %v\n", err)
		return 1
	}

	log, err := logger.NewConsole(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "admin: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	opts := []remote.Option{remote.WithTimeout(cfg.Timeout), remote.WithLogger(log)}
	members, err := remote.NewTeamMembers(cfg.BaseURL, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "admin: %v\n", err)
		return 1
	}
	roles, err := remote.NewRoles(cfg.BaseURL, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "admin: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(members, roles, os.Stdout, os.Stderr, log)
	defer a.Close()

	if err := a.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			a.usage()
			return 2
		}
		log.Debugw("command failed", "error", err)
		return 1
	}
	return 0
}
