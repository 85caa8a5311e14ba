// Package main is the entry point for the organizo CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"organizo/internal/backend/resthttp"
	"organizo/internal/cli"
	"organizo/internal/commands"
	"organizo/internal/config"
	"organizo/internal/push"
	"organizo/internal/service"
	"organizo/internal/session"
)

func main() {
	// Cancel on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	services := func(ctx context.Context, cfg *config.Config, sess session.Session) (service.Service, error) {
		return resthttp.New(ctx, cfg.APIURL, sess), nil
	}

	channels := func(cfg *config.Config, sess session.Session) push.Broadcaster {
		var debugf func(format string, args ...any)
		if cfg.Debug {
			debugf = func(format string, args ...any) {
				fmt.Fprintf(os.Stderr, "debug: "+format+"\n", args...)
			}
		}
		return push.New(cfg.PushURL, debugf)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, services, channels)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
