package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"eventflow/config"
	"eventflow/internal/dashboard"
)

func main() {
	once := flag.Bool("once", false, "fetch one snapshot, print it and exit")
	token := flag.String("token", os.Getenv("DASHBOARD_TOKEN"), "bearer token sent with each request")
	flag.Parse()

	// Logs go to stderr so they don't interleave with the screen.
	logger := config.NewLogger(os.Stderr)
	cfg, err := config.Load()
	if err != nil {
		logger.Error("config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := dashboard.NewClient(cfg.Dashboard.APIURL, &http.Client{Timeout: cfg.RequestTimeout}, *token)
	poller := dashboard.NewPoller(client, cfg.Dashboard.PollInterval, logger)

	if *once {
		s := poller.Poll(ctx)
		if err := dashboard.Render(os.Stdout, s, false); err != nil {
			logger.Error("render", "err", err)
		}
		if s.Err != nil {
			os.Exit(1)
		}
		return
	}

	err = poller.Run(ctx, func(s dashboard.State) {
		if err := dashboard.Render(os.Stdout, s, true); err != nil {
			logger.Error("render", "err", err)
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("dashboard exited", "err", err)
		os.Exit(1)
	}
}
