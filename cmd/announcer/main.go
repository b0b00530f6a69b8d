package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"releasebot/internal/announce"
	"releasebot/internal/config"
	"releasebot/internal/webhook"
	"releasebot/pkg/logx"
)

func main() {
	var (
		cfgPath  string
		logLevel string
		dryRun   bool
	)
	flag.StringVar(&cfgPath, "config", "", "path to optional config file (yaml or json)")
	flag.StringVar(&logLevel, "log-level", "info", "log level (trace|debug|info|warn|error)")
	flag.BoolVar(&dryRun, "dry-run", false, "compose and validate messages without sending")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := logx.NewConsole(logLevel)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}

	client := webhook.NewClient(cfg.WebhookURL, cfg.Timeout())
	a := announce.New(cfg, client, log)
	a.DryRun = dryRun

	if err := a.Run(ctx); err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}
	log.Info("announcement complete", logx.String("version", cfg.VersionTag))
}
