package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tuannm99/tinysql/internal"
	"github.com/tuannm99/tinysql/server/sqlwire"
)

func main() {
	cfgPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "listen address (overrides server.addr)")
	flag.Parse()

	cfg, err := internal.LoadConfig(*cfgPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	lvl, _ := cfg.LogLevel()
	if cfg.Server.Debug {
		lvl = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("starting server", "app", cfg.AppName, "addr", cfg.Server.Addr, "backfill", cfg.Executor.Backfill)
	if err := sqlwire.Run(ctx, sqlwire.ServerConfig{
		Addr:       cfg.Server.Addr,
		NewSession: cfg.NewSession,
	}); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
	slog.Info("shutting down")
}
