package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/robfig/cron/v3"

	"github.com/chaos-io/photo2gif/config"
	"github.com/chaos-io/photo2gif/rembg"
	"github.com/chaos-io/photo2gif/scratch"
	"github.com/chaos-io/photo2gif/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", tint.Err(err))
		os.Exit(1)
	}

	setupLogging(cfg.LogLevel)

	dir, err := scratch.New(cfg.ScratchDir)
	if err != nil {
		slog.Error("init scratch dir", tint.Err(err))
		os.Exit(1)
	}
	if n := dir.Sweep(); n > 0 {
		slog.Info("swept leftover artifacts", "dir", dir.Path(), "removed", n)
	}

	// The session loads once; a failed probe leaves the service up and
	// answering 422 on every conversion.
	var remover rembg.Remover
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	sess, err := rembg.NewSession(ctx, cfg.RembgURL)
	cancel()
	if err != nil {
		slog.Error("rembg session init failed, conversions will be rejected", tint.Err(err))
		remover = rembg.Unavailable(err)
	} else {
		slog.Info("rembg session ready", "backend", cfg.RembgURL)
		remover = sess
	}

	if cfg.SweepSchedule != "" {
		c := cron.New()
		if _, err := c.AddFunc(cfg.SweepSchedule, func() {
			if n := dir.Sweep(); n > 0 {
				slog.Info("scheduled sweep", "removed", n)
			}
		}); err != nil {
			slog.Error("bad sweep schedule", "schedule", cfg.SweepSchedule, tint.Err(err))
			os.Exit(1)
		}
		c.Start()
	}

	srv := server.New(remover, dir, slog.Default())
	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("listening", "addr", addr)
	if err := srv.Router().Run(addr); err != nil {
		slog.Error("server stopped", tint.Err(err))
		os.Exit(1)
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.RFC3339,
	})))
}
